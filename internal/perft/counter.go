// Package perft counts the leaves of the legal move tree in parallel,
// caching subtree counts in a shared hash table.
package perft

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/shogiplay/internal/board"
)

// Counter runs perft with a pool of workers, one root move per task.
type Counter struct {
	table   *Table // nil disables caching
	threads int
	nodes   atomic.Uint64
}

// NewCounter creates a counter. hashMB of zero disables the table; threads
// of zero or less uses every CPU.
func NewCounter(hashMB, threads int) *Counter {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	c := &Counter{threads: threads}
	if hashMB > 0 {
		c.table = NewTable(hashMB)
	}
	return c
}

// Threads returns the number of workers.
func (c *Counter) Threads() int {
	return c.threads
}

// Table returns the shared table, or nil when caching is off.
func (c *Counter) Table() *Table {
	return c.table
}

// Nodes returns the number of positions visited by the last run, table
// hits included.
func (c *Counter) Nodes() uint64 {
	return c.nodes.Load()
}

// Count returns the number of leaf positions depth plies below pos.
func (c *Counter) Count(ctx context.Context, pos *board.Position, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	divide, err := c.Divide(ctx, pos, depth)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, n := range divide {
		total += n
	}
	return total, nil
}

// Divide returns the leaf count below each legal root move. pos is not
// modified; every worker plays on its own copy.
func (c *Counter) Divide(ctx context.Context, pos *board.Position, depth int) (map[board.Move]uint64, error) {
	c.nodes.Store(0)
	if depth <= 0 {
		return map[board.Move]uint64{}, nil
	}

	moves := pos.GenerateLegalMoves().Slice()
	counts := make([]uint64, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.threads)
	for i, m := range moves {
		w := &worker{pos: pos.Copy(), table: c.table, ctx: ctx}
		g.Go(func() error {
			defer func() { c.nodes.Add(w.nodes) }()
			if err := ctx.Err(); err != nil {
				return err
			}
			w.pos.Push(m)
			n, err := w.count(depth - 1)
			counts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[board.Move]uint64, len(moves))
	for i, m := range moves {
		result[m] = counts[i]
	}
	return result, nil
}

// worker counts one subtree on a private position copy.
type worker struct {
	pos   *board.Position
	table *Table
	ctx   context.Context
	nodes uint64
}

func (w *worker) count(depth int) (uint64, error) {
	w.nodes++
	if w.nodes&4095 == 0 {
		if err := w.ctx.Err(); err != nil {
			return 0, err
		}
	}

	if depth == 0 {
		return 1, nil
	}
	if depth == 1 {
		var n uint64
		for range w.pos.LegalMoves(board.GenAll) {
			n++
		}
		return n, nil
	}

	var hash uint64
	if w.table != nil {
		hash = w.pos.Hash()
		if n, ok := w.table.Probe(hash, depth); ok {
			return n, nil
		}
	}

	var total uint64
	for m := range w.pos.LegalMoves(board.GenAll) {
		w.pos.Push(m)
		n, err := w.count(depth - 1)
		if _, perr := w.pos.Pop(); perr != nil && err == nil {
			err = perr
		}
		if err != nil {
			return 0, err
		}
		total += n
	}

	if w.table != nil {
		w.table.Store(hash, depth, total)
	}
	return total, nil
}
