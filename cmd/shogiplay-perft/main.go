package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"slices"
	"strings"
	"time"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/perft"
)

func main() {
	sfen := flag.String("sfen", board.StartSFEN, "SFEN string (defaults to the starting position)")
	moves := flag.String("moves", "", "USI moves to play first, space separated")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate")
	threads := flag.Int("threads", 0, "Worker goroutines (0 = all CPUs)")
	hashMB := flag.Int("hash", 0, "Hash table size in MB (0 = no table)")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	cmd := "position sfen " + *sfen
	if *moves != "" {
		cmd += " moves " + *moves
	}
	pos := board.NewPosition()
	if err := pos.PushUSIPositionCmd(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "position error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	counter := perft.NewCounter(*hashMB, *threads)

	if *divide {
		div, err := counter.Divide(ctx, pos, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "divide: %v\n", err)
			os.Exit(1)
		}
		keys := make([]board.Move, 0, len(div))
		var sum uint64
		for m, n := range div {
			keys = append(keys, m)
			sum += n
		}
		slices.SortFunc(keys, func(a, b board.Move) int {
			return strings.Compare(a.String(), b.String())
		})
		for _, m := range keys {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		nodes, err := counter.Count(ctx, pos, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "perft: %v\n", err)
			return
		}
		totalNodes += nodes
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("depth %d\tnodes %d\ttime %s\tnps %.0f\tthreads %d\n",
		*depth, totalNodes, elapsed, nps, counter.Threads())
	if t := counter.Table(); t != nil {
		fmt.Printf("hash hits %.1f%%\tfull %d‰\n", t.HitRate(), t.HashFull())
	}
}
