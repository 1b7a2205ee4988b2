package perft

import (
	"sync"
	"sync/atomic"
)

// Number of shards for table locking (power of 2 for fast modulo)
const shardCount = 256
const shardMask = shardCount - 1

// Entry caches the leaf count of a position searched to some depth.
type Entry struct {
	Key   uint64 // Full 64-bit Zobrist hash for verification
	Nodes uint64
	Depth uint8
}

// Table is a hash table of perft counts shared by the workers.
// Uses sharded locking for thread-safety.
type Table struct {
	entries []Entry
	shards  [shardCount]sync.RWMutex
	size    uint64
	mask    uint64

	// Statistics (atomic for thread-safety)
	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTable creates a table with the given size in MB.
func NewTable(sizeMB int) *Table {
	entrySize := uint64(24)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	numEntries = max(roundDownToPowerOf2(numEntries), 1)

	return &Table{
		entries: make([]Entry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe returns the stored count for a position and depth.
func (t *Table) Probe(hash uint64, depth int) (uint64, bool) {
	t.probes.Add(1)

	idx := hash & t.mask
	shard := &t.shards[idx&shardMask]

	shard.RLock()
	entry := t.entries[idx]
	shard.RUnlock()

	if entry.Key == hash && int(entry.Depth) == depth && depth > 0 {
		t.hits.Add(1)
		return entry.Nodes, true
	}
	return 0, false
}

// Store saves a count. A slot holding the same position keeps the deeper
// count; any other position is replaced.
func (t *Table) Store(hash uint64, depth int, nodes uint64) {
	idx := hash & t.mask
	shard := &t.shards[idx&shardMask]

	shard.Lock()
	entry := &t.entries[idx]
	if entry.Key != hash || depth >= int(entry.Depth) {
		*entry = Entry{Key: hash, Nodes: nodes, Depth: uint8(depth)}
	}
	shard.Unlock()
}

// Clear empties the table.
func (t *Table) Clear() {
	for i := range t.shards {
		t.shards[i].Lock()
	}
	clear(t.entries)
	for i := range t.shards {
		t.shards[i].Unlock()
	}
	t.hits.Store(0)
	t.probes.Store(0)
}

// HashFull returns the permille of the table in use, from a sample.
func (t *Table) HashFull() int {
	sampleSize := min(uint64(1000), t.size)
	used := 0
	for i := uint64(0); i < sampleSize; i++ {
		shard := &t.shards[i&shardMask]
		shard.RLock()
		if t.entries[i].Depth > 0 {
			used++
		}
		shard.RUnlock()
	}
	return used * 1000 / int(sampleSize)
}

// HitRate returns the hit rate as a percentage.
func (t *Table) HitRate() float64 {
	probes := t.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (t *Table) Size() uint64 {
	return t.size
}
