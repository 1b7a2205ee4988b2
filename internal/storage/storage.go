package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/hailam/shogiplay/internal/board"
)

// Storage keys
const (
	keyGamePrefix = "game/"
	keyStats      = "stats"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("game record not found")

// GameRecord is a stored game: where it started and the moves played.
type GameRecord struct {
	ID        string    `json:"id"`
	StartSFEN string    `json:"start_sfen"`
	Moves     []string  `json:"moves"`
	Result    string    `json:"result"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord builds a record from a position and its move history.
func NewRecord(pos *board.Position) *GameRecord {
	start := pos.Copy()
	for {
		if _, err := start.Pop(); err != nil {
			break
		}
	}

	moves := pos.Moves()
	rec := &GameRecord{
		StartSFEN: start.SFEN(),
		Moves:     make([]string, len(moves)),
	}
	for i, m := range moves {
		rec.Moves[i] = m.String()
	}

	status := pos.Status()
	rec.Result = status.String()
	if status == board.Checkmate {
		rec.Winner = pos.SideToMove().Other().String()
	}
	return rec
}

// Replay rebuilds the final position of the record, checking that every
// move is legal.
func (r *GameRecord) Replay() (*board.Position, error) {
	pos, err := board.ParseSFEN(r.StartSFEN)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	for i, s := range r.Moves {
		m, err := board.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("record %s move %d: %w", r.ID, i+1, err)
		}
		if !m.IsNull() && !pos.IsLegal(m) {
			return nil, fmt.Errorf("record %s move %d: %w: %s", r.ID, i+1, board.ErrIllegalMove, s)
		}
		pos.Push(m)
	}
	return pos, nil
}

// Stats counts the stored games.
type Stats struct {
	Games      int            `json:"games"`
	TotalMoves int            `json:"total_moves"`
	ByResult   map[string]int `json:"by_result"`
	ByWinner   map[string]int `json:"by_winner"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{
		ByResult: make(map[string]int),
		ByWinner: make(map[string]int),
	}
}

func (st *Stats) add(rec *GameRecord, n int) {
	st.Games += n
	st.TotalMoves += n * len(rec.Moves)
	bump(st.ByResult, rec.Result, n)
	if rec.Winner != "" {
		bump(st.ByWinner, rec.Winner, n)
	}
}

func bump(m map[string]int, key string, n int) {
	if m[key] += n; m[key] <= 0 {
		delete(m, key)
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the application data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(keyGamePrefix + id)
}

// Save stores a record, assigning an id and creation time if missing.
// Saving an existing id replaces the record.
func (s *Storage) Save(rec *GameRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		old, err := getRecord(txn, rec.ID)
		switch {
		case err == nil:
			stats.add(old, -1)
		case !errors.Is(err, ErrNotFound):
			return err
		}
		stats.add(rec, 1)

		if err := txn.Set(gameKey(rec.ID), data); err != nil {
			return err
		}
		return saveStats(txn, stats)
	})
}

// Load returns the record with the given id.
func (s *Storage) Load(id string) (*GameRecord, error) {
	var rec *GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, id)
		return err
	})
	return rec, err
}

func getRecord(txn *badger.Txn, id string) (*GameRecord, error) {
	item, err := txn.Get(gameKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rec := &GameRecord{}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, rec)
	})
	return rec, err
}

// List returns every record, oldest first.
func (s *Storage) List() ([]*GameRecord, error) {
	var records []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyGamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rec := &GameRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(records, func(a, b *GameRecord) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return records, nil
}

// Delete removes the record with the given id.
func (s *Storage) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.add(rec, -1)

		if err := txn.Delete(gameKey(id)); err != nil {
			return err
		}
		return saveStats(txn, stats)
	})
}

// Replay loads a record and rebuilds its final position.
func (s *Storage) Replay(id string) (*board.Position, error) {
	rec, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	return rec.Replay()
}

// LoadStats loads game statistics, returns empty stats if none were saved.
func (s *Storage) LoadStats() (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*Stats, error) {
	stats := NewStats()

	item, err := txn.Get([]byte(keyStats))
	if err == badger.ErrKeyNotFound {
		return stats, nil // Use empty stats
	}
	if err != nil {
		return nil, err
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}

func saveStats(txn *badger.Txn, stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return txn.Set([]byte(keyStats), data)
}
