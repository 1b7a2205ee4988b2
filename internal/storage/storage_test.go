package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/shogiplay/internal/board"
)

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("Failed to open in-memory storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func playedPosition(t *testing.T, moves ...string) *board.Position {
	t.Helper()
	pos, err := board.ParseSFEN(board.StandardSFEN)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range moves {
		if _, err := pos.PushUSI(m); err != nil {
			t.Fatalf("push %s: %v", m, err)
		}
	}
	return pos
}

func TestNewRecord(t *testing.T) {
	pos := playedPosition(t, "7g7f", "3c3d", "8h2b+")
	rec := NewRecord(pos)

	if rec.StartSFEN != board.StandardSFEN {
		t.Errorf("StartSFEN = %s", rec.StartSFEN)
	}
	if len(rec.Moves) != 3 || rec.Moves[2] != "8h2b+" {
		t.Errorf("Moves = %v", rec.Moves)
	}
	if rec.Result != "ongoing" || rec.Winner != "" {
		t.Errorf("Result = %s, Winner = %s", rec.Result, rec.Winner)
	}
	if len(pos.Moves()) != 3 {
		t.Error("NewRecord modified the position")
	}
}

func TestNewRecordCheckmate(t *testing.T) {
	pos, err := board.ParseSFEN("4k4/4G4/4P4/9/9/9/9/9/4K4 w - 1")
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecord(pos)
	if rec.Result != "checkmate" || rec.Winner != "Black" {
		t.Errorf("Result = %s, Winner = %s", rec.Result, rec.Winner)
	}
}

func TestSaveLoadReplay(t *testing.T) {
	s := openMemory(t)

	pos := playedPosition(t, "7g7f", "3c3d", "8h2b+", "3a2b", "B*4e")
	rec := NewRecord(pos)
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("id %q is not a uuid: %v", rec.ID, err)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	loaded, err := s.Load(rec.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.StartSFEN != rec.StartSFEN || len(loaded.Moves) != len(rec.Moves) {
		t.Errorf("loaded %+v", loaded)
	}

	replayed, err := s.Replay(rec.ID)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if replayed.SFEN() != pos.SFEN() {
		t.Errorf("replayed %s, want %s", replayed.SFEN(), pos.SFEN())
	}
}

func TestReplayRejectsIllegalMoves(t *testing.T) {
	s := openMemory(t)

	rec := &GameRecord{StartSFEN: board.StandardSFEN, Moves: []string{"7g7f", "7f7e"}}
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Replay(rec.ID); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("Replay = %v, want ErrIllegalMove", err)
	}

	rec = &GameRecord{StartSFEN: "not an sfen"}
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Replay(rec.ID); err == nil {
		t.Error("bad start position replayed")
	}
}

func TestListDeleteAndStats(t *testing.T) {
	s := openMemory(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var ids []string
	for i, moves := range [][]string{{"7g7f"}, {"2g2f", "8c8d"}, {}} {
		rec := NewRecord(playedPosition(t, moves...))
		rec.CreatedAt = base.Add(time.Duration(2-i) * time.Hour)
		if err := s.Save(rec); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, rec.ID)
	}

	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("List returned %d records", len(list))
	}
	// Oldest first: saved in reverse time order
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Games != 3 || stats.TotalMoves != 3 || stats.ByResult["ongoing"] != 3 {
		t.Errorf("stats = %+v", stats)
	}

	if err := s.Delete(ids[1]); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ids[1]); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete = %v", err)
	}
	if err := s.Delete(ids[1]); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v", err)
	}

	stats, _ = s.LoadStats()
	if stats.Games != 2 || stats.TotalMoves != 1 {
		t.Errorf("stats after delete = %+v", stats)
	}

	// Re-saving a record replaces it without double counting
	rec, _ := s.Load(ids[0])
	rec.Moves = append(rec.Moves, "3c3d")
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	stats, _ = s.LoadStats()
	if stats.Games != 2 || stats.TotalMoves != 2 {
		t.Errorf("stats after update = %+v", stats)
	}
}

func TestOnDiskReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecord(playedPosition(t, "7g7f"))
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Load(rec.ID); err != nil {
		t.Errorf("record lost after reopen: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(DataDirEnv, dir)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != dir {
		t.Errorf("GetDataDir = %s, want %s", dataDir, dir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}
