package usi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/shogiplay/internal/board"
)

func run(t *testing.T, input string) (*USI, string) {
	t.Helper()
	var out bytes.Buffer
	u := New(strings.NewReader(input), &out)
	if err := u.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return u, out.String()
}

func TestHandshake(t *testing.T) {
	_, out := run(t, "usi\nisready\nquit\n")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "id name ShogiPlay" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[len(lines)-2] != "usiok" || lines[len(lines)-1] != "readyok" {
		t.Errorf("unexpected handshake:\n%s", out)
	}
}

func TestPositionAndSFEN(t *testing.T) {
	u, out := run(t, strings.Join([]string{
		"position startpos moves 7g7f 3c3d",
		"sfen",
		"quit",
		"sfen",
	}, "\n"))

	want := "sfen lnsgkgsnl/1r2z2b1/pppppp1pp/6p2/9/2P6/PP1PPPPPP/1B2Z2R1/LNSGKGSNL b - 3\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if u.Position().MoveNumber() != 3 {
		t.Errorf("move number = %d", u.Position().MoveNumber())
	}
}

func TestPositionErrorKeepsPosition(t *testing.T) {
	u, out := run(t, "position startpos moves 7g7f\nposition startpos moves 7g7e\n")

	if !strings.HasPrefix(out, "info string ") || !strings.Contains(out, "illegal move") {
		t.Errorf("output = %q", out)
	}
	if len(u.Position().Moves()) != 1 {
		t.Errorf("position changed by a failed command: %s", u.Position().SFEN())
	}
}

func TestMovesAndLegal(t *testing.T) {
	_, out := run(t, strings.Join([]string{
		"position sfen 8k/9/8G/9/9/9/9/9/4K2R1 b P 1",
		"legal P*1b",
		"legal P*1d",
		"legal 5i5j",
		"legal 2i2a+",
		"legal 1a1b",
	}, "\n"))

	want := []string{
		"P*1b pseudo-legal",
		"P*1d legal",
		"info string invalid square: 5j",
		"2i2a+ legal",
		"1a1b illegal",
	}
	got := strings.Split(strings.TrimSpace(out), "\n")
	if len(got) != len(want) {
		t.Fatalf("output:\n%s", out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMovesListsLegalMoves(t *testing.T) {
	_, out := run(t, "moves\n")
	if n := len(strings.Fields(out)); n != 26 {
		t.Errorf("%d moves listed, want 26", n)
	}
}

func TestStatus(t *testing.T) {
	_, out := run(t, strings.Join([]string{
		"status",
		"position sfen 4k4/4G4/4P4/9/9/9/9/9/4K4 w - 1",
		"status",
	}, "\n"))

	if out != "status ongoing\nstatus checkmate check\n" {
		t.Errorf("output = %q", out)
	}
}

func TestPerftAndDivide(t *testing.T) {
	_, out := run(t, "perft 2\ndivide 1\n")

	if !strings.HasPrefix(out, "Nodes: 676\n") {
		t.Errorf("perft output:\n%s", out)
	}
	if !strings.Contains(out, "7g7f: 1\n") || !strings.HasSuffix(out, "Nodes: 26\n") {
		t.Errorf("divide output:\n%s", out)
	}
}

func TestSetOptionDebug(t *testing.T) {
	defer func() { board.DebugMoveValidation = false }()

	_, out := run(t, "setoption name Debug value true\nposition startpos moves 7g7f\nsetoption name Nope value 1\n")
	if !board.DebugMoveValidation {
		t.Error("debug option not applied")
	}
	if !strings.Contains(out, "info string Debug mode enabled") || !strings.Contains(out, "unknown option: Nope") {
		t.Errorf("output = %q", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, out := run(t, "go infinite\n")
	if out != "info string unknown command: go\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSetOptionPerftTuning(t *testing.T) {
	u, out := run(t, "setoption name Threads value 4\nsetoption name USI_Hash value 0\nperft 2\nsetoption name Threads value zero\n")

	if u.counter.Threads() != 4 || u.counter.Table() != nil {
		t.Errorf("counter has %d threads, table %v", u.counter.Threads(), u.counter.Table())
	}
	if !strings.HasPrefix(out, "Nodes: 676\n") {
		t.Errorf("perft output:\n%s", out)
	}
	if !strings.Contains(out, "info string invalid thread count: zero") {
		t.Errorf("bad value accepted:\n%s", out)
	}
}
