package board

import (
	"strings"
	"testing"
)

func TestKIFStandardPosition(t *testing.T) {
	pos := mustParse(t, StandardSFEN)

	want := strings.Join([]string{
		"後手の持駒：",
		"  ９ ８ ７ ６ ５ ４ ３ ２ １",
		"+---------------------------+",
		"|v香v桂v銀v金v玉v金v銀v桂v香|一",
		"| ・v飛 ・ ・ ・ ・ ・v角 ・|二",
		"|v歩v歩v歩v歩v歩v歩v歩v歩v歩|三",
		"| ・ ・ ・ ・ ・ ・ ・ ・ ・|四",
		"| ・ ・ ・ ・ ・ ・ ・ ・ ・|五",
		"| ・ ・ ・ ・ ・ ・ ・ ・ ・|六",
		"| 歩 歩 歩 歩 歩 歩 歩 歩 歩|七",
		"| ・ 角 ・ ・ ・ ・ ・ 飛 ・|八",
		"| 香 桂 銀 金 玉 金 銀 桂 香|九",
		"+---------------------------+",
		"先手の持駒：",
	}, "\n")

	if got := pos.KIF(); got != want {
		t.Errorf("KIF() =\n%s\nwant\n%s", got, want)
	}
}

func TestKIFHands(t *testing.T) {
	pos := mustParse(t, "4k4/9/9/9/9/9/9/9/4K4 b R2G10Pb 1")
	kif := pos.KIF()

	if !strings.HasPrefix(kif, "後手の持駒：　角\n") {
		t.Errorf("white hand line wrong:\n%s", kif)
	}
	if !strings.HasSuffix(kif, "先手の持駒：　飛　金二　歩十") {
		t.Errorf("black hand line wrong:\n%s", kif)
	}
}

func TestMovesToKIF(t *testing.T) {
	pos := mustParse(t, StandardSFEN)
	var moves []Move
	for _, s := range []string{"7g7f", "3c3d", "8h2b+", "3a2b", "B*4e"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		moves = append(moves, m)
	}

	got := MovesToKIF(pos, moves)
	want := []string{"７六歩(77)", "３四歩(33)", "２二角成(88)", "同　銀(31)", "４五角打"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d: %s, want %s", i, got[i], want[i])
		}
	}
	if pos.SFEN() != StandardSFEN {
		t.Error("MovesToKIF modified the position")
	}
}

func TestKIFDeclinedPromotion(t *testing.T) {
	pos := mustParse(t, "4k4/9/9/4S4/9/9/9/9/4K4 b - 1")
	m := NewMove(mustSquare(t, "5d"), mustSquare(t, "5c"))
	if got := m.ToKIF(pos, NullMove); got != "５三銀不成(54)" {
		t.Errorf("ToKIF = %s", got)
	}
	if got := NullMove.ToKIF(pos, NullMove); got != "パス" {
		t.Errorf("null move = %s", got)
	}
}
