package diagram

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hailam/shogiplay/internal/board"
)

func mustParse(t *testing.T, sfen string) *board.Position {
	t.Helper()
	pos, err := board.ParseSFEN(sfen)
	if err != nil {
		t.Fatalf("ParseSFEN(%q): %v", sfen, err)
	}
	return pos
}

func play(t *testing.T, pos *board.Position, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := pos.PushUSI(m); err != nil {
			t.Fatalf("push %s: %v", m, err)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	pos := mustParse(t, board.StandardSFEN)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, pos, Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, `class="cell"`); n != 81 {
		t.Errorf("%d cells, want 81", n)
	}
	if n := strings.Count(out, `class="piece"`); n != 40 {
		t.Errorf("%d pieces, want 40", n)
	}
	if n := strings.Count(out, "rotate(180"); n != 20 {
		t.Errorf("%d upside-down labels, want 20", n)
	}
	for _, s := range []string{"飛", "角", "玉", board.StandardSFEN} {
		if !strings.Contains(out, s) {
			t.Errorf("svg does not contain %q", s)
		}
	}
	if strings.Contains(out, lastMoveFill) {
		t.Error("highlight drawn without LastMove")
	}
}

func TestWriteSVGHighlightAndHands(t *testing.T) {
	pos := mustParse(t, board.StandardSFEN)
	play(t, pos, "7g7f", "3c3d", "8h2b+", "3a2b")

	var buf bytes.Buffer
	if err := WriteSVG(&buf, pos, Options{LastMove: true, SquareSize: 32}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, lastMoveFill); n != 2 {
		t.Errorf("%d highlighted squares, want 2", n)
	}
	if !strings.Contains(out, "▲ 角") || !strings.Contains(out, "△ 角") {
		t.Error("hands missing")
	}

	play(t, pos, "B*5e")
	buf.Reset()
	if err := WriteSVG(&buf, pos, Options{LastMove: true}); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), lastMoveFill); n != 1 {
		t.Errorf("drop highlights %d squares, want 1", n)
	}
}

func TestLayoutFlip(t *testing.T) {
	sq := board.NewSquare(0, 0) // 9a
	normal := newLayout(Options{})
	flipped := newLayout(Options{Flip: true})

	x, y := normal.cell(sq)
	if x != normal.boardX || y != normal.boardY {
		t.Errorf("9a at (%d,%d), want top left", x, y)
	}
	x, y = flipped.cell(sq)
	if x != flipped.boardX+8*flipped.size || y != flipped.boardY+8*flipped.size {
		t.Errorf("flipped 9a at (%d,%d), want bottom right", x, y)
	}

	if !normal.pointsUp(board.Black) || normal.pointsUp(board.White) {
		t.Error("black should point up")
	}
	if flipped.pointsUp(board.Black) {
		t.Error("flipped black should point down")
	}
	if got := strings.Join(flipped.fileLabels(), ""); got != "123456789" {
		t.Errorf("flipped files = %s", got)
	}
}

func near(a, b uint32) bool {
	a, b = a>>8, b>>8
	return a+2 >= b && b+2 >= a
}

func TestRenderPNG(t *testing.T) {
	pos := mustParse(t, board.StandardSFEN)
	opts := Options{SquareSize: 40}

	img, err := RenderPNG(pos, opts)
	if err != nil {
		t.Fatal(err)
	}
	l := newLayout(opts)
	if b := img.Bounds(); b.Dx() != l.width || b.Dy() != l.height {
		t.Fatalf("bounds %v, want %dx%d", b, l.width, l.height)
	}

	// An empty square is flat cell colour in its middle
	x, y := l.cell(board.NewSquare(4, 4))
	r, g, b, a := img.At(x+l.size/4, y+l.size/4).RGBA()
	if a != 0xffff || !near(r, 0xf2f2) || !near(g, 0xd5d5) || !near(b, 0x9b9b) {
		t.Errorf("empty square colour = %x %x %x %x", r, g, b, a)
	}

	// An occupied square is covered by the piece
	x, y = l.cell(board.NewSquare(2, 6))
	r2, g2, b2, _ := img.At(x+l.size/4, y+l.size*3/4).RGBA()
	if r2 == r && g2 == g && b2 == b {
		t.Error("piece not drawn on 7g")
	}
}

func TestWritePNG(t *testing.T) {
	pos := mustParse(t, board.StartSFEN)

	var buf bytes.Buffer
	if err := WritePNG(&buf, pos, Options{SquareSize: 24, Flip: true}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if l := newLayout(Options{SquareSize: 24}); img.Bounds().Dx() != l.width {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), l.width)
	}
}

func TestWriteKIF(t *testing.T) {
	pos := mustParse(t, board.StandardSFEN)
	play(t, pos, "7g7f", "3c3d", "8h2b+", "3a2b")

	var buf bytes.Buffer
	if err := WriteKIF(&buf, pos, UTF8); err != nil {
		t.Fatal(err)
	}
	want := "手合割：平手\n" +
		"先手：\n後手：\n" +
		"手数----指手---------消費時間--\n" +
		"   1 ７六歩(77)\n" +
		"   2 ３四歩(33)\n" +
		"   3 ２二角成(88)\n" +
		"   4 同　銀(31)\n"
	if got := buf.String(); got != want {
		t.Errorf("KIF =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteKIFCustomStartAndMate(t *testing.T) {
	pos := mustParse(t, "4k4/9/4P4/9/9/9/9/9/4K4 b G 1")
	play(t, pos, "G*5b")

	var buf bytes.Buffer
	if err := WriteKIF(&buf, pos, UTF8); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "平手") {
		t.Error("custom position written as 平手")
	}
	for _, s := range []string{"先手の持駒：　金", "|・・・・v玉・・・・|一", "   1 ５二金打\n", "   2 詰み\n"} {
		if !strings.Contains(strings.ReplaceAll(out, " ", ""), strings.ReplaceAll(s, " ", "")) {
			t.Errorf("KIF missing %q:\n%s", s, out)
		}
	}
}

func TestWriteKIFShiftJIS(t *testing.T) {
	pos := mustParse(t, board.StartSFEN)
	play(t, pos, "7g7f", "3c3d")

	var utf, sjis bytes.Buffer
	if err := WriteKIF(&utf, pos, UTF8); err != nil {
		t.Fatal(err)
	}
	if err := WriteKIF(&sjis, pos, ShiftJIS); err != nil {
		t.Fatal(err)
	}
	if utf8.Valid(sjis.Bytes()) {
		t.Error("shift_jis output is valid UTF-8")
	}
	if sjis.Len() >= utf.Len() {
		t.Errorf("shift_jis is %d bytes, utf-8 %d", sjis.Len(), utf.Len())
	}

	decoded, err := DecodeKIF(sjis.Bytes(), ShiftJIS)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != utf.String() {
		t.Errorf("round trip mismatch:\n%s\nwant\n%s", decoded, utf.String())
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
		ok   bool
	}{
		{"utf-8", UTF8, true},
		{"UTF8", UTF8, true},
		{"", UTF8, true},
		{"Shift_JIS", ShiftJIS, true},
		{"sjis", ShiftJIS, true},
		{"latin1", UTF8, false},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseEncoding(%q) = %v, %v", tt.in, got, err)
		}
	}
}
