// Package diagram draws shogi positions as SVG and PNG images and writes
// them as KIF game records.
package diagram

import (
	"strconv"
	"strings"

	"github.com/hailam/shogiplay/internal/board"
)

// DefaultSquareSize is the side of one board square in pixels.
const DefaultSquareSize = 48

// Options controls how a diagram is drawn.
type Options struct {
	SquareSize int  // Pixels per square, DefaultSquareSize if zero
	Flip       bool // Draw from White's side
	LastMove   bool // Highlight the squares of the last move
}

// Colors
const (
	backgroundFill = "#ffffff"
	boardFill      = "#e8c47c"
	cellFill       = "#f2d59b"
	lastMoveFill   = "#c8e08a"
	pieceFill      = "#fdf3d7"
	lineColor      = "#3b2a14"
	promotedColor  = "#b22222"
)

// layout holds the pixel geometry of a diagram.
type layout struct {
	size   int
	margin int

	// Top-left corner of the board
	boardX, boardY int

	width, height int
	flip          bool
}

func newLayout(opts Options) layout {
	size := opts.SquareSize
	if size <= 0 {
		size = DefaultSquareSize
	}
	l := layout{
		size:   size,
		margin: size / 2,
		flip:   opts.Flip,
	}
	// One row of hand pieces above and below the board
	l.boardX = l.margin
	l.boardY = size + l.margin
	l.width = 9*size + 2*l.margin
	l.height = 9*size + 2*l.margin + 2*size
	return l
}

// cell returns the top-left corner of a square.
func (l layout) cell(sq board.Square) (x, y int) {
	col, row := sq.File(), sq.Rank()
	if l.flip {
		col, row = 8-col, 8-row
	}
	return l.boardX + col*l.size, l.boardY + row*l.size
}

// center returns the middle of a square.
func (l layout) center(sq board.Square) (x, y int) {
	x, y = l.cell(sq)
	return x + l.size/2, y + l.size/2
}

// pointsUp reports whether pieces of c face the top of the picture.
func (l layout) pointsUp(c board.Color) bool {
	return (c == board.Black) != l.flip
}

// handBaseline returns the text baseline of a color's hand row.
func (l layout) handBaseline(c board.Color) int {
	if l.pointsUp(c) {
		return l.boardY + 9*l.size + l.margin + l.size*2/3
	}
	return l.size * 2 / 3
}

// fileLabels returns the file numbers from left to right.
func (l layout) fileLabels() []string {
	labels := make([]string, 9)
	for col := range labels {
		file := 9 - col
		if l.flip {
			file = col + 1
		}
		labels[col] = strconv.Itoa(file)
	}
	return labels
}

// rankRow returns the screen row of a rank.
func (l layout) rankRow(rank int) int {
	if l.flip {
		return 8 - rank
	}
	return rank
}

// pieceOutline returns the pentagon of a piece on a square.
func (l layout) pieceOutline(sq board.Square, c board.Color) (xs, ys []int) {
	x, y := l.cell(sq)
	s := l.size
	// Pointing up: tip, right shoulder, right foot, left foot, left shoulder
	fx := []int{50, 78, 86, 14, 22}
	fy := []int{8, 26, 92, 92, 26}
	xs = make([]int, len(fx))
	ys = make([]int, len(fy))
	for i := range fx {
		xs[i] = x + s*fx[i]/100
		if l.pointsUp(c) {
			ys[i] = y + s*fy[i]/100
		} else {
			xs[i] = x + s - s*fx[i]/100
			ys[i] = y + s - s*fy[i]/100
		}
	}
	return xs, ys
}

// highlighted returns the squares touched by the last move.
func highlighted(pos *board.Position, opts Options) map[board.Square]bool {
	marks := make(map[board.Square]bool)
	if !opts.LastMove {
		return marks
	}
	m := pos.Peek()
	if m.IsNull() {
		return marks
	}
	marks[m.To()] = true
	if !m.IsDrop() {
		marks[m.From()] = true
	}
	return marks
}

// handText lists a hand as symbols with counts, most valuable first.
func handText(h board.Hand, symbol func(board.PieceType) string) string {
	var parts []string
	for i := len(board.HandTypes) - 1; i >= 0; i-- {
		pt := board.HandTypes[i]
		switch n := h[pt]; {
		case n == 1:
			parts = append(parts, symbol(pt))
		case n > 1:
			parts = append(parts, symbol(pt)+strconv.Itoa(int(n)))
		}
	}
	return strings.Join(parts, " ")
}
