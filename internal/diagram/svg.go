package diagram

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/shogiplay/internal/board"
)

var rankKanji = [9]string{"一", "二", "三", "四", "五", "六", "七", "八", "九"}

// WriteSVG draws the position as an SVG document. Pieces are labelled with
// their kanji; White's pieces are drawn upside down.
func WriteSVG(w io.Writer, pos *board.Position, opts Options) error {
	ew := &errWriter{w: w}
	l := newLayout(opts)
	canvas := svg.New(ew)
	canvas.Startview(l.width, l.height, 0, 0, l.width, l.height)
	canvas.Title(pos.SFEN())
	drawShapes(canvas, pos, l, highlighted(pos, opts))
	drawKanjiLabels(canvas, pos, l)
	canvas.End()
	return ew.err
}

// drawShapes draws everything but text: background, board, squares and
// piece outlines.
func drawShapes(canvas *svg.SVG, pos *board.Position, l layout, marks map[board.Square]bool) {
	canvas.Rect(0, 0, l.width, l.height, "fill:"+backgroundFill)
	canvas.Rect(l.boardX-l.margin/4, l.boardY-l.margin/4, 9*l.size+l.margin/2, 9*l.size+l.margin/2,
		"fill:"+boardFill)

	canvas.Gid("squares")
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		x, y := l.cell(sq)
		fill := cellFill
		if marks[sq] {
			fill = lastMoveFill
		}
		canvas.Rect(x, y, l.size, l.size, `class="cell"`,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", fill, lineColor))
	}
	canvas.Gend()

	canvas.Gid("pieces")
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		xs, ys := l.pieceOutline(sq, piece.Color())
		canvas.Polygon(xs, ys, `class="piece"`,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", pieceFill, lineColor))
	}
	canvas.Gend()
}

func drawKanjiLabels(canvas *svg.SVG, pos *board.Position, l layout) {
	fontSize := l.size * 11 / 20
	canvas.Gstyle(fmt.Sprintf("font-family:serif;text-anchor:middle;font-size:%dpx", fontSize))

	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		pt := piece.Type()
		cx, cy := l.center(sq)
		style := "fill:#000000"
		if pt.IsPromoted() {
			style = "fill:" + promotedColor
		}
		baseline := cy + fontSize*2/5
		if l.pointsUp(piece.Color()) {
			canvas.Text(cx, baseline, pt.JapaneseSymbol(), style)
		} else {
			canvas.Text(cx, baseline, pt.JapaneseSymbol(), style,
				fmt.Sprintf(`transform="rotate(180 %d %d)"`, cx, cy))
		}
	}

	small := fmt.Sprintf("font-size:%dpx;fill:%s", l.size*2/5, lineColor)
	for col, label := range l.fileLabels() {
		canvas.Text(l.boardX+col*l.size+l.size/2, l.boardY-l.margin/3, label, small)
	}
	for rank := range 9 {
		y := l.boardY + l.rankRow(rank)*l.size + l.size/2 + l.size/6
		canvas.Text(l.boardX+9*l.size+l.margin/2, y, rankKanji[rank], small)
	}

	for _, c := range []board.Color{board.Black, board.White} {
		mark := "▲"
		if c == board.White {
			mark = "△"
		}
		text := mark + " " + handText(pos.Hand(c), board.PieceType.JapaneseSymbol)
		canvas.Text(l.width/2, l.handBaseline(c), text, `class="hand"`)
	}

	canvas.Gend()
}

// errWriter remembers the first write error, since svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
