package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/shogiplay/internal/board"
)

var (
	labelFont     *opentype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

func loadLabelFont() (*opentype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// RenderPNG rasterises the position. The board and pieces are drawn as SVG
// and rendered with rasterx; labels use the Go font, so pieces are marked
// with their SFEN letters rather than kanji.
func RenderPNG(pos *board.Position, opts Options) (image.Image, error) {
	l := newLayout(opts)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(l.width, l.height, 0, 0, l.width, l.height)
	drawShapes(canvas, pos, l, highlighted(pos, opts))
	canvas.End()

	icon, err := oksvg.ReadIconStream(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(l.width), float64(l.height))

	rgba := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	scanner := rasterx.NewScannerGV(l.width, l.height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(l.width, l.height, scanner)
	icon.Draw(raster, 1.0)

	if err := drawLetterLabels(rgba, pos, l); err != nil {
		return nil, err
	}
	return rgba, nil
}

// WritePNG renders the position and encodes it as PNG.
func WritePNG(w io.Writer, pos *board.Position, opts Options) error {
	img, err := RenderPNG(pos, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func drawLetterLabels(dst *image.RGBA, pos *board.Position, l layout) error {
	f, err := loadLabelFont()
	if err != nil {
		return fmt.Errorf("load label font: %w", err)
	}
	pieceFace, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(l.size) * 0.45,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer pieceFace.Close()
	smallFace, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(l.size) * 0.35,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer smallFace.Close()

	black := image.NewUniform(color.Black)
	red := image.NewUniform(color.RGBA{0xb2, 0x22, 0x22, 0xff})
	ink := image.NewUniform(color.RGBA{0x3b, 0x2a, 0x14, 0xff})

	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		src := black
		if piece.Type().IsPromoted() {
			src = red
		}
		cx, cy := l.center(sq)
		drawCentered(dst, pieceFace, src, piece.String(), cx, cy+l.size/12)
	}

	for col, label := range l.fileLabels() {
		drawCentered(dst, smallFace, ink, label, l.boardX+col*l.size+l.size/2, l.boardY-l.margin/2)
	}
	for rank := range 9 {
		y := l.boardY + l.rankRow(rank)*l.size + l.size/2
		drawCentered(dst, smallFace, ink, string(rune('a'+rank)), l.boardX+9*l.size+l.margin/2, y)
	}

	for _, c := range []board.Color{board.Black, board.White} {
		text := c.String() + ": " + handText(pos.Hand(c), func(pt board.PieceType) string {
			return strings.ToUpper(string(pt.Char()))
		})
		d := &font.Drawer{Dst: dst, Src: ink, Face: smallFace}
		d.Dot = fixed.P(l.boardX, l.handBaseline(c))
		d.DrawString(text)
	}
	return nil
}

// drawCentered draws s with its middle at (cx, cy).
func drawCentered(dst *image.RGBA, face font.Face, src image.Image, s string, cx, cy int) {
	d := &font.Drawer{Dst: dst, Src: src, Face: face}
	width := d.MeasureString(s)
	capHeight := face.Metrics().CapHeight
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - width/2,
		Y: fixed.I(cy) + capHeight/2,
	}
	d.DrawString(s)
}
