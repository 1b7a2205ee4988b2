package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/diagram"
)

func main() {
	sfen := flag.String("sfen", board.StartSFEN, "SFEN of the position to draw")
	moves := flag.String("moves", "", "USI moves to play first, space separated")
	format := flag.String("format", "svg", "output format: svg, png or kif")
	out := flag.String("o", "", "output file (default stdout)")
	size := flag.Int("size", diagram.DefaultSquareSize, "square size in pixels")
	flip := flag.Bool("flip", false, "draw from White's side")
	last := flag.Bool("last", true, "highlight the last move")
	encoding := flag.String("encoding", "utf-8", "KIF encoding: utf-8 or shift_jis")
	flag.Parse()

	cmd := "position sfen " + *sfen
	if *moves != "" {
		cmd += " moves " + *moves
	}
	pos := board.NewPosition()
	if err := pos.PushUSIPositionCmd(cmd); err != nil {
		log.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	opts := diagram.Options{SquareSize: *size, Flip: *flip, LastMove: *last}

	var err error
	switch *format {
	case "svg":
		err = diagram.WriteSVG(w, pos, opts)
	case "png":
		err = diagram.WritePNG(w, pos, opts)
	case "kif":
		var enc diagram.Encoding
		if enc, err = diagram.ParseEncoding(*encoding); err == nil {
			err = diagram.WriteKIF(w, pos, enc)
		}
	default:
		log.Fatalf("unknown format: %s", *format)
	}
	if err != nil {
		log.Fatal(err)
	}
}
