package diagram

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/hailam/shogiplay/internal/board"
)

// Encoding selects the character set of KIF output.
type Encoding int

const (
	UTF8 Encoding = iota
	ShiftJIS
)

// String returns the encoding name.
func (e Encoding) String() string {
	if e == ShiftJIS {
		return "shift_jis"
	}
	return "utf-8"
}

// ParseEncoding accepts the usual spellings of UTF-8 and Shift-JIS.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "utf8", "utf_8", "":
		return UTF8, nil
	case "sjis", "shift_jis", "shiftjis", "cp932":
		return ShiftJIS, nil
	}
	return UTF8, fmt.Errorf("unknown encoding: %s", s)
}

// WriteKIF writes the game leading to pos as a KIF record: the starting
// position (as 平手 when it is the standard layout), the numbered moves and
// the result when the game is over.
func WriteKIF(w io.Writer, pos *board.Position, enc Encoding) error {
	if enc != ShiftJIS {
		return writeKIF(w, pos)
	}
	tw := transform.NewWriter(w, japanese.ShiftJIS.NewEncoder())
	if err := writeKIF(tw, pos); err != nil {
		return err
	}
	return tw.Close()
}

func writeKIF(w io.Writer, pos *board.Position) error {
	start := pos.Copy()
	for {
		if _, err := start.Pop(); err != nil {
			break
		}
	}

	bw := bufio.NewWriter(w)
	if start.SFEN() == board.StandardSFEN {
		bw.WriteString("手合割：平手\n")
	} else {
		bw.WriteString(start.KIF())
		bw.WriteString("\n")
		if start.SideToMove() == board.White {
			bw.WriteString("後手番\n")
		}
	}
	bw.WriteString("先手：\n後手：\n")
	bw.WriteString("手数----指手---------消費時間--\n")

	moves := pos.Moves()
	for i, s := range board.MovesToKIF(start, moves) {
		fmt.Fprintf(bw, "%4d %s\n", i+1, s)
	}

	switch pos.Status() {
	case board.Checkmate, board.Stalemate:
		fmt.Fprintf(bw, "%4d 詰み\n", len(moves)+1)
	case board.FourfoldRepetition:
		fmt.Fprintf(bw, "%4d 千日手\n", len(moves)+1)
	}
	return bw.Flush()
}

// DecodeKIF returns KIF text as UTF-8, decoding it first when enc is
// ShiftJIS.
func DecodeKIF(data []byte, enc Encoding) (string, error) {
	if enc != ShiftJIS {
		return string(data), nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode shift_jis: %w", err)
	}
	return string(decoded), nil
}
