package board

import (
	"strconv"
	"strings"
)

var fullWidthDigits = [...]string{"０", "１", "２", "３", "４", "５", "６", "７", "８", "９"}

var kanjiNumbers = [...]string{
	"零", "一", "二", "三", "四", "五", "六", "七", "八", "九",
	"十", "十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八",
}

func kanjiNumber(n int) string {
	if n >= 0 && n < len(kanjiNumbers) {
		return kanjiNumbers[n]
	}
	return strconv.Itoa(n)
}

// KIF returns the position as a KIF board diagram: White's hand, the board
// with file numbers on top and rank numerals on the right, then Black's hand.
// White's pieces are marked with a leading 'v'.
func (p *Position) KIF() string {
	var sb strings.Builder

	p.writeKIFHand(&sb, White)

	sb.WriteString("\n ")
	for file := 9; file >= 1; file-- {
		sb.WriteByte(' ')
		sb.WriteString(fullWidthDigits[file])
	}
	sb.WriteString("\n+---------------------------+\n")

	for rank := 0; rank < 9; rank++ {
		sb.WriteByte('|')
		for file := 0; file < 9; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			switch {
			case piece == NoPiece:
				sb.WriteString(" ・")
			case piece.Color() == White:
				sb.WriteByte('v')
				sb.WriteString(piece.Type().JapaneseSymbol())
			default:
				sb.WriteByte(' ')
				sb.WriteString(piece.Type().JapaneseSymbol())
			}
		}
		sb.WriteByte('|')
		sb.WriteString(kanjiNumber(rank + 1))
		sb.WriteByte('\n')
	}
	sb.WriteString("+---------------------------+\n")

	p.writeKIFHand(&sb, Black)
	return sb.String()
}

func (p *Position) writeKIFHand(sb *strings.Builder, c Color) {
	if c == Black {
		sb.WriteString("先手の持駒：")
	} else {
		sb.WriteString("後手の持駒：")
	}
	for _, pt := range handOrder {
		n := int(p.hands[c][pt])
		if n == 0 {
			continue
		}
		sb.WriteString("　")
		sb.WriteString(pt.JapaneseSymbol())
		if n > 1 {
			sb.WriteString(kanjiNumber(n))
		}
	}
}
