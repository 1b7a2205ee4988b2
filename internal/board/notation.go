package board

import (
	"strings"
)

// ToKIF converts a move to KIF notation, e.g. "７六歩(77)", "同　歩(76)",
// "２二角成(88)", "５五歩打". prev is the move played just before, used to
// write "同" for a recapture on the same square.
func (m Move) ToKIF(pos *Position, prev Move) string {
	if m.IsNull() {
		return "パス"
	}

	var sb strings.Builder
	to := m.To()

	// Destination
	if !prev.IsNull() && prev.To() == to {
		sb.WriteString("同　")
	} else {
		sb.WriteString(fullWidthDigits[9-to.File()])
		sb.WriteString(kanjiNumber(to.Rank() + 1))
	}

	if m.IsDrop() {
		sb.WriteString(m.DropType().JapaneseSymbol())
		sb.WriteString("打")
		return sb.String()
	}

	from := m.From()
	pt := pos.PieceTypeAt(from)
	if pt == NoPieceType {
		return m.String() // Fallback to USI
	}
	sb.WriteString(pt.JapaneseSymbol())

	// Promotion, or declining an available one
	if m.IsPromotion() {
		sb.WriteString("成")
	} else if canPromote(from, to, pt, pos.SideToMove()) {
		sb.WriteString("不成")
	}

	// Origin as half-width file and rank digits
	sb.WriteByte('(')
	sb.WriteByte(byte('9' - from.File()))
	sb.WriteByte(byte('1' + from.Rank()))
	sb.WriteByte(')')

	return sb.String()
}

// MovesToKIF converts a sequence of moves played from pos to KIF notation.
// pos is not modified.
func MovesToKIF(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	prev := p.Peek()
	for i, m := range moves {
		result[i] = m.ToKIF(p, prev)
		p.Push(m)
		prev = m
	}

	return result
}
