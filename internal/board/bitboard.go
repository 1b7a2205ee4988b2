package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents the 81 squares of the board as a bit set.
// Bits 0-63 live in Lo, bits 64-80 in the low 17 bits of Hi.
// Every operation that can set bits above 80 masks them off.
type Bitboard struct {
	Lo, Hi uint64
}

const hiMask uint64 = 1<<(NumSquares-64) - 1

// Special masks
var (
	Empty    = Bitboard{}
	Universe = Bitboard{^uint64(0), hiMask}
)

// File and rank masks, indexed by file/rank index.
var FileMask, RankMask = lineMasks()

func lineMasks() (files, ranks [9]Bitboard) {
	for sq := Square(0); sq < NoSquare; sq++ {
		files[sq.File()] = files[sq.File()].Set(sq)
		ranks[sq.Rank()] = ranks[sq.Rank()].Set(sq)
	}
	return files, ranks
}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	if sq < 64 {
		return Bitboard{Lo: 1 << sq}
	}
	if sq < NoSquare {
		return Bitboard{Hi: 1 << (sq - 64)}
	}
	return Empty
}

// And returns the intersection of two bitboards.
func (b Bitboard) And(o Bitboard) Bitboard {
	return Bitboard{b.Lo & o.Lo, b.Hi & o.Hi}
}

// Or returns the union of two bitboards.
func (b Bitboard) Or(o Bitboard) Bitboard {
	return Bitboard{b.Lo | o.Lo, b.Hi | o.Hi}
}

// Xor returns the symmetric difference of two bitboards.
func (b Bitboard) Xor(o Bitboard) Bitboard {
	return Bitboard{b.Lo ^ o.Lo, b.Hi ^ o.Hi}
}

// AndNot returns the squares of b that are not in o.
func (b Bitboard) AndNot(o Bitboard) Bitboard {
	return Bitboard{b.Lo &^ o.Lo, b.Hi &^ o.Hi}
}

// Not returns the complement of b within the 81 board squares.
func (b Bitboard) Not() Bitboard {
	return Bitboard{^b.Lo, ^b.Hi & hiMask}
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b.Or(SquareBB(sq))
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b.AndNot(SquareBB(sq))
}

// Toggle flips the bit at the given square.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b.Xor(SquareBB(sq))
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	if sq < 64 {
		return b.Lo&(1<<sq) != 0
	}
	if sq < NoSquare {
		return b.Hi&(1<<(sq-64)) != 0
	}
	return false
}

// Intersects returns true if b and o share any square.
func (b Bitboard) Intersects(o Bitboard) bool {
	return b.Lo&o.Lo != 0 || b.Hi&o.Hi != 0
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b.Lo == 0 && b.Hi == 0
}

// More returns true if there are any bits set.
func (b Bitboard) More() bool {
	return !b.IsEmpty()
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi != 0 {
		return Square(64 + bits.TrailingZeros64(b.Hi))
	}
	return NoSquare
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	if b.Lo != 0 {
		sq := Square(bits.TrailingZeros64(b.Lo))
		b.Lo &= b.Lo - 1
		return sq
	}
	if b.Hi != 0 {
		sq := Square(64 + bits.TrailingZeros64(b.Hi))
		b.Hi &= b.Hi - 1
		return sq
	}
	return NoSquare
}

// Shr returns b shifted right by n bits (towards square 0).
func (b Bitboard) Shr(n uint) Bitboard {
	switch {
	case n == 0:
		return b
	case n >= 128:
		return Empty
	case n >= 64:
		return Bitboard{Lo: b.Hi >> (n - 64)}
	default:
		return Bitboard{Lo: b.Lo>>n | b.Hi<<(64-n), Hi: b.Hi >> n}
	}
}

// Shl returns b shifted left by n bits, masked to the board.
func (b Bitboard) Shl(n uint) Bitboard {
	switch {
	case n == 0:
		return b
	case n >= 128:
		return Empty
	case n >= 64:
		return Bitboard{Hi: b.Lo << (n - 64) & hiMask}
	default:
		return Bitboard{Lo: b.Lo << n, Hi: (b.Hi<<n | b.Lo>>(64-n)) & hiMask}
	}
}

// Bits7 returns the 7 bits starting at bit index shift. This is how the
// rotated occupancy of one line is turned into an attack table index.
func (b Bitboard) Bits7(shift uint) int {
	return int(b.Shr(shift).Lo & 127)
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b.More() {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b.More() {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard, rank a on top.
func (b Bitboard) String() string {
	var sb strings.Builder
	sb.WriteString("  9 8 7 6 5 4 3 2 1\n")
	for rank := 0; rank < 9; rank++ {
		sb.WriteByte(byte('a' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 9; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
