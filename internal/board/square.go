// Package board implements the shogi position, bitboard attack tables and
// legal move generation.
package board

import "fmt"

// Square represents a square on the shogi board (0-80).
// Row-major from the top-left as seen by Black: 0 = 9a, 8 = 1a, 80 = 1i.
type Square uint8

const (
	// NumSquares is the number of squares on the board.
	NumSquares = 81

	// NoSquare marks an absent square (e.g. no king on the board).
	NoSquare Square = 81
)

// File returns the file index of the square (0-8, where 0 is file 9).
func (sq Square) File() int {
	return int(sq) % 9
}

// Rank returns the rank index of the square (0-8, where 0 is rank a).
func (sq Square) Rank() int {
	return int(sq) / 9
}

// NewSquare creates a square from file and rank indexes (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*9 + file)
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the USI name of the square (e.g. "7g").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", '9'-sq.File(), 'a'+sq.Rank())
}

// ParseSquare parses a USI square name (e.g. "7g").
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int('9' - s[0])
	rank := int(s[1] - 'a')

	if s[0] < '1' || s[0] > '9' || rank < 0 || rank > 8 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// RelativeRank returns the rank counted from the given color's far side,
// so that 0 is the last rank the color's pieces move towards.
func (sq Square) RelativeRank(c Color) int {
	if c == Black {
		return sq.Rank()
	}
	return 8 - sq.Rank()
}

// InPromotionZone returns true if the square is in the last three ranks
// for the given color.
func (sq Square) InPromotionZone(c Color) bool {
	return sq.RelativeRank(c) <= 2
}
