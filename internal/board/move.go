package board

import "fmt"

// Move encodes a shogi move in 20 bits:
// bits 0-6:   to square (0-80)
// bits 7-13:  from square (0-80, NoSquare for drops)
// bit  14:    promotion flag
// bits 15-19: dropped piece type (0 for board moves)
type Move uint32

const (
	moveSquareMask = 0x7F
	movePromoteBit = 1 << 14
	moveDropShift  = 15
)

// NullMove passes the turn. It is also the zero value of Move.
const NullMove Move = 0

// NewMove creates a non-promoting board move.
func NewMove(from, to Square) Move {
	return Move(to) | Move(from)<<7
}

// NewPromotion creates a promoting board move.
func NewPromotion(from, to Square) Move {
	return NewMove(from, to) | movePromoteBit
}

// NewDrop creates a drop of a piece from hand.
func NewDrop(pt PieceType, to Square) Move {
	return Move(to) | Move(NoSquare)<<7 | Move(pt)<<moveDropShift
}

// From returns the origin square, or NoSquare for drops.
func (m Move) From() Square {
	return Square((m >> 7) & moveSquareMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m & moveSquareMask)
}

// IsPromotion returns true if the moving piece promotes.
func (m Move) IsPromotion() bool {
	return m&movePromoteBit != 0
}

// IsDrop returns true if this move drops a piece from hand.
func (m Move) IsDrop() bool {
	return m.DropType() != NoPieceType
}

// DropType returns the dropped piece type (NoPieceType for board moves).
func (m Move) DropType() PieceType {
	return PieceType(m >> moveDropShift)
}

// IsNull returns true for the null move.
func (m Move) IsNull() bool {
	return m == NullMove
}

// String returns the USI form of the move (e.g. "7g7f", "8h2b+", "P*5e").
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	if m.IsDrop() {
		return fmt.Sprintf("%c*%s", m.DropType().Char()-('a'-'A'), m.To())
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// ParseMove parses a USI move string. It does not check legality.
func ParseMove(s string) (Move, error) {
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) < 4 || len(s) > 5 {
		return NullMove, fmt.Errorf("invalid move string: %s", s)
	}

	if s[1] == '*' {
		if len(s) != 4 {
			return NullMove, fmt.Errorf("invalid drop: %s", s)
		}
		p := PieceFromSymbol(s[0:1])
		if p == NoPiece || p.Color() != Black || !p.Type().IsHandType() {
			return NullMove, fmt.Errorf("invalid drop piece: %c", s[0])
		}
		to, err := ParseSquare(s[2:4])
		if err != nil {
			return NullMove, err
		}
		return NewDrop(p.Type(), to), nil
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, err
	}

	if from == to {
		return NullMove, fmt.Errorf("invalid move string: %s", s)
	}

	if len(s) == 5 {
		if s[4] != '+' {
			return NullMove, fmt.Errorf("invalid promotion flag: %c", s[4])
		}
		return NewPromotion(from, to), nil
	}

	return NewMove(from, to), nil
}

// MaxMoves bounds the number of pseudo-legal moves in a position.
// The most legal moves known in a reachable position is 593.
const MaxMoves = 1024

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
