package board

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DebugMoveValidation enables a full invariant check after every Push and
// Pop. Violations are logged. Slow; meant for development and tests.
var DebugMoveValidation = false

var (
	// ErrNotInHand is returned when a drop or an undo needs a piece the
	// hand does not hold. It signals a corrupted position or a caller bug.
	ErrNotInHand = errors.New("piece not in hand")

	// ErrEmptyMoveStack is returned by Pop when there is nothing to undo.
	ErrEmptyMoveStack = errors.New("move stack is empty")
)

// Hand holds the number of captured pieces of each base kind, indexed by
// PieceType (Pawn..Rook). Index 0 is unused.
type Hand [Rook + 1]uint8

// maxInHand is the number of pieces of each kind in a full set.
var maxInHand = Hand{Pawn: 18, Lance: 4, Knight: 4, Silver: 4, Gold: 4, Bishop: 2, Rook: 2}

// IsEmpty returns true if the hand holds nothing.
func (h Hand) IsEmpty() bool {
	return h == Hand{}
}

// Position represents a complete shogi position with its move history.
type Position struct {
	// Piece bitboards by kind, both colors together
	pieceBB [numPieceTypes]Bitboard

	// Kind on each square, kept in step with pieceBB
	squares [NumSquares]PieceType

	occ   Occupancy
	hands [2]Hand

	// Royal pieces: the king and the promoted elephant (prince)
	kingSquare   [2]Square
	princeSquare [2]Square
	livingRoyals [2]int

	turn       Color
	moveNumber int

	// Parallel stacks for Pop
	moveStack     []Move
	capturedStack []PieceType

	// Zobrist hash of the piece placement only
	boardHash uint64

	// Number of times each full position hash has been reached
	seen map[uint64]int
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseSFEN(StartSFEN)
	return pos
}

// NewEmptyPosition creates a position with no pieces, Black to move.
func NewEmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// Reset restores the starting position.
func (p *Position) Reset() {
	*p = *NewPosition()
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{
		kingSquare:   [2]Square{NoSquare, NoSquare},
		princeSquare: [2]Square{NoSquare, NoSquare},
		turn:         Black,
		moveNumber:   1,
	}
	p.resetRepetitions()
}

// resetRepetitions forgets the history and counts the current position once.
func (p *Position) resetRepetitions() {
	p.seen = map[uint64]int{p.Hash(): 1}
}

// Copy creates a deep copy of the position, history included.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.moveStack = slices.Clone(p.moveStack)
	newPos.capturedStack = slices.Clone(p.capturedStack)
	newPos.seen = maps.Clone(p.seen)
	return &newPos
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	return p.turn
}

// MoveNumber returns the 1-based ply counter.
func (p *Position) MoveNumber() int {
	return p.moveNumber
}

// PieceTypeAt returns the kind on the square, or NoPieceType.
func (p *Position) PieceTypeAt(sq Square) PieceType {
	return p.squares[sq]
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	pt := p.squares[sq]
	if pt == NoPieceType {
		return NoPiece
	}
	return NewPiece(pt, p.colorAt(sq))
}

// colorAt returns the color of the piece on an occupied square.
func (p *Position) colorAt(sq Square) Color {
	if p.occ.byColor[White].IsSet(sq) {
		return White
	}
	return Black
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.squares[sq] == NoPieceType
}

// Pieces returns the bitboard of all pieces of a kind, both colors.
func (p *Position) Pieces(pt PieceType) Bitboard {
	return p.pieceBB[pt]
}

// PiecesOf returns the bitboard of the pieces of a kind and color.
func (p *Position) PiecesOf(pt PieceType, c Color) Bitboard {
	return p.pieceBB[pt].And(p.occ.byColor[c])
}

// Occupancy returns the occupancy tracker. It must not be modified.
func (p *Position) Occupancy() *Occupancy {
	return &p.occ
}

// Hand returns the hand of a color.
func (p *Position) Hand(c Color) Hand {
	return p.hands[c]
}

// HandCount returns the number of pieces of a base kind in a color's hand.
func (p *Position) HandCount(c Color, pt PieceType) int {
	if !pt.IsHandType() {
		return 0
	}
	return int(p.hands[c][pt.Demote()])
}

// KingSquare returns the king square of a color, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// PrinceSquare returns the promoted elephant square of a color, or NoSquare.
func (p *Position) PrinceSquare(c Color) Square {
	return p.princeSquare[c]
}

// LivingRoyals returns how many royal pieces a color has on the board.
func (p *Position) LivingRoyals(c Color) int {
	return p.livingRoyals[c]
}

// Moves returns a copy of the move history, oldest first.
func (p *Position) Moves() []Move {
	return slices.Clone(p.moveStack)
}

// Peek returns the last move played, or NullMove if there is none.
func (p *Position) Peek() Move {
	if len(p.moveStack) == 0 {
		return NullMove
	}
	return p.moveStack[len(p.moveStack)-1]
}

// AddToHand puts count pieces of pt's base kind into a color's hand.
// Kings, elephants and princes are never held and are ignored.
func (p *Position) AddToHand(pt PieceType, c Color, count int) {
	if !pt.IsHandType() || count <= 0 {
		return
	}
	p.hands[c][pt.Demote()] += uint8(count)
}

// removeFromHand takes one piece of pt's base kind out of a color's hand.
// Kinds that are never held are a no-op.
func (p *Position) removeFromHand(pt PieceType, c Color) error {
	if !pt.IsHandType() {
		return nil
	}
	base := pt.Demote()
	if p.hands[c][base] == 0 {
		return fmt.Errorf("%w: %s", ErrNotInHand, NewPiece(base, c))
	}
	p.hands[c][base]--
	return nil
}

// RemovePieceAt removes the piece on sq if there is one. With intoHand the
// piece's base kind goes to the hand of the side to move.
func (p *Position) RemovePieceAt(sq Square, intoHand bool) {
	pt := p.squares[sq]
	if pt == NoPieceType {
		return
	}
	c := p.colorAt(sq)

	if intoHand {
		p.AddToHand(pt, p.turn, 1)
	}

	p.pieceBB[pt] = p.pieceBB[pt].Clear(sq)
	p.squares[sq] = NoPieceType
	p.occ.Toggle(sq, c)

	switch pt {
	case King:
		p.livingRoyals[c]--
		if p.kingSquare[c] == sq {
			p.kingSquare[c] = NoSquare
		}
	case Prince:
		p.livingRoyals[c]--
		if p.princeSquare[c] == sq {
			p.princeSquare[c] = NoSquare
		}
	}

	p.boardHash ^= zobristPiece[c][pt][sq]
}

// SetPieceAt places a piece on sq, replacing whatever is there. With
// fromHand the piece is taken from the hand of the side to move; with
// intoHand a replaced piece goes to that hand.
func (p *Position) SetPieceAt(sq Square, piece Piece, fromHand, intoHand bool) error {
	if piece == NoPiece {
		p.RemovePieceAt(sq, intoHand)
		return nil
	}
	pt, c := piece.Type(), piece.Color()

	if fromHand {
		if err := p.removeFromHand(pt, p.turn); err != nil {
			return err
		}
	}

	p.RemovePieceAt(sq, intoHand)

	p.squares[sq] = pt
	p.pieceBB[pt] = p.pieceBB[pt].Set(sq)

	switch pt {
	case King:
		p.kingSquare[c] = sq
		p.livingRoyals[c]++
	case Prince:
		p.princeSquare[c] = sq
		p.livingRoyals[c]++
	}

	p.occ.Toggle(sq, c)
	p.boardHash ^= zobristPiece[c][pt][sq]
	return nil
}

// Equal reports whether two positions have the same pieces, hands, side to
// move and move number.
func (p *Position) Equal(o *Position) bool {
	return p.pieceBB == o.pieceBB &&
		p.occ.byColor == o.occ.byColor &&
		p.hands == o.hands &&
		p.turn == o.turn &&
		p.moveNumber == o.moveNumber
}

// Validate checks that every derived field agrees with the piece bitboards.
func (p *Position) Validate() error {
	var union Bitboard
	for pt := Pawn; pt < numPieceTypes; pt++ {
		if union.Intersects(p.pieceBB[pt]) {
			return fmt.Errorf("%s bitboard overlaps another kind", pt)
		}
		union = union.Or(p.pieceBB[pt])
	}
	if p.pieceBB[NoPieceType].More() {
		return errors.New("empty kind bitboard is not empty")
	}
	if !p.occ.Consistent() {
		return errors.New("occupancy views disagree")
	}
	if union != p.occ.all {
		return errors.New("piece bitboards do not match occupancy")
	}

	for sq := Square(0); sq < NoSquare; sq++ {
		pt := p.squares[sq]
		if pt == NoPieceType {
			if union.IsSet(sq) {
				return fmt.Errorf("square %s cached empty but occupied", sq)
			}
			continue
		}
		if !p.pieceBB[pt].IsSet(sq) {
			return fmt.Errorf("square %s cached as %s but bitboard disagrees", sq, pt)
		}
	}

	for c := Black; c <= White; c++ {
		kings := p.PiecesOf(King, c)
		princes := p.PiecesOf(Prince, c)
		if n := kings.PopCount() + princes.PopCount(); n != p.livingRoyals[c] {
			return fmt.Errorf("%s has %d royal pieces, counted %d", c, n, p.livingRoyals[c])
		}
		if ks := p.kingSquare[c]; ks != NoSquare && !kings.IsSet(ks) {
			return fmt.Errorf("%s king square %s holds no king", c, ks)
		}
		if ps := p.princeSquare[c]; ps != NoSquare && !princes.IsSet(ps) {
			return fmt.Errorf("%s prince square %s holds no prince", c, ps)
		}
	}

	if len(p.moveStack) != len(p.capturedStack) {
		return errors.New("move and capture stacks differ in length")
	}
	if h := p.ComputeBoardHash(); h != p.boardHash {
		return fmt.Errorf("board hash %016x, recomputed %016x", p.boardHash, h)
	}
	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	for sq := Square(0); sq < NoSquare; sq++ {
		piece := p.PieceAt(sq)
		if piece == NoPiece {
			sb.WriteString(" .")
		} else {
			if !piece.Type().IsPromoted() {
				sb.WriteByte(' ')
			}
			sb.WriteString(piece.String())
		}
		if sq.File() == 8 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}

	if !p.hands[Black].IsEmpty() || !p.hands[White].IsEmpty() {
		sb.WriteByte('\n')
		for c := Black; c <= White; c++ {
			for _, pt := range HandTypes {
				if n := p.hands[c][pt]; n > 0 {
					fmt.Fprintf(&sb, " %s*%d", NewPiece(pt, c), n)
				}
			}
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "\nSide to move: %s\n", p.turn)
	fmt.Fprintf(&sb, "Move number: %d\n", p.moveNumber)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash())
	return sb.String()
}
