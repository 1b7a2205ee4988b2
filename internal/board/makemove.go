package board

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrIllegalMove is returned when a move from outside the package is not
// playable in the current position.
var ErrIllegalMove = errors.New("illegal move")

// Push plays a move and records it for Pop. The move must be pseudo-legal
// or the null move; Push does not check. A null move only passes the turn.
func (p *Position) Push(m Move) {
	if DebugMoveValidation && !m.IsNull() && !p.IsPseudoLegal(m) {
		log.Printf("PUSH: %v is not pseudo-legal, hash=%x", m, p.Hash())
	}

	p.moveNumber++
	captured := NoPieceType
	if !m.IsNull() {
		captured = p.squares[m.To()]
	}
	p.capturedStack = append(p.capturedStack, captured)
	p.moveStack = append(p.moveStack, m)

	if m.IsNull() {
		p.turn = p.turn.Other()
		return
	}

	var pt PieceType
	fromHand := m.IsDrop()
	if fromHand {
		pt = m.DropType()
	} else {
		from := m.From()
		pt = p.squares[from]
		if m.IsPromotion() {
			pt = pt.Promote()
		}
		p.RemovePieceAt(from, false)
	}

	if err := p.SetPieceAt(m.To(), NewPiece(pt, p.turn), fromHand, true); err != nil {
		// Only a drop without the piece in hand gets here.
		panic(fmt.Sprintf("board: push %v: %v", m, err))
	}

	p.turn = p.turn.Other()
	if p.seen == nil {
		p.seen = make(map[uint64]int)
	}
	p.seen[p.Hash()]++

	if DebugMoveValidation {
		if err := p.Validate(); err != nil {
			log.Printf("PUSH: %v left an inconsistent position: %v", m, err)
		}
	}
}

// Pop takes back the last move and returns it.
func (p *Position) Pop() (Move, error) {
	n := len(p.moveStack)
	if n == 0 {
		return NullMove, ErrEmptyMoveStack
	}
	m := p.moveStack[n-1]
	captured := p.capturedStack[n-1]
	p.moveStack = p.moveStack[:n-1]
	p.capturedStack = p.capturedStack[:n-1]
	p.moveNumber--

	if m.IsNull() {
		p.turn = p.turn.Other()
		return m, nil
	}

	h := p.Hash()
	if p.seen[h]--; p.seen[h] <= 0 {
		delete(p.seen, h)
	}

	// The side to move now is the one whose piece was captured.
	victim := p.turn
	mover := victim.Other()

	to := m.To()
	pt := p.squares[to]
	if m.IsPromotion() {
		pt = pt.Demote()
	}

	if m.IsDrop() {
		p.AddToHand(pt, mover, 1)
	} else if err := p.SetPieceAt(m.From(), NewPiece(pt, mover), false, false); err != nil {
		return m, err
	}

	if captured != NoPieceType {
		if err := p.removeFromHand(captured, mover); err != nil {
			return m, fmt.Errorf("undo %v: %w", m, err)
		}
		if err := p.SetPieceAt(to, NewPiece(captured, victim), false, false); err != nil {
			return m, err
		}
	} else {
		p.RemovePieceAt(to, false)
	}

	p.turn = mover

	if DebugMoveValidation {
		if err := p.Validate(); err != nil {
			log.Printf("POP: %v left an inconsistent position: %v", m, err)
		}
	}
	return m, nil
}

// PushUSI parses a USI move, checks that it is pseudo-legal and plays it.
// "0000" plays the null move.
func (p *Position) PushUSI(s string) (Move, error) {
	m, err := ParseMove(s)
	if err != nil {
		return NullMove, err
	}
	if !m.IsNull() && !p.IsPseudoLegal(m) {
		return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	p.Push(m)
	return m, nil
}

// PushUSIPositionCmd applies a USI position command:
//   - position startpos
//   - position startpos moves 7g7f 3c3d
//   - position sfen <sfen>
//   - position sfen <sfen> moves 7g7f
//
// On error the position is left unchanged.
func (p *Position) PushUSIPositionCmd(cmd string) error {
	fields := strings.Fields(cmd)
	if len(fields) < 2 || fields[0] != "position" {
		return fmt.Errorf("invalid position command: %q", cmd)
	}

	var (
		pos  *Position
		rest []string
		err  error
	)
	switch fields[1] {
	case "startpos":
		pos = NewPosition()
		rest = fields[2:]
	case "sfen":
		end := len(fields)
		for i := 2; i < len(fields); i++ {
			if fields[i] == "moves" {
				end = i
				break
			}
		}
		pos, err = ParseSFEN(strings.Join(fields[2:end], " "))
		if err != nil {
			return err
		}
		rest = fields[end:]
	default:
		return fmt.Errorf("position command must use startpos or sfen: %q", cmd)
	}

	if len(rest) > 0 {
		if rest[0] != "moves" {
			return fmt.Errorf("unexpected token %q in position command", rest[0])
		}
		for _, s := range rest[1:] {
			if _, err := pos.PushUSI(s); err != nil {
				return fmt.Errorf("move %d: %w", pos.MoveNumber(), err)
			}
		}
	}

	*p = *pos
	return nil
}

// GameStatus describes whether and how the game has ended.
type GameStatus uint8

const (
	Ongoing GameStatus = iota
	Checkmate
	Stalemate
	FourfoldRepetition
)

// String returns the status name.
func (s GameStatus) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FourfoldRepetition:
		return "fourfold repetition"
	default:
		return "ongoing"
	}
}

// IsCheckmate returns true if the side to move is in check with no legal move.
func (p *Position) IsCheckmate() bool {
	return p.IsCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check and has no
// legal move.
func (p *Position) IsStalemate() bool {
	return !p.IsCheck() && !p.HasLegalMoves()
}

// IsGameOver returns true on checkmate, stalemate or fourfold repetition.
func (p *Position) IsGameOver() bool {
	return !p.HasLegalMoves() || p.IsFourfoldRepetition()
}

// Status classifies the position. Mate and stalemate take precedence over
// repetition.
func (p *Position) Status() GameStatus {
	if !p.HasLegalMoves() {
		if p.IsCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if p.IsFourfoldRepetition() {
		return FourfoldRepetition
	}
	return Ongoing
}
