package board

import (
	"iter"
	"log"
)

// GenOptions selects which piece kinds may move and which may be dropped.
// The zero value generates nothing; GenAll generates everything.
type GenOptions uint32

const dropFlagShift = numPieceTypes

// Board move flags, one per piece kind.
const (
	GenPawn GenOptions = 1 << (iota + 1)
	GenLance
	GenKnight
	GenSilver
	GenGold
	GenBishop
	GenRook
	GenKing
	GenProPawn
	GenProLance
	GenProKnight
	GenProSilver
	GenProBishop
	GenProRook
	GenElephant
	GenPrince
)

// Drop flags, one per hand kind.
const (
	GenDropPawn GenOptions = 1 << (dropFlagShift + iota + 1)
	GenDropLance
	GenDropKnight
	GenDropSilver
	GenDropGold
	GenDropBishop
	GenDropRook
)

const (
	GenAllBoardMoves = GenPawn | GenLance | GenKnight | GenSilver | GenGold | GenBishop | GenRook |
		GenKing | GenProPawn | GenProLance | GenProKnight | GenProSilver | GenProBishop | GenProRook |
		GenElephant | GenPrince
	GenAllDrops = GenDropPawn | GenDropLance | GenDropKnight | GenDropSilver | GenDropGold |
		GenDropBishop | GenDropRook
	GenAll = GenAllBoardMoves | GenAllDrops
)

// Moves reports whether board moves of kind pt are selected.
func (o GenOptions) Moves(pt PieceType) bool {
	return o&(1<<pt) != 0
}

// Drops reports whether drops of kind pt are selected.
func (o GenOptions) Drops(pt PieceType) bool {
	return pt.IsHandType() && o&(1<<(dropFlagShift+pt)) != 0
}

// PseudoLegalMoves yields the moves allowed by piece movement, promotion,
// dead-piece and double-pawn rules. Moves may leave a royal piece attacked or
// be a pawn-drop mate. Board moves come first, grouped by kind, then drops
// by destination. The position must not be changed while iterating, except
// by balanced Push/Pop pairs.
func (p *Position) PseudoLegalMoves(opts GenOptions) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		us := p.turn
		own := p.occ.byColor[us]

		if DebugMoveValidation && p.livingRoyals[us] == 0 {
			log.Printf("MOVEGEN: %v has no royal piece, hash=%x", us, p.Hash())
		}

		for _, pt := range AllPieceTypes {
			if !opts.Moves(pt) {
				continue
			}
			movers := p.pieceBB[pt].And(own)
			for movers.More() {
				from := movers.PopLSB()
				targets := AttacksFrom(pt, from, &p.occ, us).AndNot(own)
				for targets.More() {
					to := targets.PopLSB()
					if canMoveWithoutPromotion(to, pt, us) {
						if !yield(NewMove(from, to)) {
							return
						}
					}
					if canPromote(from, to, pt, us) {
						if !yield(NewPromotion(from, to)) {
							return
						}
					}
				}
			}
		}

		if (opts&GenAllDrops) == 0 || p.hands[us].IsEmpty() {
			return
		}
		empty := p.occ.NonOccupied()
		for empty.More() {
			to := empty.PopLSB()
			for _, pt := range HandTypes {
				if !opts.Drops(pt) || p.hands[us][pt] == 0 {
					continue
				}
				if !canMoveWithoutPromotion(to, pt, us) || p.isDoublePawn(to, pt) {
					continue
				}
				if !yield(NewDrop(pt, to)) {
					return
				}
			}
		}
	}
}

// LegalMoves yields the pseudo-legal moves that neither expose the mover's
// only royal piece nor mate by dropping a pawn.
func (p *Position) LegalMoves(opts GenOptions) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for m := range p.PseudoLegalMoves(opts) {
			if p.isSuicideOrPawnDropMate(m) {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}

// GeneratePseudoLegalMoves collects every pseudo-legal move into a list.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	for m := range p.PseudoLegalMoves(GenAll) {
		ml.Add(m)
	}
	return ml
}

// GenerateLegalMoves collects every legal move into a list.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	for m := range p.LegalMoves(GenAll) {
		ml.Add(m)
	}
	return ml
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	for range p.LegalMoves(GenAll) {
		return true
	}
	return false
}

// canMoveWithoutPromotion reports whether a piece of kind pt may stand on to
// unpromoted. Pawns and lances need a square ahead, knights two ranks.
func canMoveWithoutPromotion(to Square, pt PieceType, c Color) bool {
	switch pt {
	case Pawn, Lance:
		return to.RelativeRank(c) > 0
	case Knight:
		return to.RelativeRank(c) > 1
	default:
		return true
	}
}

// canPromote reports whether a move of kind pt between from and to may promote.
func canPromote(from, to Square, pt PieceType, c Color) bool {
	return pt.CanPromote() && (from.InPromotionZone(c) || to.InPromotionZone(c))
}

// isDoublePawn reports whether dropping a pawn on to would give the side to
// move two unpromoted pawns on one file.
func (p *Position) isDoublePawn(to Square, pt PieceType) bool {
	if pt != Pawn {
		return false
	}
	return p.PiecesOf(Pawn, p.turn).Intersects(FileMask[to.File()])
}

// IsAttackedBy reports whether a piece of one of the given kinds belonging
// to color attacks sq. NoSquare is never attacked.
func (p *Position) IsAttackedBy(color Color, sq Square, kinds []PieceType) bool {
	if sq >= NoSquare {
		return false
	}
	attackers := p.occ.byColor[color]
	for _, pt := range kinds {
		pieces := p.pieceBB[pt].And(attackers)
		if pieces.IsEmpty() {
			continue
		}
		// A piece of color attacks sq exactly when the same kind of the
		// other color standing on sq would attack it.
		if AttacksFrom(pt, sq, &p.occ, color.Other()).Intersects(pieces) {
			return true
		}
	}
	return false
}

// IsAttacked reports whether any piece of color attacks sq.
func (p *Position) IsAttacked(color Color, sq Square) bool {
	return p.IsAttackedBy(color, sq, AllPieceTypes[:])
}

// AttackersOf returns every piece of color that attacks sq.
func (p *Position) AttackersOf(color Color, sq Square) Bitboard {
	var attackers Bitboard
	if sq >= NoSquare {
		return attackers
	}
	own := p.occ.byColor[color]
	for _, pt := range AllPieceTypes {
		pieces := p.pieceBB[pt].And(own)
		if pieces.More() {
			attackers = attackers.Or(AttacksFrom(pt, sq, &p.occ, color.Other()).And(pieces))
		}
	}
	return attackers
}

// royalAttacked reports whether the single royal piece of c is attacked.
// With two royals on the board neither is in danger.
func (p *Position) royalAttacked(c Color) bool {
	if p.livingRoyals[c] != 1 {
		return false
	}
	them := c.Other()
	return p.IsAttacked(them, p.kingSquare[c]) || p.IsAttacked(them, p.princeSquare[c])
}

// IsCheck returns true if the side to move has exactly one royal piece and
// it is attacked.
func (p *Position) IsCheck() bool {
	return p.royalAttacked(p.turn)
}

// isSuicideOrPawnDropMate plays m, checks both illegality conditions and
// takes it back.
func (p *Position) isSuicideOrPawnDropMate(m Move) bool {
	p.Push(m)
	bad := p.wasSuicide() || p.wasPawnDropMate(m)
	if _, err := p.Pop(); err != nil {
		log.Printf("MOVEGEN: undo of %v failed: %v", m, err)
	}
	return bad
}

// wasSuicide reports whether the last move left the mover's only royal
// piece attacked. Called after Push.
func (p *Position) wasSuicide() bool {
	return p.royalAttacked(p.turn.Other())
}

// wasPawnDropMate reports whether m, just played, dropped a pawn that
// checkmates. Called after Push, so the side to move is the defender.
func (p *Position) wasPawnDropMate(m Move) bool {
	if m.DropType() != Pawn {
		return false
	}
	defender := p.turn
	attacker := defender.Other()
	if p.livingRoyals[defender] != 1 {
		return false
	}
	royal := p.kingSquare[defender]
	if royal == NoSquare {
		royal = p.princeSquare[defender]
	}

	pawnSq := m.To()
	if !PawnAttacks(pawnSq, attacker).IsSet(royal) {
		return false
	}

	// Escape squares of the royal. Lines through the royal's own square
	// cannot hide an attack: any slider on such a line would already be
	// giving check, which the attacker could not have allowed.
	escapes := KingAttacks(royal).AndNot(p.occ.byColor[defender])
	for escapes.More() {
		if !p.IsAttacked(attacker, escapes.PopLSB()) {
			return false
		}
	}

	// Some other defender takes the pawn without exposing the royal.
	capturers := p.AttackersOf(defender, pawnSq)
	capturers = capturers.AndNot(p.pieceBB[King]).AndNot(p.pieceBB[Prince])
	for capturers.More() {
		from := capturers.PopLSB()
		pt := p.squares[from]
		capture := NewMove(from, pawnSq)
		if !canMoveWithoutPromotion(pawnSq, pt, defender) {
			capture = NewPromotion(from, pawnSq)
		}
		p.Push(capture)
		exposed := p.wasSuicide()
		if _, err := p.Pop(); err != nil {
			log.Printf("MOVEGEN: undo of %v failed: %v", capture, err)
		}
		if !exposed {
			return false
		}
	}
	return true
}

// IsPseudoLegal reports whether m is one of the moves PseudoLegalMoves would
// generate with GenAll. The null move is not pseudo-legal.
func (p *Position) IsPseudoLegal(m Move) bool {
	if m.IsNull() {
		return false
	}
	us := p.turn
	to := m.To()
	if to >= NoSquare {
		return false
	}

	if m.IsDrop() {
		pt := m.DropType()
		if m.IsPromotion() || m.From() != NoSquare || !pt.IsHandType() || pt != pt.Demote() {
			return false
		}
		if p.hands[us][pt] == 0 || !p.IsEmpty(to) {
			return false
		}
		return canMoveWithoutPromotion(to, pt, us) && !p.isDoublePawn(to, pt)
	}

	from := m.From()
	if from >= NoSquare {
		return false
	}
	pt := p.squares[from]
	if pt == NoPieceType || p.colorAt(from) != us {
		return false
	}
	if p.occ.byColor[us].IsSet(to) {
		return false
	}
	if !AttacksFrom(pt, from, &p.occ, us).IsSet(to) {
		return false
	}
	if m.IsPromotion() {
		return canPromote(from, to, pt, us)
	}
	return canMoveWithoutPromotion(to, pt, us)
}

// IsLegal reports whether m is pseudo-legal, does not expose the mover's
// only royal piece and is not a pawn-drop mate.
func (p *Position) IsLegal(m Move) bool {
	return p.IsPseudoLegal(m) && !p.isSuicideOrPawnDropMate(m)
}
