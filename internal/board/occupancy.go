package board

// Occupancy tracks which squares are occupied, per color, combined, and in
// the three rotated coordinate spaces used for sliding attacks.
// all == byColor[Black] | byColor[White] and each rotated bitboard is the
// permutation image of all after every Toggle.
type Occupancy struct {
	byColor [2]Bitboard
	all     Bitboard
	rot90   Bitboard
	rotA    Bitboard
	rotB    Bitboard
}

// NewOccupancy builds an occupancy from per-color bitboards.
func NewOccupancy(black, white Bitboard) Occupancy {
	all := black.Or(white)
	return Occupancy{
		byColor: [2]Bitboard{black, white},
		all:     all,
		rot90:   Rotate90(all),
		rotA:    RotateDiagA(all),
		rotB:    RotateDiagB(all),
	}
}

// Toggle flips the occupancy of sq for color c in every view.
func (o *Occupancy) Toggle(sq Square, c Color) {
	bb := SquareBB(sq)
	o.all = o.all.Xor(bb)
	o.byColor[c] = o.byColor[c].Xor(bb)
	o.rot90 = o.rot90.Toggle(Square(rot90[sq]))
	o.rotA = o.rotA.Toggle(Square(rotDiagA[sq]))
	o.rotB = o.rotB.Toggle(Square(rotDiagB[sq]))
}

// ByColor returns the squares occupied by color c.
func (o *Occupancy) ByColor(c Color) Bitboard {
	return o.byColor[c]
}

// All returns every occupied square.
func (o *Occupancy) All() Bitboard {
	return o.all
}

// NonOccupied returns every empty square.
func (o *Occupancy) NonOccupied() Bitboard {
	return o.all.Not()
}

// Rotated90 returns the column-major rotated occupancy.
func (o *Occupancy) Rotated90() Bitboard {
	return o.rot90
}

// RotatedDiagA returns the file-rank diagonal rotated occupancy.
func (o *Occupancy) RotatedDiagA() Bitboard {
	return o.rotA
}

// RotatedDiagB returns the file+rank diagonal rotated occupancy.
func (o *Occupancy) RotatedDiagB() Bitboard {
	return o.rotB
}

// Consistent reports whether the combined and rotated views agree with the
// per-color bitboards.
func (o *Occupancy) Consistent() bool {
	all := o.byColor[Black].Or(o.byColor[White])
	return !o.byColor[Black].Intersects(o.byColor[White]) &&
		o.all == all &&
		o.rot90 == Rotate90(all) &&
		o.rotA == RotateDiagA(all) &&
		o.rotB == RotateDiagB(all)
}
