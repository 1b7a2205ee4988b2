package board

// Pre-computed attack tables for stepping pieces, [Color][Square]
var (
	pawnAttacks     [2][NumSquares]Bitboard
	knightAttacks   [2][NumSquares]Bitboard
	silverAttacks   [2][NumSquares]Bitboard
	goldAttacks     [2][NumSquares]Bitboard
	elephantAttacks [2][NumSquares]Bitboard
	kingAttacks     [NumSquares]Bitboard
)

// Occupancy-indexed tables for sliding pieces, [Square][7-bit line key]
var (
	rankAttacks  [NumSquares][128]Bitboard
	fileAttacks  [NumSquares][128]Bitboard
	diagAAttacks [NumSquares][128]Bitboard
	diagBAttacks [NumSquares][128]Bitboard
	lanceAttacks [2][NumSquares][128]Bitboard
)

// offset is a (file, rank) step as seen by Black; rank -1 is forward.
type offset struct{ df, dr int }

var (
	pawnOffsets   = []offset{{0, -1}}
	knightOffsets = []offset{{-1, -2}, {1, -2}}
	silverOffsets = []offset{{-1, -1}, {0, -1}, {1, -1}, {-1, 1}, {1, 1}}
	goldOffsets   = []offset{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}}
	kingOffsets   = []offset{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	// The drunk elephant moves like a king except straight back.
	elephantOffsets = []offset{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {1, 1}}
)

func init() {
	initGeometry()
	initStepAttacks()
	initSlidingAttacks()
}

func initStepAttacks() {
	for sq := Square(0); sq < NoSquare; sq++ {
		for c := Black; c <= White; c++ {
			pawnAttacks[c][sq] = stepAttacks(sq, c, pawnOffsets)
			knightAttacks[c][sq] = stepAttacks(sq, c, knightOffsets)
			silverAttacks[c][sq] = stepAttacks(sq, c, silverOffsets)
			goldAttacks[c][sq] = stepAttacks(sq, c, goldOffsets)
			elephantAttacks[c][sq] = stepAttacks(sq, c, elephantOffsets)
		}
		kingAttacks[sq] = stepAttacks(sq, Black, kingOffsets)
	}
}

// stepAttacks applies the offsets from sq, flipping them for White, and
// clips at the board edges.
func stepAttacks(sq Square, c Color, offsets []offset) Bitboard {
	dir := 1
	if c == White {
		dir = -1
	}
	var attacks Bitboard
	for _, o := range offsets {
		f, r := sq.File()+o.df, sq.Rank()+o.dr*dir
		if onBoard(f, r) {
			attacks = attacks.Set(NewSquare(f, r))
		}
	}
	return attacks
}

func initSlidingAttacks() {
	for sq := Square(0); sq < NoSquare; sq++ {
		for key := 0; key < 128; key++ {
			rankAttacks[sq][key] = slideAttacks(sq, key, nil, shiftRank[sq], offset{1, 0}, offset{-1, 0})
			fileAttacks[sq][key] = slideAttacks(sq, key, &rot90, shiftFile[sq], offset{0, 1}, offset{0, -1})
			diagAAttacks[sq][key] = slideAttacks(sq, key, &rotDiagA, shiftDiagA[sq], offset{1, 1}, offset{-1, -1})
			diagBAttacks[sq][key] = slideAttacks(sq, key, &rotDiagB, shiftDiagB[sq], offset{-1, 1}, offset{1, -1})
			lanceAttacks[Black][sq][key] = slideAttacks(sq, key, &rot90, shiftFile[sq], offset{0, -1})
			lanceAttacks[White][sq][key] = slideAttacks(sq, key, &rot90, shiftFile[sq], offset{0, 1})
		}
	}
}

// slideAttacks walks each direction from sq until the edge or the first
// square whose bit is set in key, including that square. The bit of a square
// within key is its rotated index minus shift; squares outside the 7-bit
// window never block.
func slideAttacks(sq Square, key int, rot *[NumSquares]uint8, shift uint8, dirs ...offset) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		f, r := sq.File()+d.df, sq.Rank()+d.dr
		for onBoard(f, r) {
			q := NewSquare(f, r)
			attacks = attacks.Set(q)

			idx := int(q)
			if rot != nil {
				idx = int(rot[q])
			}
			idx -= int(shift)
			if idx >= 0 && idx < 7 && key&(1<<idx) != 0 {
				break
			}
			f += d.df
			r += d.dr
		}
	}
	return attacks
}

// PawnAttacks returns the pawn attack bitboard for a square and color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// KnightAttacks returns the knight attack bitboard for a square and color.
func KnightAttacks(sq Square, c Color) Bitboard {
	return knightAttacks[c][sq]
}

// SilverAttacks returns the silver attack bitboard for a square and color.
func SilverAttacks(sq Square, c Color) Bitboard {
	return silverAttacks[c][sq]
}

// GoldAttacks returns the gold attack bitboard for a square and color.
// Promoted pawns, lances, knights and silvers move the same way.
func GoldAttacks(sq Square, c Color) Bitboard {
	return goldAttacks[c][sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// LanceAttacks returns the forward ray of a lance with given occupancy.
func LanceAttacks(sq Square, c Color, occ *Occupancy) Bitboard {
	return lanceAttacks[c][sq][occ.rot90.Bits7(uint(shiftFile[sq]))]
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occ *Occupancy) Bitboard {
	return rankAttacks[sq][occ.all.Bits7(uint(shiftRank[sq]))].
		Or(fileAttacks[sq][occ.rot90.Bits7(uint(shiftFile[sq]))])
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occ *Occupancy) Bitboard {
	return diagAAttacks[sq][occ.rotA.Bits7(uint(shiftDiagA[sq]))].
		Or(diagBAttacks[sq][occ.rotB.Bits7(uint(shiftDiagB[sq]))])
}

// AttacksFrom returns the squares a piece of kind pt and color c standing on
// sq attacks, given the occupancy. Friendly pieces are not masked out.
func AttacksFrom(pt PieceType, sq Square, occ *Occupancy, c Color) Bitboard {
	switch pt {
	case Pawn:
		return pawnAttacks[c][sq]
	case Lance:
		return LanceAttacks(sq, c, occ)
	case Knight:
		return knightAttacks[c][sq]
	case Silver:
		return silverAttacks[c][sq]
	case Gold, ProPawn, ProLance, ProKnight, ProSilver:
		return goldAttacks[c][sq]
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case King, Prince:
		return kingAttacks[sq]
	case ProBishop:
		return BishopAttacks(sq, occ).Or(kingAttacks[sq])
	case ProRook:
		return RookAttacks(sq, occ).Or(kingAttacks[sq])
	case Elephant:
		return elephantAttacks[c][sq]
	default:
		return Empty
	}
}
