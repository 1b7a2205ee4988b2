package board

// Rotated coordinate systems for sliding attacks.
//
// Each line family is laid out so that every line is a run of contiguous bits:
//   - ranks: the plain square index (identity)
//   - files: rot90, column-major (file*9 + rank)
//   - diagonals with file-rank constant (step 10): rotDiagA
//   - diagonals with file+rank constant (step 8): rotDiagB
//
// The two end squares of a line never block, so a line is keyed by the 7
// squares after its first one: (rotated >> shift) & 127.
var (
	rot90    [NumSquares]uint8
	rotDiagA [NumSquares]uint8
	rotDiagB [NumSquares]uint8

	shiftRank  [NumSquares]uint8
	shiftFile  [NumSquares]uint8
	shiftDiagA [NumSquares]uint8
	shiftDiagB [NumSquares]uint8
)

func initGeometry() {
	for sq := Square(0); sq < NoSquare; sq++ {
		f, r := sq.File(), sq.Rank()
		rot90[sq] = uint8(f*9 + r)
		shiftRank[sq] = uint8(r*9 + 1)
		shiftFile[sq] = uint8(f*9 + 1)
	}

	// Diagonals are numbered 0..16 and packed in that order, each one from
	// its rank-a end downwards.
	var next uint8
	for d := 0; d < 17; d++ {
		start := next
		for r := 0; r < 9; r++ {
			f := d - 8 + r // file - rank == d - 8
			if f < 0 || f > 8 {
				continue
			}
			sq := NewSquare(f, r)
			rotDiagA[sq] = next
			shiftDiagA[sq] = start + 1
			next++
		}
	}

	next = 0
	for d := 0; d < 17; d++ {
		start := next
		for r := 0; r < 9; r++ {
			f := d - r // file + rank == d
			if f < 0 || f > 8 {
				continue
			}
			sq := NewSquare(f, r)
			rotDiagB[sq] = next
			shiftDiagB[sq] = start + 1
			next++
		}
	}
}

// Rotate90 maps a plain bitboard into the column-major coordinate space.
func Rotate90(b Bitboard) Bitboard {
	return permute(b, &rot90)
}

// RotateDiagA maps a plain bitboard into the file-rank diagonal space.
func RotateDiagA(b Bitboard) Bitboard {
	return permute(b, &rotDiagA)
}

// RotateDiagB maps a plain bitboard into the file+rank diagonal space.
func RotateDiagB(b Bitboard) Bitboard {
	return permute(b, &rotDiagB)
}

func permute(b Bitboard, table *[NumSquares]uint8) Bitboard {
	var out Bitboard
	for b.More() {
		sq := b.PopLSB()
		out = out.Set(Square(table[sq]))
	}
	return out
}

// onBoard reports whether file and rank indexes are inside the board.
func onBoard(file, rank int) bool {
	return file >= 0 && file < 9 && rank >= 0 && rank < 9
}
