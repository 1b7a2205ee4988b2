package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][numPieceTypes][NumSquares]uint64 // [Color][PieceType][Square]
	zobristHand       [2][Rook + 1][256]uint64             // [Color][PieceType][count]
	zobristSideToMove uint64                               // XOR when white to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x5A0B17E2C0FFEE81) // Fixed seed

	for c := Black; c <= White; c++ {
		for pt := Pawn; pt < numPieceTypes; pt++ {
			for sq := Square(0); sq < NoSquare; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	// An empty hand slot contributes nothing.
	for c := Black; c <= White; c++ {
		for _, pt := range HandTypes {
			for n := 1; n < 256; n++ {
				zobristHand[c][pt][n] = rng.next()
			}
		}
	}

	zobristSideToMove = rng.next()
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristSideToMove returns the Zobrist key for side to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// BoardHash returns the incrementally maintained hash of the piece placement.
func (p *Position) BoardHash() uint64 {
	return p.boardHash
}

// ComputeBoardHash recomputes the piece placement hash from scratch.
func (p *Position) ComputeBoardHash() uint64 {
	var h uint64
	for c := Black; c <= White; c++ {
		for pt := Pawn; pt < numPieceTypes; pt++ {
			bb := p.PiecesOf(pt, c)
			for bb.More() {
				h ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	return h
}

// Hash returns the hash of the full position: placement, side to move and
// both hands. Two positions differing in any of these hash differently with
// overwhelming probability.
func (p *Position) Hash() uint64 {
	h := p.boardHash
	if p.turn == White {
		h ^= zobristSideToMove
	}
	for c := Black; c <= White; c++ {
		for _, pt := range HandTypes {
			h ^= zobristHand[c][pt][p.hands[c][pt]]
		}
	}
	return h
}

// RepetitionCount returns how many times the current position has occurred.
func (p *Position) RepetitionCount() int {
	return p.seen[p.Hash()]
}

// IsFourfoldRepetition returns true if the current position has occurred at
// least four times.
func (p *Position) IsFourfoldRepetition() bool {
	return p.RepetitionCount() >= 4
}
