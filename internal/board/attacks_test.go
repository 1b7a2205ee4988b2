package board

import (
	"math/rand/v2"
	"testing"
)

// slowRay walks from sq in one direction over a plain occupancy bitboard,
// including the first blocker.
func slowRay(sq Square, occupied Bitboard, df, dr int) Bitboard {
	var attacks Bitboard
	f, r := sq.File()+df, sq.Rank()+dr
	for onBoard(f, r) {
		q := NewSquare(f, r)
		attacks = attacks.Set(q)
		if occupied.IsSet(q) {
			break
		}
		f += df
		r += dr
	}
	return attacks
}

func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return slowRay(sq, occupied, 1, 0).Or(slowRay(sq, occupied, -1, 0)).
		Or(slowRay(sq, occupied, 0, 1)).Or(slowRay(sq, occupied, 0, -1))
}

func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return slowRay(sq, occupied, 1, 1).Or(slowRay(sq, occupied, -1, -1)).
		Or(slowRay(sq, occupied, 1, -1)).Or(slowRay(sq, occupied, -1, 1))
}

func randomOccupancy(rng *rand.Rand, density float64) Occupancy {
	var black, white Bitboard
	for sq := Square(0); sq < NoSquare; sq++ {
		if rng.Float64() >= density {
			continue
		}
		if rng.IntN(2) == 0 {
			black = black.Set(sq)
		} else {
			white = white.Set(sq)
		}
	}
	return NewOccupancy(black, white)
}

func TestSlidingAttacksMatchSlowRays(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for trial := 0; trial < 40; trial++ {
		occ := randomOccupancy(rng, float64(trial%10)/10)
		all := occ.All()
		for sq := Square(0); sq < NoSquare; sq++ {
			if got, want := RookAttacks(sq, &occ), rookAttacksSlow(sq, all); got != want {
				t.Fatalf("rook on %v:\n%v\nwant\n%v\noccupancy\n%v", sq, got, want, all)
			}
			if got, want := BishopAttacks(sq, &occ), bishopAttacksSlow(sq, all); got != want {
				t.Fatalf("bishop on %v:\n%v\nwant\n%v\noccupancy\n%v", sq, got, want, all)
			}
			if got, want := LanceAttacks(sq, Black, &occ), slowRay(sq, all, 0, -1); got != want {
				t.Fatalf("black lance on %v:\n%v\nwant\n%v", sq, got, want)
			}
			if got, want := LanceAttacks(sq, White, &occ), slowRay(sq, all, 0, 1); got != want {
				t.Fatalf("white lance on %v:\n%v\nwant\n%v", sq, got, want)
			}
		}
	}
}

// A piece on a attacks b exactly when the same piece of the other color on
// b attacks a.
func TestAttackSymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	occs := []Occupancy{{}, randomOccupancy(rng, 0.3)}

	for _, occ := range occs {
		for _, pt := range AllPieceTypes {
			for c := Black; c <= White; c++ {
				for a := Square(0); a < NoSquare; a++ {
					attacks := AttacksFrom(pt, a, &occ, c)
					for b := Square(0); b < NoSquare; b++ {
						back := AttacksFrom(pt, b, &occ, c.Other()).IsSet(a)
						if attacks.IsSet(b) != back {
							t.Fatalf("%v %v: %v->%v is %v, reverse is %v", c, pt, a, b, attacks.IsSet(b), back)
						}
					}
				}
			}
		}
	}
}

func TestStepAttacks(t *testing.T) {
	center := NewSquare(4, 4)

	tests := []struct {
		name  string
		bb    Bitboard
		count int
	}{
		{"pawn", PawnAttacks(center, Black), 1},
		{"knight", KnightAttacks(center, Black), 2},
		{"silver", SilverAttacks(center, Black), 5},
		{"gold", GoldAttacks(center, Black), 6},
		{"king", KingAttacks(center), 8},
		{"elephant", AttacksFrom(Elephant, center, &Occupancy{}, Black), 7},
		{"horse", AttacksFrom(ProBishop, center, &Occupancy{}, Black), 16 + 4},
		{"dragon", AttacksFrom(ProRook, center, &Occupancy{}, Black), 16 + 4},
		{"corner king", KingAttacks(0), 3},
		{"knight on rank b", KnightAttacks(NewSquare(4, 1), Black), 0},
	}
	for _, tc := range tests {
		if got := tc.bb.PopCount(); got != tc.count {
			t.Errorf("%s: %d squares, want %d\n%v", tc.name, got, tc.count, tc.bb)
		}
	}

	if !PawnAttacks(center, Black).IsSet(NewSquare(4, 3)) || !PawnAttacks(center, White).IsSet(NewSquare(4, 5)) {
		t.Error("pawns attack towards the opponent")
	}
	if AttacksFrom(Elephant, center, &Occupancy{}, Black).IsSet(NewSquare(4, 5)) {
		t.Error("the elephant does not attack straight back")
	}
	if AttacksFrom(NoPieceType, center, &Occupancy{}, Black).More() {
		t.Error("no piece attacks nothing")
	}
}

func TestOccupancyToggle(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	var occ Occupancy
	for i := 0; i < 500; i++ {
		sq := Square(rng.IntN(NumSquares))
		c := Black
		if occ.ByColor(White).IsSet(sq) || (!occ.All().IsSet(sq) && rng.IntN(2) == 0) {
			c = White
		}
		occ.Toggle(sq, c)
		if !occ.Consistent() {
			t.Fatalf("inconsistent after toggling %v for %v", sq, c)
		}
	}
	if occ.NonOccupied().Or(occ.All()) != Universe {
		t.Error("occupied and empty squares should cover the board")
	}
}

func TestBitboardBasics(t *testing.T) {
	if Universe.PopCount() != 81 || Universe.Not() != Empty || Empty.Not() != Universe {
		t.Error("universe")
	}
	for i := 0; i < 9; i++ {
		if FileMask[i].PopCount() != 9 || RankMask[i].PopCount() != 9 {
			t.Errorf("line mask %d", i)
		}
	}

	b := SquareBB(3).Set(63).Set(64).Set(80)
	if b.PopCount() != 4 || b.LSB() != 3 {
		t.Errorf("PopCount %d LSB %v", b.PopCount(), b.LSB())
	}
	got := b.Squares()
	want := []Square{3, 63, 64, 80}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Squares() = %v, want %v", got, want)
		}
	}

	if b.Shr(60) != SquareBB(3).Set(4).Set(20) {
		t.Errorf("Shr:\n%v", b.Shr(60))
	}
	if SquareBB(80).Shl(1) != Empty || SquareBB(63).Shl(1) != SquareBB(64) {
		t.Error("Shl must carry into Hi and stay on the board")
	}
	if SquareBB(NoSquare) != Empty || b.IsSet(NoSquare) {
		t.Error("NoSquare is off the board")
	}
}

func TestRotationsArePermutations(t *testing.T) {
	for _, rotate := range []func(Bitboard) Bitboard{Rotate90, RotateDiagA, RotateDiagB} {
		if rotate(Universe) != Universe {
			t.Error("rotation does not cover the board")
		}
		seen := Empty
		for sq := Square(0); sq < NoSquare; sq++ {
			r := rotate(SquareBB(sq))
			if r.PopCount() != 1 || seen.Intersects(r) {
				t.Fatalf("square %v maps onto a used bit", sq)
			}
			seen = seen.Or(r)
		}
	}
}
