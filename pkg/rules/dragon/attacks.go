package dragon

import (
	"github.com/dylhunn/dragontoothmg"

	"hcebot/pkg/rules"
)

var (
	knightMasks [64]uint64
	kingMasks   [64]uint64
	// pawnAttackers[side][sq] holds the squares from which a pawn of side
	// attacks sq.
	pawnAttackers [2][64]uint64
)

func init() {
	knightSteps := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := 0; sq < 64; sq++ {
		r, f := sq/8, sq%8
		knightMasks[sq] = stepMask(r, f, knightSteps[:])
		kingMasks[sq] = stepMask(r, f, kingSteps[:])
		// a white pawn attacks upwards, so it sits one rank below its target
		pawnAttackers[rules.White][sq] = stepMask(r, f, [][2]int{{-1, -1}, {-1, 1}})
		pawnAttackers[rules.Black][sq] = stepMask(r, f, [][2]int{{1, -1}, {1, 1}})
	}
}

func stepMask(r, f int, steps [][2]int) uint64 {
	var m uint64
	for _, s := range steps {
		nr, nf := r+s[0], f+s[1]
		if nr >= 0 && nr < 8 && nf >= 0 && nf < 8 {
			m |= uint64(1) << uint(nr*8+nf)
		}
	}
	return m
}

// IsAttacked reports whether any piece of side by attacks sq, regardless of
// what occupies sq and of pins.
func (b *Board) IsAttacked(sq rules.Square, by rules.Side) bool {
	bb := &b.b.White
	if by == rules.Black {
		bb = &b.b.Black
	}
	s := uint8(sq)
	if knightMasks[s]&bb.Knights != 0 || kingMasks[s]&bb.Kings != 0 {
		return true
	}
	if pawnAttackers[by][s]&bb.Pawns != 0 {
		return true
	}
	occ := b.b.White.All | b.b.Black.All
	if dragontoothmg.CalculateBishopMoveBitboard(s, occ)&(bb.Bishops|bb.Queens) != 0 {
		return true
	}
	return dragontoothmg.CalculateRookMoveBitboard(s, occ)&(bb.Rooks|bb.Queens) != 0
}
