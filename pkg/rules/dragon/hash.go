package dragon

import (
	"strconv"

	"github.com/dylhunn/dragontoothmg"

	"hcebot/pkg/rules"
)

// epZobrist[sq] is what an en-passant target on sq contributes to a
// dragontoothmg hash, recovered by hashing one position with and without
// the target.
var epZobrist [64]uint64

func init() {
	for file := 0; file < 8; file++ {
		epZobrist[rules.NewSquare(2, file)] = epKey(file, 4, "P", "b")
		epZobrist[rules.NewSquare(5, file)] = epKey(file, 5, "p", "w")
	}
}

// epKey hashes a lone pawn that just double-pushed to pawnRank (1-based) on
// file, with the target square set and cleared.
func epKey(file, pawnRank int, pawn, toMove string) uint64 {
	row := pawn
	if file > 0 {
		row = strconv.Itoa(file) + row
	}
	if file < 7 {
		row += strconv.Itoa(7 - file)
	}
	placement := "4k3"
	for rank := 7; rank >= 2; rank-- {
		if rank == pawnRank {
			placement += "/" + row
		} else {
			placement += "/8"
		}
	}
	placement += "/4K3"

	targetRank := 2
	if pawnRank == 5 {
		targetRank = 5
	}
	target := rules.NewSquare(targetRank, file).String()
	with := dragontoothmg.ParseFen(placement + " " + toMove + " - " + target + " 0 1")
	without := dragontoothmg.ParseFen(placement + " " + toMove + " - - 0 1")
	return with.Hash() ^ without.Hash()
}

// positionHash is the board hash with an uncapturable en-passant target
// taken out, so repeated positions compare the way FEN keys do.
func (b *Board) positionHash(ep rules.Square) uint64 {
	h := b.b.Hash()
	if ep != rules.NoSquare && !b.canCaptureEnPassant(ep) {
		h ^= epZobrist[ep]
	}
	return h
}

// doublePushTarget returns the square a double pawn push of m passes over,
// or NoSquare. It must be called before m is applied.
func (b *Board) doublePushTarget(m rules.Move) rules.Square {
	p, ok := b.PieceAt(m.From)
	if !ok || p.Kind != rules.Pawn {
		return rules.NoSquare
	}
	if d := int(m.To) - int(m.From); d != 16 && d != -16 {
		return rules.NoSquare
	}
	return (m.From + m.To) / 2
}
