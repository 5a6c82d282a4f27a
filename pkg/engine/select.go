package engine

import (
	"errors"

	"lukechampine.com/frand"
)

// ErrNoLegalMove is returned when there is nothing to choose from. Callers
// should treat it as the end of the game.
var ErrNoLegalMove = errors.New("no legal move")

// AcceptableMoves returns the prefix of ranked whose scores are within
// tolerance of the best one. ranked must be sorted best first.
func AcceptableMoves(ranked []ScoredMove, tolerance float64) []ScoredMove {
	if len(ranked) == 0 {
		return nil
	}
	if tolerance <= 0 {
		return ranked[:1]
	}
	floor := ranked[0].Score - tolerance
	n := 0
	for n < len(ranked) && ranked[n].Score >= floor {
		n++
	}
	return ranked[:n]
}

// ChooseMove picks uniformly among the acceptable moves. intn returns a
// number in [0, n); nil uses frand.
func ChooseMove(ranked []ScoredMove, tolerance float64, intn func(n int) int) (ScoredMove, error) {
	if len(ranked) == 0 {
		return ScoredMove{}, ErrNoLegalMove
	}
	if tolerance <= 0 {
		return ranked[0], nil
	}
	acceptable := AcceptableMoves(ranked, tolerance)
	if len(acceptable) == 0 {
		return ranked[0], nil
	}
	if intn == nil {
		intn = frand.Intn
	}
	return acceptable[intn(len(acceptable))], nil
}
