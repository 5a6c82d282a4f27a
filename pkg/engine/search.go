package engine

import (
	"sort"

	"github.com/rs/zerolog/log"

	"hcebot/pkg/rules"
)

// ScoredMove is a candidate move with its score relative to the position
// before the move. For book moves the score is the book's goodness.
type ScoredMove struct {
	Move  rules.Move
	Score float64
}

// search carries the per-call state of one SearchBestMoves invocation.
type search struct {
	tables   *Tables
	root     rules.Side
	kingless bool
	nodes    *uint64
}

// SearchBestMoves ranks every legal move of pos, best first. A book hit for
// the position is returned as stored without searching. nodes accumulates
// the number of positions visited and may be nil.
func (e *Engine) SearchBestMoves(pos rules.Position, kingless bool, depth int, nodes *uint64) []ScoredMove {
	if e.Config.UseBook {
		if moves := e.bookMoves(pos); len(moves) > 0 {
			return moves
		}
	}
	if nodes == nil {
		nodes = new(uint64)
	}
	s := &search{
		tables:   e.Tables,
		root:     pos.SideToMove(),
		kingless: kingless,
		nodes:    nodes,
	}
	baseline := s.tables.Evaluate(pos, s.root, kingless)

	legal := pos.LegalMoves()
	ranked := make([]ScoredMove, 0, len(legal))
	for _, mv := range legal {
		score, ok := s.child(pos, mv, depth)
		if !ok {
			continue
		}
		ranked = append(ranked, ScoredMove{Move: mv, Score: float64(score - baseline)})
	}
	sort.Stable(byScoreDiff(ranked))
	return ranked
}

// child applies mv, searches the resulting position and takes the move back
// on every exit path.
func (s *search) child(pos rules.Position, mv rules.Move, depth int) (int32, bool) {
	if err := pos.Apply(mv); err != nil {
		log.Warn().Err(err).Str("move", mv.String()).Msg("rules engine rejected an enumerated move")
		return 0, false
	}
	defer pos.Undo()
	return s.negamax(pos, depth), true
}

// negamax returns the minimax value of pos from the root side's perspective.
// The root side maximises and the opponent minimises at every ply.
func (s *search) negamax(pos rules.Position, depth int) int32 {
	*s.nodes++
	if depth == 0 {
		return s.tables.Evaluate(pos, s.root, true)
	}
	if !s.kingless && pos.IsCheckmate() {
		if pos.SideToMove() == s.root {
			return -s.tables.KingValue
		}
		return s.tables.KingValue
	}
	if pos.IsDraw() {
		return 0
	}
	legal := pos.LegalMoves()
	if len(legal) == 0 {
		return 0
	}

	maximize := pos.SideToMove() == s.root
	var best int32
	found := false
	for _, mv := range legal {
		score, ok := s.child(pos, mv, depth-1)
		if !ok {
			continue
		}
		switch {
		case !found:
			best, found = score, true
		case maximize:
			best = maxOf(best, score)
		default:
			best = minOf(best, score)
		}
	}
	return best
}
