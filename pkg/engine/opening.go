package engine

import (
	"github.com/rs/zerolog/log"

	"hcebot/pkg/book"
	"hcebot/pkg/rules"
)

func (e *Engine) bookEntry(pos rules.Position) (*book.Entry, bool) {
	if e.Book == nil {
		return nil, false
	}
	return e.Book.Lookup(rules.CanonicalKey(pos.FEN()))
}

// bookMoves returns the book continuations of pos in book order, or nil.
func (e *Engine) bookMoves(pos rules.Position) []ScoredMove {
	entry, ok := e.bookEntry(pos)
	if !ok || len(entry.Moves) == 0 {
		return nil
	}
	moves := make([]ScoredMove, 0, len(entry.Moves))
	for _, m := range entry.Moves {
		moves = append(moves, ScoredMove{Move: m.Move, Score: m.Goodness})
	}
	log.Debug().Str("opening", entry.Name).Str("eco", entry.ECO).Int("moves", len(moves)).Msg("playing from book")
	return moves
}

// GetOpeningName returns the book name of the current position, prefixed
// with its ECO code when it has one, or "" when the position is not in the
// book.
func (e *Engine) GetOpeningName(pos rules.Position) string {
	entry, ok := e.bookEntry(pos)
	if !ok {
		return ""
	}
	if entry.ECO == "" {
		return entry.Name
	}
	return entry.ECO + ": " + entry.Name
}
