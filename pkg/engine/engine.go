package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"hcebot/pkg/book"
	"hcebot/pkg/rules"
)

// Config controls how the engine picks a move.
type Config struct {
	// Depth is the number of plies searched below each root move.
	Depth int
	// Tolerance is how far below the best score a move may be and still be
	// picked. Zero or less always plays the best move.
	Tolerance float64
	// UseBook enables the opening book short-circuit.
	UseBook bool
	// Kingless disables checkmate scoring, for positions that may lack a king.
	Kingless bool
}

// DefaultConfig returns the settings used by the interactive driver.
func DefaultConfig() Config {
	return Config{Depth: 2, UseBook: true}
}

// Engine is the Minimax Engine
type Engine struct {
	Config  Config
	Tables  *Tables
	Book    *book.Book
	Visited uint64
	Elapsed time.Duration

	intn func(n int) int
}

// NewEngine returns a new Engine. bk may be nil to play without a book.
func NewEngine(cfg Config, bk *book.Book) *Engine {
	return &Engine{Config: cfg, Tables: DefaultTables, Book: bk}
}

// ResetStats will reset the Statistics of the Engine
func (e *Engine) ResetStats() {
	e.Visited = 0
	e.Elapsed = 0
}

// Search ranks the moves of pos and picks one within the configured
// tolerance of the best. It returns ErrNoLegalMove when the game is over.
func (e *Engine) Search(pos rules.Position) (ScoredMove, error) {
	start := time.Now()
	var nodes uint64
	ranked := e.SearchBestMoves(pos, e.Config.Kingless, e.Config.Depth, &nodes)
	e.Visited += nodes
	e.Elapsed += time.Since(start)

	mv, err := ChooseMove(ranked, e.Config.Tolerance, e.intn)
	if err != nil {
		log.Debug().Str("fen", pos.FEN()).Msg("aborting search, no possible moves exist")
		return ScoredMove{}, err
	}
	ev := log.Debug().
		Str("move", mv.Move.String()).
		Float64("score", mv.Score).
		Int("candidates", len(ranked)).
		Uint64("nodes", nodes).
		Dur("took", time.Since(start))
	if len(ranked) > 0 {
		ev = ev.Str("best", ranked[0].Move.String())
	}
	ev.Msg("search completed")
	return mv, nil
}
