package bookgen

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"

	"hcebot/pkg/engine"
	"hcebot/pkg/rules"
	"hcebot/pkg/rules/dragon"
)

// MateScore is the centipawn value given to a forced mate.
const MateScore = 999

// ErrNoScore is returned by a Scorer that produced no evaluation. The
// position then inherits the score of the one before it.
var ErrNoScore = errors.New("bookgen: no score")

// Scorer evaluates a position in centipawns from white's point of view.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, fen string) (int, error)
}

// mateScore converts a distance to mate for the side to move, negative when
// it is being mated, into centipawns.
func mateScore(moves int) int {
	if moves > 0 {
		return MateScore - moves
	}
	return -MateScore - moves
}

func whitePOV(score int, toMove rules.Side) int {
	if toMove == rules.Black {
		return -score
	}
	return score
}

// UCIScorer scores positions with an external UCI engine. Calls are
// serialised over the single engine process.
type UCIScorer struct {
	mu    sync.Mutex
	eng   *uci.Engine
	depth int
}

// NewUCIScorer starts the engine at path and searches every position to
// depth.
func NewUCIScorer(path string, depth, threads int) (*UCIScorer, error) {
	eng, err := uci.New(path)
	if err != nil {
		return nil, err
	}
	cmds := []uci.Cmd{uci.CmdUCI, uci.CmdIsReady}
	if threads > 0 {
		cmds = append(cmds, uci.CmdSetOption{Name: "Threads", Value: strconv.Itoa(threads)})
	}
	cmds = append(cmds, uci.CmdUCINewGame)
	if err := eng.Run(cmds...); err != nil {
		eng.Close()
		return nil, err
	}
	return &UCIScorer{eng: eng, depth: depth}, nil
}

func (s *UCIScorer) Score(ctx context.Context, fen string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", rules.ErrBadFEN, err)
	}
	pos := chess.NewGame(opt).Position()
	toMove := rules.White
	if pos.Turn() == chess.Black {
		toMove = rules.Black
	}
	switch pos.Status() {
	case chess.Checkmate:
		return whitePOV(mateScore(0), toMove), nil
	case chess.Stalemate:
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.eng.Run(uci.CmdPosition{Position: pos}, uci.CmdGo{Depth: s.depth}); err != nil {
		return 0, err
	}
	info := s.eng.SearchResults().Info
	switch {
	case info.Score.Mate != 0:
		return whitePOV(mateScore(info.Score.Mate), toMove), nil
	case info.Depth == 0:
		return 0, ErrNoScore
	}
	return whitePOV(info.Score.CP, toMove), nil
}

// Close shuts down the engine process.
func (s *UCIScorer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Close()
}

// SearchScorer scores positions with this module's own minimax search. Each
// call searches a fresh board, so calls may run in parallel.
type SearchScorer struct {
	Depth int
}

func (s SearchScorer) Score(ctx context.Context, fen string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	b, err := dragon.NewBoard(fen)
	if err != nil {
		return 0, err
	}
	toMove := b.SideToMove()
	e := engine.NewEngine(engine.Config{Depth: s.Depth}, nil)
	ranked := e.SearchBestMoves(b, false, s.Depth, nil)
	if len(ranked) == 0 {
		if b.IsCheckmate() {
			return whitePOV(mateScore(0), toMove), nil
		}
		return 0, nil
	}
	best := int(e.Tables.Evaluate(b, toMove, false)) + int(ranked[0].Score)
	switch {
	case best >= int(e.Tables.KingValue)/2:
		best = MateScore
	case best <= -int(e.Tables.KingValue)/2:
		best = -MateScore
	}
	return whitePOV(best, toMove), nil
}
