// Package bookgen builds an opening book from named opening lines. Every
// position along a line becomes a book entry, and each move is scored by how
// much it changed an engine's evaluation for the side that played it.
package bookgen

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hcebot/pkg/book"
	"hcebot/pkg/rules"
	"hcebot/pkg/rules/dragon"
	"hcebot/pkg/transposition"
)

// InitialName is the book name of the starting position.
const InitialName = "Initial position"

// Line is a named opening, as a sequence of long-form moves from the
// initial position.
type Line struct {
	ECO   string
	Name  string
	Moves []string
}

// Config configures a book build.
type Config struct {
	Scorer  Scorer
	Logger  zerolog.Logger
	Workers int // concurrent Score calls, defaults to the number of CPUs
	Depth   int // search depth recorded with cached scores
	Cache   *transposition.Table
}

// replay is a line checked against the rules, with every position it visits.
type replay struct {
	line Line
	keys []string // canonical keys, initial position first
	fens []string
}

// Generate scores every position of lines and assembles the raw book.
// Lines with illegal moves are logged and skipped. A position's name and ECO
// code come from the shortest line reaching it; a move's goodness is set by
// the first line playing it.
func Generate(ctx context.Context, cfg Config, lines []Line) (book.Raw, error) {
	if cfg.Scorer == nil {
		return nil, errors.New("bookgen: no scorer configured")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Cache == nil {
		cfg.Cache = &transposition.Table{}
	}

	replays := make([]replay, 0, len(lines))
	for _, l := range lines {
		r, err := replayLine(l)
		if err != nil {
			cfg.Logger.Warn().Err(err).Str("eco", l.ECO).Str("name", l.Name).Msg("skipping invalid line")
			continue
		}
		replays = append(replays, r)
	}
	cfg.Logger.Info().Int("lines", len(replays)).Int("skipped", len(lines)-len(replays)).Msg("lines replayed")

	if err := scorePositions(ctx, cfg, replays); err != nil {
		return nil, err
	}
	raw := assemble(cfg.Cache, replays)
	cfg.Logger.Info().Int("positions", len(raw)).Uint64("cache_hits", cfg.Cache.Hits()).Msg("book assembled")
	return raw, nil
}

func replayLine(l Line) (replay, error) {
	b := dragon.NewStartBoard()
	r := replay{
		line: Line{ECO: l.ECO, Name: l.Name, Moves: make([]string, 0, len(l.Moves))},
		keys: []string{b.Key()},
		fens: []string{b.FEN()},
	}
	for _, s := range l.Moves {
		mv, err := rules.ParseMove(s)
		if err != nil {
			return replay{}, err
		}
		if err := b.Apply(mv); err != nil {
			return replay{}, err
		}
		r.line.Moves = append(r.line.Moves, mv.String())
		r.keys = append(r.keys, b.Key())
		r.fens = append(r.fens, b.FEN())
	}
	return r, nil
}

// scorePositions scores each distinct position not already cached.
func scorePositions(ctx context.Context, cfg Config, replays []replay) error {
	fens := make(map[string]string)
	var order []string
	for _, r := range replays {
		for i, key := range r.keys {
			if _, ok := fens[key]; !ok {
				fens[key] = r.fens[i]
				order = append(order, key)
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	var done atomic.Int64
	for _, key := range order {
		if _, ok := cfg.Cache.Query(key); ok {
			continue
		}
		key, fen := key, fens[key]
		g.Go(func() error {
			score, err := cfg.Scorer.Score(ctx, fen)
			switch {
			case errors.Is(err, ErrNoScore):
				cfg.Logger.Debug().Str("fen", fen).Msg("no score, inheriting the previous position's")
				return nil
			case err != nil:
				return fmt.Errorf("scoring %s: %w", fen, err)
			}
			cfg.Cache.Commit(key, transposition.Entry{Score: score, Depth: cfg.Depth})
			if n := done.Add(1); n%500 == 0 {
				cfg.Logger.Info().Int64("scored", n).Int("positions", len(order)).Msg("scoring")
			}
			return nil
		})
	}
	return g.Wait()
}

type node struct {
	entry   book.RawEntry
	lineLen int
}

func assemble(cache *transposition.Table, replays []replay) book.Raw {
	nodes := make(map[string]*node)
	for _, r := range replays {
		n := len(r.line.Moves)
		prev := 0
		for i, key := range r.keys {
			nd, ok := nodes[key]
			switch {
			case !ok:
				nd = &node{
					entry:   book.RawEntry{Name: r.line.Name, ECO: r.line.ECO, Moves: map[string]float64{}},
					lineLen: n,
				}
				nodes[key] = nd
			case nd.lineLen > n:
				nd.lineLen = n
				nd.entry.Name, nd.entry.ECO = r.line.Name, r.line.ECO
			}

			score := prev
			if e, ok := cache.Query(key); ok {
				score = e.Score
			}
			if i > 0 {
				parent := nodes[r.keys[i-1]]
				mv := r.line.Moves[i-1]
				if _, seen := parent.entry.Moves[mv]; !seen {
					diff := score - prev
					if whiteToMove(key) {
						diff = -diff
					}
					parent.entry.Moves[mv] = float64(diff)
				}
			}
			prev = score
		}
	}

	raw := make(book.Raw, len(nodes))
	for key, nd := range nodes {
		raw[key] = nd.entry
	}
	start := rules.CanonicalKey(dragon.StartFEN)
	if e, ok := raw[start]; ok {
		e.Name, e.ECO = InitialName, ""
		raw[start] = e
	}
	return raw
}

func whiteToMove(key string) bool {
	fields := strings.Fields(key)
	return len(fields) > 1 && fields[1] == "w"
}
