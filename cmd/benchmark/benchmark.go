package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hcebot/pkg/engine"
	"hcebot/pkg/rules"
	"hcebot/pkg/rules/dragon"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", 2, "search depth")
	evals      = flag.Int("evals", 100000, "static evaluations per position")
	kingless   = flag.Bool("kingless", false, "search without checkmate scoring")
)

var positions = []string{
	dragon.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"5B2/PP1k2P1/p3pr1p/7p/1p2p3/8/3K2Rn/4r3 w - - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
}

func main() {
	// Setup Profiling
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot create profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("cannot start profile")
		}
		defer pprof.StopCPUProfile()
	}
	fmt.Println("----BEGIN BENCHMARK----")
	for _, fen := range positions {
		b, err := dragon.NewBoard(fen)
		if err != nil {
			log.Error().Err(err).Str("fen", fen).Msg("skipping position")
			continue
		}
		benchmarkStaticEval(b)
		SearchPosition(b)
	}
	fmt.Println("----END  BENCHMARK----")
}

// SearchPosition ranks every move of b to the configured depth and reports
// the node rate.
func SearchPosition(b *dragon.Board) {
	eng := engine.NewEngine(engine.Config{Depth: *depth, Kingless: *kingless}, nil)
	var nodes uint64
	start := time.Now()
	ranked := eng.SearchBestMoves(b, *kingless, *depth, &nodes)
	took := time.Since(start)
	best := "none"
	if len(ranked) > 0 {
		best = fmt.Sprintf("%s (%+.0f)", ranked[0].Move, ranked[0].Score)
	}
	fmt.Printf("[SEARCH] %s\n", b.FEN())
	fmt.Printf("[SEARCH] depth %d, best %s, %d nodes in %v, %.0f nodes/s\n",
		*depth, best, nodes, took, float64(nodes)/took.Seconds())
}

func benchmarkStaticEval(b *dragon.Board) {
	start := time.Now()
	var sink int32
	for i := 0; i < *evals; i++ {
		sink += engine.EvalStatic(b, rules.Side(i&1), false)
	}
	took := time.Since(start)
	fmt.Printf("[EVAL] %d evaluations in %v, %.0f per second (checksum %d)\n",
		*evals, took, float64(*evals)/took.Seconds(), sink)
}
