package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"hcebot/pkg/book"
	"hcebot/pkg/bookgen"
)

var (
	out     = flag.String("out", "book.json", "where to write the book")
	engPath = flag.String("engine", "", "UCI engine binary; the built-in search scores positions when empty")
	depth   = flag.Int("depth", 0, "search depth, 30 for a UCI engine and 2 for the built-in search when zero")
	threads = flag.Int("threads", 4, "UCI engine threads")
	workers = flag.Int("workers", 0, "positions scored in parallel, one per CPU when zero")
	tsv     = flag.String("tsv", "", "comma separated lichess opening files (eco, name, pgn columns)")
	verbose = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *tsv == "" {
		logger.Fatal().Msg("-tsv is required, e.g. -tsv a.tsv,b.tsv,c.tsv,d.tsv,e.tsv")
	}
	var lines []bookgen.Line
	for _, path := range strings.Split(*tsv, ",") {
		f, err := os.Open(path)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot open opening file")
		}
		logger.Info().Str("file", path).Msg("importing")
		ls, errs := bookgen.ReadTSV(f)
		f.Close()
		for _, err := range errs {
			logger.Warn().Err(err).Str("file", path).Msg("skipping row")
		}
		lines = append(lines, ls...)
	}

	cfg := bookgen.Config{Logger: logger, Workers: *workers, Depth: *depth}
	if *engPath != "" {
		if cfg.Depth == 0 {
			cfg.Depth = 30
		}
		sc, err := bookgen.NewUCIScorer(*engPath, cfg.Depth, *threads)
		if err != nil {
			logger.Fatal().Err(err).Str("engine", *engPath).Msg("cannot start engine")
		}
		defer sc.Close()
		cfg.Scorer = sc
	} else {
		if cfg.Depth == 0 {
			cfg.Depth = 2
		}
		cfg.Scorer = bookgen.SearchScorer{Depth: cfg.Depth}
	}

	raw, err := bookgen.Generate(ctx, cfg, lines)
	if err != nil {
		logger.Fatal().Err(err).Msg("book generation failed")
	}
	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create book file")
	}
	if err := book.Write(f, raw); err != nil {
		f.Close()
		logger.Fatal().Err(err).Msg("cannot write book")
	}
	if err := f.Close(); err != nil {
		logger.Fatal().Err(err).Msg("cannot write book")
	}
	logger.Info().Str("out", *out).Int("positions", len(raw)).Msg("book written")
}
