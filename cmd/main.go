package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hcebot/pkg/book"
	"hcebot/pkg/engine"
	"hcebot/pkg/rules"
	"hcebot/pkg/rules/dragon"
)

var (
	fenFlag   = flag.String("fen", dragon.StartFEN, "starting position")
	depth     = flag.Int("depth", engine.DefaultConfig().Depth, "plies searched below each candidate move")
	tolerance = flag.Float64("tolerance", 0, "play any move scoring within this much of the best")
	bookPath  = flag.String("book", "", "opening book file, the builtin book when empty")
	noBook    = flag.Bool("nobook", false, "play without an opening book")
	sideFlag  = flag.String("side", "white", "the side you play, white or black")
	kingless  = flag.Bool("kingless", false, "ignore checkmate when scoring")
	verbose   = flag.Bool("v", false, "debug logging")
)

var game *chess.Game
var board *dragon.Board
var eng *engine.Engine
var reader *bufio.Reader

func main() {
	flag.Parse()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	human := rules.White
	switch strings.ToLower(*sideFlag) {
	case "white", "w":
	case "black", "b":
		human = rules.Black
	default:
		log.Fatal().Str("side", *sideFlag).Msg("side must be white or black")
	}

	var err error
	board, err = dragon.NewBoard(*fenFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up the board")
	}
	opt, err := chess.FEN(board.FEN())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up the board")
	}
	game = chess.NewGame(opt)

	cfg := engine.DefaultConfig()
	cfg.Depth = *depth
	cfg.Tolerance = *tolerance
	cfg.Kingless = *kingless
	cfg.UseBook = !*noBook
	eng = engine.NewEngine(cfg, loadBook())

	reader = bufio.NewReader(os.Stdin)
	for !gameOver() {
		if err := Turn(human); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			log.Fatal().Err(err).Msg("turn failed")
		}
	}
	fmt.Println(game.Position().Board().Draw())
	fmt.Println(result())
}

func loadBook() *book.Book {
	if *noBook {
		return nil
	}
	var (
		bk  *book.Book
		err error
	)
	if *bookPath != "" {
		bk, err = book.LoadFile(*bookPath)
	} else {
		bk, err = book.Builtin()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load the opening book")
	}
	log.Debug().Int("positions", bk.Len()).Msg("opening book loaded")
	return bk
}

// Turn will cause the active player to take a turn
func Turn(human rules.Side) error {
	fmt.Println(game.Position().Board().Draw())
	if name := eng.GetOpeningName(board); name != "" {
		fmt.Println(name)
	}
	if board.SideToMove() == human {
		for {
			fmt.Print("Enter your move: ")
			inp, err := ReadSTDIN()
			if err != nil {
				return err
			}
			if err := play(SpaceMap(inp)); err != nil {
				fmt.Printf("Your input was invalid, error: %v\n", err)
				continue
			}
			return nil
		}
	}

	eng.ResetStats()
	mv, err := eng.Search(board)
	if err != nil {
		return err
	}
	if err := play(mv.Move.String()); err != nil {
		return err
	}
	fmt.Printf("Engine played %s (%+.2f) after %v, %d positions\n", mv.Move, mv.Score, eng.Elapsed, eng.Visited)
	fmt.Println("Board Evaluation (Engine Perspective):", engine.EvalStatic(board, human.Other(), eng.Config.Kingless))
	return nil
}

// play applies a SAN or long-form move to both the display game and the
// search board.
func play(s string) error {
	pos := game.Position()
	m, err := chess.UCINotation{}.Decode(pos, s)
	if err != nil {
		if m, err = (chess.AlgebraicNotation{}).Decode(pos, s); err != nil {
			return err
		}
	}
	rm, err := rules.ParseMove(chess.UCINotation{}.Encode(pos, m))
	if err != nil {
		return err
	}
	if err := board.Apply(rm); err != nil {
		return err
	}
	return game.Move(m)
}

func gameOver() bool {
	return board.IsCheckmate() || board.IsDraw()
}

func result() string {
	switch {
	case board.IsCheckmate():
		return fmt.Sprintf("Checkmate, %s wins", board.SideToMove().Other())
	case board.IsStalemate():
		return "Draw by stalemate"
	default:
		return "The game is a draw"
	}
}

func SpaceMap(str string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, str)
}

// ReadSTDIN reads one line of input
func ReadSTDIN() (string, error) {
	text, err := reader.ReadString('\n')
	if err != nil && text == "" {
		return "", err
	}
	return text, nil
}
