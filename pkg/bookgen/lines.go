package bookgen

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/notnil/chess"
)

// ReadTSV reads lines in the lichess openings format: a header row, then
// "eco<TAB>name<TAB>pgn" rows with SAN movetext. Rows that do not parse are
// reported in the returned error list and left out. Lines keep file order.
func ReadTSV(r io.Reader) ([]Line, []error) {
	var (
		lines []Line
		errs  []error
	)
	sc := bufio.NewScanner(r)
	row := 0
	for sc.Scan() {
		row++
		if row == 1 || strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		cols := strings.Split(sc.Text(), "\t")
		if len(cols) != 3 {
			errs = append(errs, fmt.Errorf("row %d: want 3 columns, got %d", row, len(cols)))
			continue
		}
		moves, err := parseSAN(cols[2])
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", row, err))
			continue
		}
		lines = append(lines, Line{ECO: cols[0], Name: cols[1], Moves: moves})
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, err)
	}
	return lines, errs
}

// parseSAN converts PGN movetext to long-form moves.
func parseSAN(movetext string) ([]string, error) {
	g := chess.NewGame()
	for _, tok := range strings.Fields(movetext) {
		if i := strings.LastIndexByte(tok, '.'); i >= 0 {
			tok = tok[i+1:]
		}
		switch tok {
		case "", "*", "1-0", "0-1", "1/2-1/2":
			continue
		}
		if err := g.MoveStr(tok); err != nil {
			return nil, fmt.Errorf("%q: %w", tok, err)
		}
	}
	return uciMoves(g), nil
}

func uciMoves(g *chess.Game) []string {
	positions := g.Positions()
	moves := g.Moves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = chess.UCINotation{}.Encode(positions[i], m)
	}
	return out
}
