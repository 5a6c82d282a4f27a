package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/notnil/chess"

	"hcebot/pkg/rules"
)

type rawMove struct {
	uci      string
	goodness float64
}

type rawPosition struct {
	key  string
	name string
	eco  string
	// moves keep the order they were read in, which breaks goodness ties
	moves []rawMove
}

// Load parses a persisted book. The book is rejected as a whole when any
// position or move is malformed, duplicated or illegal.
func Load(r io.Reader) (*Book, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	positions, err := decodeTable(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return build(positions)
}

// LoadFile loads a book from a JSON file.
func LoadFile(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// FromRaw validates an in-memory raw table. Moves with equal goodness are
// ordered by descriptor.
func FromRaw(raw Raw) (*Book, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	positions := make([]rawPosition, 0, len(raw))
	for _, k := range keys {
		re := raw[k]
		p := rawPosition{key: k, name: re.Name, eco: re.ECO}
		ucis := make([]string, 0, len(re.Moves))
		for uci := range re.Moves {
			ucis = append(ucis, uci)
		}
		sort.Strings(ucis)
		for _, uci := range ucis {
			p.moves = append(p.moves, rawMove{uci: uci, goodness: re.Moves[uci]})
		}
		positions = append(positions, p)
	}
	return build(positions)
}

func build(positions []rawPosition) (*Book, error) {
	b := &Book{entries: make(map[string]*Entry, len(positions))}
	for _, p := range positions {
		e, err := newEntry(p)
		if err != nil {
			return nil, fmt.Errorf("%w: position %q: %v", ErrMalformed, p.key, err)
		}
		b.entries[p.key] = e
	}
	return b, nil
}

func newEntry(p rawPosition) (*Entry, error) {
	if len(strings.Fields(p.key)) != 4 || rules.CanonicalKey(p.key) != p.key {
		return nil, errors.New("key is not a four-field FEN")
	}
	opt, err := chess.FEN(p.key + " 0 1")
	if err != nil {
		return nil, err
	}
	pos := chess.NewGame(opt).Position()
	legal := make(map[string]bool)
	for _, m := range pos.ValidMoves() {
		legal[chess.UCINotation{}.Encode(pos, m)] = true
	}

	e := &Entry{Name: p.name, ECO: p.eco, Moves: make([]Move, 0, len(p.moves))}
	for _, rm := range p.moves {
		m, err := rules.ParseMove(rm.uci)
		if err != nil {
			return nil, err
		}
		if !legal[rm.uci] {
			return nil, fmt.Errorf("move %s is not legal", rm.uci)
		}
		e.Moves = append(e.Moves, Move{Move: m, Goodness: rm.goodness})
	}
	sort.Stable(byGoodness(e.Moves))
	return e, nil
}

func decodeTable(dec *json.Decoder) ([]rawPosition, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var positions []rawPosition
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate position %q", key)
		}
		seen[key] = true
		p, err := decodePosition(dec)
		if err != nil {
			return nil, fmt.Errorf("position %q: %w", key, err)
		}
		p.key = key
		positions = append(positions, p)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after book")
	}
	return positions, nil
}

func decodePosition(dec *json.Decoder) (rawPosition, error) {
	var p rawPosition
	if err := expectDelim(dec, '{'); err != nil {
		return p, err
	}
	seen := make(map[string]bool)
	for dec.More() {
		field, err := stringToken(dec)
		if err != nil {
			return p, err
		}
		if seen[field] {
			return p, fmt.Errorf("duplicate field %q", field)
		}
		seen[field] = true
		switch field {
		case "name":
			p.name, err = stringToken(dec)
		case "eco":
			p.eco, err = stringToken(dec)
		case "moves":
			p.moves, err = decodeMoves(dec)
		default:
			err = fmt.Errorf("unknown field %q", field)
		}
		if err != nil {
			return p, err
		}
	}
	return p, expectDelim(dec, '}')
}

func decodeMoves(dec *json.Decoder) ([]rawMove, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var moves []rawMove
	for dec.More() {
		uci, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		if seen[uci] {
			return nil, fmt.Errorf("duplicate move %q", uci)
		}
		seen[uci] = true
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		num, ok := tok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("move %q: goodness %v is not a number", uci, tok)
		}
		g, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", uci, err)
		}
		moves = append(moves, rawMove{uci: uci, goodness: g})
	}
	return moves, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return s, nil
}
