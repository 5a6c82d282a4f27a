package book

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const startKey = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"

func TestBuiltin(t *testing.T) {
	b, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}
	again, _ := Builtin()
	if again != b {
		t.Fatal("Builtin built the book twice")
	}
	e, ok := b.Lookup(startKey)
	if !ok {
		t.Fatal("initial position missing from builtin book")
	}
	if e.Name != "Initial position" || e.ECO != "" {
		t.Errorf("unexpected entry header %q %q", e.Name, e.ECO)
	}
	want := []string{"e2e4", "d2d4", "g1f3", "c2c4", "b1c3", "f2f4", "b2b4", "g2g4", "h2h4"}
	if len(e.Moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(e.Moves), len(want))
	}
	for i, m := range e.Moves {
		if m.Move.String() != want[i] {
			t.Errorf("move %d = %s, want %s", i, m.Move, want[i])
		}
		if i > 0 && m.Goodness > e.Moves[i-1].Goodness {
			t.Errorf("moves not sorted by goodness at %d", i)
		}
	}
}

func TestLoadSortsByGoodness(t *testing.T) {
	src := `{"` + startKey + `": {"name": "x", "eco": "A00", "moves": {"h2h3": 0.1, "e2e4": 35, "d2d4": 35, "g1f3": -12.5}}}`
	b, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	e, _ := b.Lookup(startKey)
	var got []string
	for _, m := range e.Moves {
		got = append(got, m.Move.String())
	}
	if strings.Join(got, " ") != "e2e4 d2d4 h2h3 g1f3" {
		t.Fatalf("order = %v", got)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"duplicate position": `{"` + startKey + `": {"moves": {}}, "` + startKey + `": {"moves": {}}}`,
		"duplicate move":     `{"` + startKey + `": {"moves": {"e2e4": 1, "e2e4": 2}}}`,
		"string goodness":    `{"` + startKey + `": {"moves": {"e2e4": "1"}}}`,
		"null goodness":      `{"` + startKey + `": {"moves": {"e2e4": null}}}`,
		"unknown field":      `{"` + startKey + `": {"line_len": 3}}`,
		"illegal move":       `{"` + startKey + `": {"moves": {"e2e5": 1}}}`,
		"bad descriptor":     `{"` + startKey + `": {"moves": {"e2-e4": 1}}}`,
		"six field key":      `{"` + startKey + ` 0 1": {"moves": {}}}`,
		"bad key":            `{"not a position w - -": {"moves": {}}}`,
		"name not string":    `{"` + startKey + `": {"name": 4}}`,
		"trailing data":      `{"` + startKey + `": {"moves": {}}} {}`,
		"not an object":      `[]`,
		"empty":              ``,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := Load(strings.NewReader(src))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Load = %v, want ErrMalformed", err)
			}
			if b != nil {
				t.Fatal("partial book returned")
			}
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	raw := Raw{
		startKey: {Name: "Initial position", Moves: map[string]float64{"e2e4": 20, "d2d4": 20, "a2a3": -15}},
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq -": {Name: "King's Pawn Opening", ECO: "B00", Moves: map[string]float64{}},
	}
	var buf bytes.Buffer
	if err := Write(&buf, raw); err != nil {
		t.Fatal(err)
	}
	b, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d", b.Len())
	}
	e, _ := b.Lookup(startKey)
	// encoding/json sorts map keys, so the tie keeps d2d4 before e2e4
	if e.Moves[0].Move.String() != "d2d4" || e.Moves[1].Move.String() != "e2e4" || e.Moves[2].Move.String() != "a2a3" {
		t.Fatalf("unexpected order %v", e.Moves)
	}

	fromRaw, err := FromRaw(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got := fromRaw.Keys(); len(got) != 2 || got[0] > got[1] {
		t.Fatalf("Keys = %v", got)
	}
}

func TestNilBook(t *testing.T) {
	var b *Book
	if _, ok := b.Lookup(startKey); ok {
		t.Fatal("nil book returned an entry")
	}
	if b.Len() != 0 {
		t.Fatal("nil book has entries")
	}
}
