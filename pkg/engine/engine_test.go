package engine

import (
	"errors"
	"testing"

	"hcebot/pkg/book"
	"hcebot/pkg/rules/dragon"
)

func builtinEngine(t *testing.T) *Engine {
	t.Helper()
	bk, err := book.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	return NewEngine(DefaultConfig(), bk)
}

func TestEngineSearchPlaysBook(t *testing.T) {
	e := builtinEngine(t)
	mv, err := e.Search(dragon.NewStartBoard())
	if err != nil {
		t.Fatal(err)
	}
	if mv.Move.String() != "e2e4" {
		t.Errorf("got %s, want the first book move e2e4", mv.Move)
	}
	if e.Visited != 0 {
		t.Errorf("book move visited %d nodes", e.Visited)
	}
}

func TestEngineSearchStats(t *testing.T) {
	e := noBook()
	e.Config.Depth = 1
	b := mustBoard(t, kiwipete)
	if _, err := e.Search(b); err != nil {
		t.Fatal(err)
	}
	if e.Visited == 0 || e.Elapsed <= 0 {
		t.Fatalf("stats not recorded: %d nodes in %v", e.Visited, e.Elapsed)
	}
	e.ResetStats()
	if e.Visited != 0 || e.Elapsed != 0 {
		t.Fatal("ResetStats left counters")
	}
}

func TestEngineSearchGameOver(t *testing.T) {
	e := builtinEngine(t)
	b := mustBoard(t, "5Q1k/8/6K1/8/8/8/8/8 b - - 1 1")
	if _, err := e.Search(b); !errors.Is(err, ErrNoLegalMove) {
		t.Fatalf("err = %v, want ErrNoLegalMove", err)
	}
}

func TestEngineSearchTolerance(t *testing.T) {
	e := builtinEngine(t)
	e.Config.Tolerance = 0.5
	e.intn = func(n int) int { return n - 1 }
	mv, err := e.Search(dragon.NewStartBoard())
	if err != nil {
		t.Fatal(err)
	}
	// e2e4, d2d4, g1f3, c2c4, b1c3 and f2f4 are within 0.5 of the best
	if mv.Move.String() != "f2f4" {
		t.Errorf("got %s, want f2f4", mv.Move)
	}
}

func TestGetOpeningName(t *testing.T) {
	e := builtinEngine(t)
	b := dragon.NewStartBoard()
	if got := e.GetOpeningName(b); got != "Initial position" {
		t.Errorf("start: %q", got)
	}
	if err := b.Apply(mustMove(t, "e2e4")); err != nil {
		t.Fatal(err)
	}
	if got := e.GetOpeningName(b); got != "B00: King's Pawn Opening" {
		t.Errorf("after e4: %q", got)
	}
	if err := b.Apply(mustMove(t, "h7h6")); err != nil {
		t.Fatal(err)
	}
	if got := e.GetOpeningName(b); got != "" {
		t.Errorf("out of book: %q", got)
	}
	if got := NewEngine(DefaultConfig(), nil).GetOpeningName(b); got != "" {
		t.Errorf("no book: %q", got)
	}
}
