// Package book holds the opening book: known-good continuations keyed by
// canonical position.
package book

import (
	"errors"
	"sort"

	"hcebot/pkg/rules"
)

// ErrMalformed is returned for any book data that fails validation.
var ErrMalformed = errors.New("malformed opening book")

// Move is a book continuation with its precomputed goodness.
type Move struct {
	Move     rules.Move
	Goodness float64
}

// Entry is one book position. Moves are sorted by descending goodness.
type Entry struct {
	Name  string
	ECO   string
	Moves []Move
}

// Book maps canonical position keys to entries. It is immutable once built
// and safe for concurrent lookups.
type Book struct {
	entries map[string]*Entry
}

// Lookup returns the entry for a canonical position key.
func (b *Book) Lookup(key string) (*Entry, bool) {
	if b == nil {
		return nil, false
	}
	e, ok := b.entries[key]
	return e, ok
}

// Len returns the number of positions in the book.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Keys returns the position keys in sorted order.
func (b *Book) Keys() []string {
	keys := make([]string, 0, b.Len())
	if b == nil {
		return keys
	}
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type byGoodness []Move

func (a byGoodness) Len() int           { return len(a) }
func (a byGoodness) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byGoodness) Less(i, j int) bool { return a[i].Goodness > a[j].Goodness }
