// Package transposition caches position scores across the lines of an
// opening book build, so a position reached by several move orders is only
// scored once.
package transposition

import (
	"sync"
	"sync/atomic"
)

// Table is a concurrent score cache keyed by canonical position key. The
// zero value is ready to use.
type Table struct {
	m    sync.Map // string -> Entry
	hits atomic.Uint64
}

// Entry is a cached score.
type Entry struct {
	Score int // white's point of view, in centipawns
	Depth int // search depth the score was produced at
}

// Query returns the entry stored for key, if any.
func (t *Table) Query(key string) (Entry, bool) {
	v, ok := t.m.Load(key)
	if !ok {
		return Entry{}, false
	}
	t.hits.Add(1)
	return v.(Entry), true
}

// Commit stores entry unless a deeper one is already stored for key.
func (t *Table) Commit(key string, entry Entry) {
	for {
		prev, loaded := t.m.LoadOrStore(key, entry)
		if !loaded {
			return
		}
		if prev.(Entry).Depth >= entry.Depth {
			return
		}
		if t.m.CompareAndSwap(key, prev, entry) {
			return
		}
	}
}

// Len counts the stored entries.
func (t *Table) Len() int {
	n := 0
	t.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Hits returns how many queries found an entry.
func (t *Table) Hits() uint64 {
	return t.hits.Load()
}
