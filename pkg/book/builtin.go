package book

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed book.json
var builtinJSON []byte

var (
	builtinOnce sync.Once
	builtinBook *Book
	builtinErr  error
)

// Builtin returns the book compiled into the binary. It is parsed on first
// use and shared by every caller afterwards.
func Builtin() (*Book, error) {
	builtinOnce.Do(func() {
		builtinBook, builtinErr = Load(bytes.NewReader(builtinJSON))
	})
	return builtinBook, builtinErr
}
