// Package dragon implements rules.Position on top of dragontoothmg's
// bitboard move generator.
package dragon

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"hcebot/pkg/rules"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board is a mutable position. It is not safe for concurrent use; give each
// goroutine its own Board.
type Board struct {
	b       dragontoothmg.Board
	undo    []func()
	history []uint64
	cache   []plyMoves
}

// plyMoves caches the legal moves generated at one ply of the apply stack.
type plyMoves struct {
	hash  uint64
	moves []dragontoothmg.Move
	ok    bool
}

// NewBoard parses a FEN. Four-field canonical keys are accepted and get
// zeroed move counters. dragontoothmg cannot generate moves without both
// kings, so positions lacking one are rejected with ErrBadFEN.
func NewBoard(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	full := strings.Join(fields, " ")
	if _, err := chess.FEN(full); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", rules.ErrBadFEN, fen, err)
	}
	white, black := strings.Count(fields[0], "K"), strings.Count(fields[0], "k")
	if white != 1 || black != 1 {
		return nil, fmt.Errorf("%w: %q: need one king per side, found %d white and %d black", rules.ErrBadFEN, fen, white, black)
	}
	b := &Board{b: dragontoothmg.ParseFen(full)}
	ep, err := rules.ParseSquare(fields[3])
	if err != nil {
		ep = rules.NoSquare
	}
	b.history = append(b.history, b.positionHash(ep))
	return b, nil
}

// NewStartBoard returns the initial position.
func NewStartBoard() *Board {
	b, err := NewBoard(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) SideToMove() rules.Side {
	if b.b.Wtomove {
		return rules.White
	}
	return rules.Black
}

// legal returns the legal moves of the current ply, generating them at most
// once per visit of a position.
func (b *Board) legal() []dragontoothmg.Move {
	ply := len(b.undo)
	for len(b.cache) <= ply {
		b.cache = append(b.cache, plyMoves{})
	}
	h := b.b.Hash()
	c := &b.cache[ply]
	if c.ok && c.hash == h {
		return c.moves
	}
	c.moves = b.b.GenerateLegalMoves()
	c.hash = h
	c.ok = true
	return c.moves
}

func (b *Board) IsCheckmate() bool {
	return len(b.legal()) == 0 && b.b.OurKingInCheck()
}

func (b *Board) IsStalemate() bool {
	return len(b.legal()) == 0 && !b.b.OurKingInCheck()
}

// IsDraw covers stalemate, the fifty-move rule, threefold repetition and
// insufficient material. Repetitions ignore an en-passant target no pawn
// can capture on.
func (b *Board) IsDraw() bool {
	if b.IsStalemate() {
		return true
	}
	if b.b.Halfmoveclock >= 100 {
		return true
	}
	return b.repetitions() >= 3 || b.insufficientMaterial()
}

func (b *Board) repetitions() int {
	h := b.history[len(b.history)-1]
	n := 0
	for _, prev := range b.history {
		if prev == h {
			n++
		}
	}
	return n
}

// darkSquares has a1 and every square of its colour.
const darkSquares = 0xAA55AA55AA55AA55

func (b *Board) insufficientMaterial() bool {
	w, bl := &b.b.White, &b.b.Black
	if w.Pawns|w.Rooks|w.Queens|bl.Pawns|bl.Rooks|bl.Queens != 0 {
		return false
	}
	minors := bits.OnesCount64(w.Knights | w.Bishops | bl.Knights | bl.Bishops)
	if minors <= 1 {
		return true
	}
	// bishops only, all on squares of one colour
	bishops := w.Bishops | bl.Bishops
	return w.Knights|bl.Knights == 0 && (bishops&darkSquares == 0 || bishops&^darkSquares == 0)
}

func (b *Board) LegalMoves() []rules.Move {
	legal := b.legal()
	moves := make([]rules.Move, 0, len(legal))
	for _, m := range legal {
		moves = append(moves, fromDragon(m))
	}
	return moves
}

// Apply plays m if it is legal in the current position.
func (b *Board) Apply(m rules.Move) error {
	for _, dm := range b.legal() {
		if fromDragon(dm) == m {
			ep := b.doublePushTarget(m)
			b.undo = append(b.undo, b.b.Apply(dm))
			b.history = append(b.history, b.positionHash(ep))
			return nil
		}
	}
	return fmt.Errorf("%w: %s in %s", rules.ErrIllegalMove, m, b.FEN())
}

// Undo takes back the last applied move. It panics when nothing was applied.
func (b *Board) Undo() {
	n := len(b.undo)
	if n == 0 {
		panic("dragon: Undo without Apply")
	}
	b.undo[n-1]()
	b.undo = b.undo[:n-1]
	b.history = b.history[:len(b.history)-1]
}

// Ply returns the number of moves currently applied on top of the parsed
// position.
func (b *Board) Ply() int { return len(b.undo) }

func (b *Board) PieceAt(sq rules.Square) (rules.Piece, bool) {
	mask := uint64(1) << uint(sq)
	side := rules.White
	bb := &b.b.White
	if b.b.Black.All&mask != 0 {
		side = rules.Black
		bb = &b.b.Black
	} else if bb.All&mask == 0 {
		return rules.Piece{}, false
	}
	var kind rules.PieceKind
	switch {
	case bb.Pawns&mask != 0:
		kind = rules.Pawn
	case bb.Knights&mask != 0:
		kind = rules.Knight
	case bb.Bishops&mask != 0:
		kind = rules.Bishop
	case bb.Rooks&mask != 0:
		kind = rules.Rook
	case bb.Queens&mask != 0:
		kind = rules.Queen
	case bb.Kings&mask != 0:
		kind = rules.King
	default:
		return rules.Piece{}, false
	}
	return rules.Piece{Kind: kind, Side: side}, true
}

// FEN serialises the position. The en-passant field is only kept when an
// en-passant capture is actually legal, matching python-chess keys.
func (b *Board) FEN() string {
	fields := strings.Fields(b.b.ToFen())
	if len(fields) >= 4 && fields[3] != "-" {
		if ep, err := rules.ParseSquare(fields[3]); err != nil || !b.canCaptureEnPassant(ep) {
			fields[3] = "-"
		}
	}
	return strings.Join(fields, " ")
}

// Key is the canonical opening-book key of the position.
func (b *Board) Key() string {
	return rules.CanonicalKey(b.FEN())
}

func (b *Board) canCaptureEnPassant(ep rules.Square) bool {
	pawns := b.b.White.Pawns
	if !b.b.Wtomove {
		pawns = b.b.Black.Pawns
	}
	for _, m := range b.legal() {
		if rules.Square(m.To()) == ep && pawns&(uint64(1)<<m.From()) != 0 && m.From()%8 != m.To()%8 {
			return true
		}
	}
	return false
}

func fromDragon(m dragontoothmg.Move) rules.Move {
	mv := rules.Move{From: rules.Square(m.From()), To: rules.Square(m.To())}
	switch m.Promote() {
	case dragontoothmg.Knight:
		mv.Promotion = rules.Knight
	case dragontoothmg.Bishop:
		mv.Promotion = rules.Bishop
	case dragontoothmg.Rook:
		mv.Promotion = rules.Rook
	case dragontoothmg.Queen:
		mv.Promotion = rules.Queen
	}
	return mv
}
