// Package rules defines the query surface the engine needs from a chess rules
// implementation. The engine never generates or validates moves itself.
package rules

import (
	"errors"
	"strings"
)

var (
	// ErrIllegalMove is returned by Position.Apply for a move that is not in
	// the current legal move list.
	ErrIllegalMove = errors.New("illegal move")
	// ErrBadFEN is returned when a position string cannot be parsed.
	ErrBadFEN = errors.New("malformed FEN")
)

// Side is one of the two players.
type Side uint8

const (
	White Side = iota
	Black
)

// Other returns the opponent of s.
func (s Side) Other() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// PieceKind enumerates the piece types. NoPieceKind is used for moves
// without a promotion.
type PieceKind uint8

const (
	NoPieceKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// NumPieceKinds sizes lookup tables indexed by PieceKind.
const NumPieceKinds = 7

var pieceLetters = [NumPieceKinds]byte{0, 'p', 'n', 'b', 'r', 'q', 'k'}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece is an occupied board cell.
type Piece struct {
	Kind PieceKind
	Side Side
}

// Position is a mutable game state owned by the rules implementation.
// Apply and Undo are strictly paired: every successful Apply must be matched
// by exactly one Undo, in reverse order.
type Position interface {
	SideToMove() Side
	IsCheckmate() bool
	IsStalemate() bool
	// IsDraw reports any draw the rules recognise, stalemate included.
	IsDraw() bool
	LegalMoves() []Move
	Apply(m Move) error
	Undo()
	PieceAt(sq Square) (Piece, bool)
	IsAttacked(sq Square, by Side) bool
	FEN() string
}

// CanonicalKey strips the move counters from a FEN, keeping board layout,
// side to move, castling rights and en-passant target.
func CanonicalKey(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}
