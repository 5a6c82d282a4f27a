package engine

import "hcebot/pkg/rules"

// KingValue is the score of a checkmate. It exceeds any material sum.
const KingValue = int32(99999)

// KingTacticalValue is the king's material value in kingless evaluation,
// where mate is not checked and the king is treated as a fighting piece.
const KingTacticalValue = int32(400)

// SquareControlValue is the base bonus for attacking a square, scaled by the
// positional multiplier of that square.
const SquareControlValue = int32(3)

// Tables holds the immutable evaluation parameters.
type Tables struct {
	PieceValues        [rules.NumPieceKinds]int32
	Control            [2][8][8]int32 // [side][rank][file]
	SquareControlValue int32
	KingTacticalValue  int32
	KingValue          int32
}

// DefaultTables are the process-wide evaluation parameters.
var DefaultTables = NewTables()

var pieceValues = [rules.NumPieceKinds]int32{
	0,   // NoPieceKind
	100, // Pawn
	300, // Knight
	320, // Bishop
	500, // Rook
	900, // Queen
	0,   // King, scored by mate detection
}

// whiteControl favours the centre and squares deep in the opponent's half,
// rank 0 being white's back rank.
var whiteControl = [8][8]int32{
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 2, 2, 2, 2, 1, 1},
	{1, 2, 3, 4, 4, 3, 2, 1},
	{1, 2, 3, 4, 4, 3, 2, 1},
	{2, 2, 3, 3, 3, 3, 2, 2},
	{2, 2, 2, 2, 2, 2, 2, 2},
	{2, 2, 2, 2, 2, 2, 2, 2},
}

// NewTables builds the default tables. Black's control grid is white's
// mirrored vertically.
func NewTables() *Tables {
	t := &Tables{
		PieceValues:        pieceValues,
		SquareControlValue: SquareControlValue,
		KingTacticalValue:  KingTacticalValue,
		KingValue:          KingValue,
	}
	for r := 0; r < 8; r++ {
		t.Control[rules.White][r] = whiteControl[r]
		t.Control[rules.Black][7-r] = whiteControl[r]
	}
	return t
}
