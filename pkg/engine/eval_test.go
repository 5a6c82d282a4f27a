package engine

import (
	"testing"

	"hcebot/pkg/rules"
	"hcebot/pkg/rules/dragon"
)

// fakePosition is a static position with explicit attack sets, for testing
// the evaluator without a move generator.
type fakePosition struct {
	pieces  map[rules.Square]rules.Piece
	attacks [2]map[rules.Square]bool
	toMove  rules.Side
	mate    bool
}

func newFake() *fakePosition {
	return &fakePosition{
		pieces:  map[rules.Square]rules.Piece{},
		attacks: [2]map[rules.Square]bool{{}, {}},
	}
}

func (f *fakePosition) put(sq string, kind rules.PieceKind, side rules.Side) *fakePosition {
	s, _ := rules.ParseSquare(sq)
	f.pieces[s] = rules.Piece{Kind: kind, Side: side}
	return f
}

func (f *fakePosition) attack(side rules.Side, squares ...string) *fakePosition {
	for _, sq := range squares {
		s, _ := rules.ParseSquare(sq)
		f.attacks[side][s] = true
	}
	return f
}

func (f *fakePosition) SideToMove() rules.Side   { return f.toMove }
func (f *fakePosition) IsCheckmate() bool        { return f.mate }
func (f *fakePosition) IsStalemate() bool        { return false }
func (f *fakePosition) IsDraw() bool             { return false }
func (f *fakePosition) LegalMoves() []rules.Move { return nil }
func (f *fakePosition) Apply(m rules.Move) error { return rules.ErrIllegalMove }
func (f *fakePosition) Undo()                    { panic("fakePosition: Undo") }
func (f *fakePosition) FEN() string              { return "" }
func (f *fakePosition) IsAttacked(sq rules.Square, by rules.Side) bool {
	return f.attacks[by][sq]
}
func (f *fakePosition) PieceAt(sq rules.Square) (rules.Piece, bool) {
	p, ok := f.pieces[sq]
	return p, ok
}

func mustBoard(t *testing.T, fen string) *dragon.Board {
	t.Helper()
	b, err := dragon.NewBoard(fen)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEvalStartPositionIsBalanced(t *testing.T) {
	b := dragon.NewStartBoard()
	for _, kingless := range []bool{false, true} {
		if got := EvalStatic(b, rules.White, kingless); got != 0 {
			t.Errorf("kingless=%v: start position scores %d for white", kingless, got)
		}
		if got := EvalStatic(b, rules.Black, kingless); got != 0 {
			t.Errorf("kingless=%v: start position scores %d for black", kingless, got)
		}
	}
}

func TestEvalPerspectiveSymmetry(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		for _, kingless := range []bool{false, true} {
			w := EvalStatic(b, rules.White, kingless)
			bl := EvalStatic(b, rules.Black, kingless)
			if w != -bl {
				t.Errorf("%s kingless=%v: white %d, black %d", fen, kingless, w, bl)
			}
		}
	}
}

func TestEvalCheckmate(t *testing.T) {
	// black is mated by Qf8
	b := mustBoard(t, "5Q1k/8/6K1/8/8/8/8/8 b - - 1 1")
	if got := EvalStatic(b, rules.Black, false); got != -KingValue {
		t.Errorf("loser scores %d, want %d", got, -KingValue)
	}
	if got := EvalStatic(b, rules.White, false); got != KingValue {
		t.Errorf("winner scores %d, want %d", got, KingValue)
	}
	// kingless mode ignores the mate and counts material
	if got := EvalStatic(b, rules.White, true); got == KingValue || got <= 0 {
		t.Errorf("kingless evaluation of a won position = %d", got)
	}
}

func TestEvalMaterial(t *testing.T) {
	pos := newFake().
		put("e1", rules.King, rules.White).
		put("d1", rules.Queen, rules.White).
		put("e8", rules.King, rules.Black).
		put("a8", rules.Rook, rules.Black).
		put("b8", rules.Knight, rules.Black)
	if got, want := EvalStatic(pos, rules.White, false), int32(900-500-300); got != want {
		t.Errorf("material = %d, want %d", got, want)
	}
	if got, want := EvalStatic(pos, rules.Black, false), int32(-100); got != want {
		t.Errorf("black material = %d, want %d", got, want)
	}
}

func TestEvalKingTacticalValue(t *testing.T) {
	// no black king at all: only kingless mode gives the white king a value
	pos := newFake().
		put("e1", rules.King, rules.White).
		put("e8", rules.Rook, rules.Black)
	if got := EvalStatic(pos, rules.White, false); got != -500 {
		t.Errorf("with mate rules = %d, want -500", got)
	}
	if got := EvalStatic(pos, rules.White, true); got != KingTacticalValue-500 {
		t.Errorf("kingless = %d, want %d", got, KingTacticalValue-500)
	}
}

func TestEvalSquareControl(t *testing.T) {
	cases := []struct {
		name string
		pos  *fakePosition
		want int32
	}{
		{"white centre", newFake().attack(rules.White, "e5"), SquareControlValue * 4},
		{"white back rank", newFake().attack(rules.White, "a1"), SquareControlValue * 1},
		{"black centre", newFake().attack(rules.Black, "d4"), -SquareControlValue * 4},
		{"contested square counts for both", newFake().attack(rules.White, "d4").attack(rules.Black, "d4"), 0},
		{"mirrored deep squares", newFake().attack(rules.White, "a8").attack(rules.Black, "a1"), 0},
		{"deep beats home", newFake().attack(rules.White, "h7").attack(rules.Black, "h7"), SquareControlValue * (2 - 1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := EvalStatic(c.pos, rules.White, false); got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestEvalKingControlAppliesInBothModes(t *testing.T) {
	pos := newFake().
		put("e4", rules.King, rules.White).
		attack(rules.White, "d5", "e5", "f5")
	withMate := EvalStatic(pos, rules.White, false)
	kingless := EvalStatic(pos, rules.White, true)
	if withMate != SquareControlValue*(4+4+3) {
		t.Errorf("control with mate rules = %d", withMate)
	}
	if kingless-withMate != KingTacticalValue {
		t.Errorf("kingless adds %d, want %d", kingless-withMate, KingTacticalValue)
	}
}

func TestTablesMirror(t *testing.T) {
	tb := NewTables()
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if tb.Control[rules.White][r][f] != tb.Control[rules.Black][7-r][f] {
				t.Fatalf("control grid not mirrored at rank %d file %d", r, f)
			}
		}
	}
	if tb.PieceValues[rules.King] != 0 || tb.PieceValues[rules.NoPieceKind] != 0 {
		t.Fatal("king and empty must carry no material")
	}
}
