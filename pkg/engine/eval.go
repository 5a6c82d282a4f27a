package engine

import "hcebot/pkg/rules"

// EvalStatic scores pos from clr's perspective with the default tables.
func EvalStatic(pos rules.Position, clr rules.Side, kingless bool) int32 {
	return DefaultTables.Evaluate(pos, clr, kingless)
}

// Evaluate scores pos from clr's perspective. Positive values favour clr.
// Outside kingless mode a checkmate short-circuits before any material or
// control is counted.
func (t *Tables) Evaluate(pos rules.Position, clr rules.Side, kingless bool) int32 {
	if !kingless && pos.IsCheckmate() {
		if pos.SideToMove() == clr {
			return -t.KingValue
		}
		return t.KingValue
	}
	var total [2]int32
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := rules.NewSquare(rank, file)
			if p, ok := pos.PieceAt(sq); ok {
				total[p.Side] += t.material(p.Kind, kingless)
			}
			for _, side := range [2]rules.Side{rules.White, rules.Black} {
				if pos.IsAttacked(sq, side) {
					total[side] += t.SquareControlValue * t.Control[side][rank][file]
				}
			}
		}
	}
	score := total[rules.White] - total[rules.Black]
	if clr == rules.Black {
		return -score
	}
	return score
}

func (t *Tables) material(k rules.PieceKind, kingless bool) int32 {
	if k == rules.King {
		if kingless {
			return t.KingTacticalValue
		}
		return 0
	}
	return t.PieceValues[k]
}
