package rules

import "fmt"

// Square indexes the board from a1 (0) to h8 (63), rank-major.
type Square uint8

// NoSquare marks an absent square.
const NoSquare Square = 64

// NewSquare returns the square at the given rank and file, both 0-7.
func NewSquare(rank, file int) Square {
	return Square(rank*8 + file)
}

func (sq Square) Rank() int { return int(sq) / 8 }
func (sq Square) File() int { return int(sq) % 8 }

func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses algebraic square names such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	return NewSquare(int(s[1]-'1'), int(s[0]-'a')), nil
}

// Move is a move descriptor in long algebraic form.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// String renders the move as <from><to>[promotion], e.g. "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceKind {
		s += string(pieceLetters[m.Promotion])
	}
	return s
}

// ParseMove parses a long algebraic move descriptor.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("bad move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("bad move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("bad move %q: %w", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			m.Promotion = Knight
		case 'b':
			m.Promotion = Bishop
		case 'r':
			m.Promotion = Rook
		case 'q':
			m.Promotion = Queen
		default:
			return Move{}, fmt.Errorf("bad promotion in move %q", s)
		}
	}
	return m, nil
}
