package chess

import "fmt"

// Position is a square on the board. Row and Col both run 1..8; row 1 is
// white's back rank and col 1 is the a-file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewPosition validates the coordinates before building a Position.
func NewPosition(row, col int) (Position, error) {
	p := Position{Row: row, Col: col}
	if !p.Valid() {
		return Position{}, fmt.Errorf("%w: (%d,%d)", ErrMalformedPosition, row, col)
	}
	return p, nil
}

func (p Position) Valid() bool {
	return p.Row >= 1 && p.Row <= 8 && p.Col >= 1 && p.Col <= 8
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// String returns the square in algebraic form, e.g. "e2".
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col-1, p.Row)
}

// ParsePosition reads an algebraic square such as "e2".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q, use a file (a-h) followed by a rank (1-8)", ErrMalformedPosition, s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' {
		return Position{}, fmt.Errorf("%w: file %q out of range a-h", ErrMalformedPosition, file)
	}
	if rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: rank %q out of range 1-8", ErrMalformedPosition, rank)
	}
	return Position{Row: int(rank-'1') + 1, Col: int(file-'a') + 1}, nil
}
