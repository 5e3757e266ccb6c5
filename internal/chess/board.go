package chess

import "strings"

// Board is an 8x8 grid of optional pieces. Copying a Board value copies the
// whole grid, which is what Clone relies on.
type Board struct {
	squares [8][8]*Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns a board in the opening setup.
func NewStandardBoard() *Board {
	b := NewBoard()
	b.Reset()
	return b
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Reset clears the board and places both armies in their starting squares.
func (b *Board) Reset() {
	b.squares = [8][8]*Piece{}
	for col := 1; col <= 8; col++ {
		b.AddPiece(Position{Row: 1, Col: col}, NewPiece(White, backRank[col-1]))
		b.AddPiece(Position{Row: 2, Col: col}, NewPiece(White, Pawn))
		b.AddPiece(Position{Row: 7, Col: col}, NewPiece(Black, Pawn))
		b.AddPiece(Position{Row: 8, Col: col}, NewPiece(Black, backRank[col-1]))
	}
}

// AddPiece places p on pos, replacing whatever was there.
func (b *Board) AddPiece(pos Position, p Piece) {
	b.squares[pos.Row-1][pos.Col-1] = &p
}

// RemovePiece empties pos.
func (b *Board) RemovePiece(pos Position) {
	b.squares[pos.Row-1][pos.Col-1] = nil
}

// Piece returns the piece on pos, if any.
func (b *Board) Piece(pos Position) (Piece, bool) {
	p := b.squares[pos.Row-1][pos.Col-1]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// MovePiece relocates whatever stands on the start square to the end square,
// capturing anything there. It does not check legality.
func (b *Board) MovePiece(m Move) {
	p, ok := b.Piece(m.StartPosition)
	if !ok {
		return
	}
	if m.PromotionPiece != "" {
		p = NewPiece(p.TeamColor, m.PromotionPiece)
	}
	b.RemovePiece(m.StartPosition)
	b.AddPiece(m.EndPosition, p)
}

// Clone returns an independent copy. Pieces are immutable so sharing the
// pointers between grids is safe.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Equal reports whether both boards hold the same piece on every square.
func (b *Board) Equal(o *Board) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p, q := b.squares[row][col], o.squares[row][col]
			if (p == nil) != (q == nil) || (p != nil && *p != *q) {
				return false
			}
		}
	}
	return true
}

// Find returns the first square, scanning from a1, holding a piece matching pred.
func (b *Board) Find(pred func(Piece) bool) (Position, bool) {
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			pos := Position{Row: row, Col: col}
			if p, ok := b.Piece(pos); ok && pred(p) {
				return pos, true
			}
		}
	}
	return Position{}, false
}

// Each calls fn for every occupied square, scanning from a1.
func (b *Board) Each(fn func(Position, Piece)) {
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			pos := Position{Row: row, Col: col}
			if p, ok := b.Piece(pos); ok {
				fn(pos, p)
			}
		}
	}
}

// String draws the board with rank 8 on top: upper case for white, lower
// case for black, '.' for empty squares.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 8; row >= 1; row-- {
		for col := 1; col <= 8; col++ {
			p, ok := b.Piece(Position{Row: row, Col: col})
			switch {
			case !ok:
				sb.WriteByte('.')
			case p.TeamColor == White:
				sb.WriteByte(p.PieceType.Letter())
			default:
				sb.WriteByte(p.PieceType.Letter() + ('a' - 'A'))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
