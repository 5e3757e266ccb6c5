package chess

import (
	"fmt"
	"strings"
)

type TeamColor string

const (
	White TeamColor = "WHITE"
	Black TeamColor = "BLACK"
)

// Opponent returns the other side.
func (c TeamColor) Opponent() TeamColor {
	if c == White {
		return Black
	}
	return White
}

func (c TeamColor) Valid() bool {
	return c == White || c == Black
}

// ParseTeamColor accepts "white"/"black" in any case.
func ParseTeamColor(s string) (TeamColor, error) {
	switch TeamColor(strings.ToUpper(strings.TrimSpace(s))) {
	case White:
		return White, nil
	case Black:
		return Black, nil
	}
	return "", fmt.Errorf("unknown team color %q", s)
}

type PieceType string

const (
	King   PieceType = "KING"
	Queen  PieceType = "QUEEN"
	Bishop PieceType = "BISHOP"
	Knight PieceType = "KNIGHT"
	Rook   PieceType = "ROOK"
	Pawn   PieceType = "PAWN"
)

// PromotionTypes lists what a pawn may become on the last rank.
var PromotionTypes = []PieceType{Queen, Rook, Bishop, Knight}

func (t PieceType) Valid() bool {
	switch t {
	case King, Queen, Bishop, Knight, Rook, Pawn:
		return true
	}
	return false
}

// Letter is the upper-case notation letter for the type (P for pawns).
func (t PieceType) Letter() byte {
	switch t {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Rook:
		return 'R'
	case Pawn:
		return 'P'
	}
	return '?'
}

// ParsePieceType accepts full names ("queen") or notation letters ("q").
func ParsePieceType(s string) (PieceType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "K", "KING":
		return King, nil
	case "Q", "QUEEN":
		return Queen, nil
	case "B", "BISHOP":
		return Bishop, nil
	case "N", "KNIGHT":
		return Knight, nil
	case "R", "ROOK":
		return Rook, nil
	case "P", "PAWN":
		return Pawn, nil
	}
	return "", fmt.Errorf("unknown piece type %q", s)
}

// Piece is immutable; its square is implied by where the board holds it.
type Piece struct {
	TeamColor TeamColor `json:"teamColor"`
	PieceType PieceType `json:"pieceType"`
}

func NewPiece(color TeamColor, t PieceType) Piece {
	return Piece{TeamColor: color, PieceType: t}
}

// Moves returns the piece's candidate moves from pos, ignoring self-check.
func (p Piece) Moves(b *Board, pos Position) []Move {
	return RuleFor(p.PieceType).Moves(b, pos)
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.TeamColor, p.PieceType)
}
