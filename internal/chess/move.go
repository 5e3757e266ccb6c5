package chess

import (
	"fmt"
	"strings"
)

// Move is comparable, so it can be used directly as a map key or with
// slices.Contains. Promotion is empty unless a pawn reaches the last rank.
type Move struct {
	StartPosition  Position  `json:"startPosition"`
	EndPosition    Position  `json:"endPosition"`
	PromotionPiece PieceType `json:"promotionPiece,omitempty"`
}

func NewMove(start, end Position, promotion PieceType) Move {
	return Move{StartPosition: start, EndPosition: end, PromotionPiece: promotion}
}

// String renders the move in long algebraic form: "e2e4", "a7a8q".
func (m Move) String() string {
	s := m.StartPosition.String() + m.EndPosition.String()
	if m.PromotionPiece != "" {
		s += strings.ToLower(string(m.PromotionPiece.Letter()))
	}
	return s
}

// ParseMove reads long algebraic notation ("e2e4", "e7e8q").
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	start, err := ParsePosition(s[0:2])
	if err != nil {
		return Move{}, err
	}
	end, err := ParsePosition(s[2:4])
	if err != nil {
		return Move{}, err
	}
	var promotion PieceType
	if len(s) == 5 {
		if promotion, err = ParsePieceType(s[4:]); err != nil {
			return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
		}
	}
	return NewMove(start, end, promotion), nil
}
