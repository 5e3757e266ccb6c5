package chess

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON writes the board as 8 rows, row 1 first, each holding 8 cells
// of either null or a piece.
func (b *Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, 8)
	for row := range rows {
		rows[row] = make([]*Piece, 8)
		copy(rows[row], b.squares[row][:])
	}
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBoard, err)
	}
	if len(rows) != 8 {
		return fmt.Errorf("%w: want 8 rows, got %d", ErrMalformedBoard, len(rows))
	}
	var squares [8][8]*Piece
	for row, cells := range rows {
		if len(cells) != 8 {
			return fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, row+1, len(cells))
		}
		for col, p := range cells {
			if p == nil {
				continue
			}
			if !p.TeamColor.Valid() || !p.PieceType.Valid() {
				return fmt.Errorf("%w: bad piece %q/%q at %s", ErrMalformedBoard, p.TeamColor, p.PieceType, Position{Row: row + 1, Col: col + 1})
			}
			squares[row][col] = p
		}
	}
	b.squares = squares
	return nil
}

type gameJSON struct {
	Board    *Board    `json:"board"`
	TeamTurn TeamColor `json:"teamTurn"`
	Outcome  *Outcome  `json:"outcome"`
}

func (g *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameJSON{
		Board:    g.board,
		TeamTurn: g.teamTurn,
		Outcome:  g.outcome,
	})
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var raw gameJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Board == nil {
		return fmt.Errorf("%w: missing board", ErrMalformedBoard)
	}
	if !raw.TeamTurn.Valid() {
		return fmt.Errorf("unknown team to move %q", raw.TeamTurn)
	}
	if raw.Outcome != nil && !raw.Outcome.Valid() {
		return fmt.Errorf("invalid outcome %q with loser %q", raw.Outcome.Reason, raw.Outcome.Loser)
	}
	g.board = raw.Board
	g.teamTurn = raw.TeamTurn
	g.outcome = raw.Outcome
	return nil
}
