package chess

import (
	"fmt"
	"slices"
)

type EndReason string

const (
	Checkmate   EndReason = "CHECKMATE"
	Stalemate   EndReason = "STALEMATE"
	Resignation EndReason = "RESIGNATION"
)

// Outcome records why a game ended. Loser is empty for a stalemate.
type Outcome struct {
	Reason EndReason `json:"reason"`
	Loser  TeamColor `json:"loser,omitempty"`
}

// Valid reports whether o is an outcome a game can actually reach: a known
// reason, with a loser for checkmate and resignation and none for stalemate.
func (o Outcome) Valid() bool {
	switch o.Reason {
	case Checkmate, Resignation:
		return o.Loser.Valid()
	case Stalemate:
		return o.Loser == ""
	}
	return false
}

func (o Outcome) String() string {
	switch o.Reason {
	case Checkmate:
		return fmt.Sprintf("%s is checkmated", o.Loser)
	case Resignation:
		return fmt.Sprintf("%s resigned", o.Loser)
	case Stalemate:
		return "stalemate"
	}
	return string(o.Reason)
}

// Game holds one live board, the side to move and, once play has ended, the
// outcome. It has no locking of its own: callers sharing a Game between
// goroutines must serialize access.
type Game struct {
	board    *Board
	teamTurn TeamColor
	outcome  *Outcome
}

// NewGame starts a game on a standard board with white to move.
func NewGame() *Game {
	return &Game{
		board:    NewStandardBoard(),
		teamTurn: White,
	}
}

func (g *Game) TeamTurn() TeamColor {
	return g.teamTurn
}

func (g *Game) SetTeamTurn(c TeamColor) {
	g.teamTurn = c
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) SetBoard(b *Board) {
	g.board = b
}

// Outcome returns how the game ended, or nil while it is in progress.
func (g *Game) Outcome() *Outcome {
	if g.outcome == nil {
		return nil
	}
	o := *g.outcome
	return &o
}

func (g *Game) IsOver() bool {
	return g.outcome != nil
}

// ValidMoves returns the legal moves for the piece on pos, or nil when the
// square is empty. Each candidate is tried on a scratch copy of the board and
// dropped if it leaves the mover's king attacked. Whose turn it is does not
// matter here; MakeMove checks that.
func (g *Game) ValidMoves(pos Position) []Move {
	piece, ok := g.board.Piece(pos)
	if !ok {
		return nil
	}
	legal := []Move{}
	for _, m := range piece.Moves(g.board, pos) {
		scratch := g.board.Clone()
		scratch.MovePiece(m)
		if !inCheck(scratch, piece.TeamColor) {
			legal = append(legal, m)
		}
	}
	return legal
}

// MakeMove validates m against the side to move and the legal move set, then
// applies it and passes the turn. A rejected move leaves the game untouched.
func (g *Game) MakeMove(m Move) error {
	if g.IsOver() {
		return fmt.Errorf("%w: the game is over", ErrInvalidMove)
	}
	if !m.StartPosition.Valid() || !m.EndPosition.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidMove, ErrMalformedPosition)
	}
	piece, ok := g.board.Piece(m.StartPosition)
	if !ok {
		return fmt.Errorf("%w: no piece at %s", ErrInvalidMove, m.StartPosition)
	}
	if piece.TeamColor != g.teamTurn {
		return fmt.Errorf("%w: it is %s's turn", ErrInvalidMove, g.teamTurn)
	}
	if !slices.Contains(g.ValidMoves(m.StartPosition), m) {
		return fmt.Errorf("%w: %s is not legal", ErrInvalidMove, m)
	}

	g.board.MovePiece(m)
	g.teamTurn = g.teamTurn.Opponent()
	return nil
}

// IsInCheck reports whether color's king is attacked. A board without that
// king is never in check.
func (g *Game) IsInCheck(color TeamColor) bool {
	return inCheck(g.board, color)
}

// IsInCheckmate reports whether color is in check with no legal move.
func (g *Game) IsInCheckmate(color TeamColor) bool {
	return g.IsInCheck(color) && !g.hasLegalMove(color)
}

// IsInStalemate reports whether color is not in check but has no legal move.
func (g *Game) IsInStalemate(color TeamColor) bool {
	return !g.IsInCheck(color) && !g.hasLegalMove(color)
}

// Resign ends the game with color as the loser. It does nothing once the
// game is already over. Whether the caller may resign for color is not
// checked here.
func (g *Game) Resign(color TeamColor) {
	if g.IsOver() {
		return
	}
	g.outcome = &Outcome{Reason: Resignation, Loser: color}
}

// Conclude looks at the side to move and records a checkmate or stalemate
// when one holds. It returns the recorded outcome, or nil if play goes on.
func (g *Game) Conclude() *Outcome {
	if g.IsOver() {
		return g.Outcome()
	}
	switch {
	case g.IsInCheckmate(g.teamTurn):
		g.outcome = &Outcome{Reason: Checkmate, Loser: g.teamTurn}
	case g.IsInStalemate(g.teamTurn):
		g.outcome = &Outcome{Reason: Stalemate}
	}
	return g.Outcome()
}

func (g *Game) hasLegalMove(color TeamColor) bool {
	found := false
	g.board.Each(func(pos Position, p Piece) {
		if !found && p.TeamColor == color && len(g.ValidMoves(pos)) > 0 {
			found = true
		}
	})
	return found
}

func inCheck(b *Board, color TeamColor) bool {
	kingPos, ok := b.Find(func(p Piece) bool {
		return p.PieceType == King && p.TeamColor == color
	})
	if !ok {
		return false
	}
	attacked := false
	b.Each(func(pos Position, p Piece) {
		if attacked || p.TeamColor == color {
			return
		}
		for _, m := range p.Moves(b, pos) {
			if m.EndPosition == kingPos {
				attacked = true
				return
			}
		}
	})
	return attacked
}
