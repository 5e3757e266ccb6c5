package chess

import (
	"fmt"
	"strings"

	nchess "github.com/notnil/chess"
)

var (
	toFENType = map[PieceType]nchess.PieceType{
		King: nchess.King, Queen: nchess.Queen, Rook: nchess.Rook,
		Bishop: nchess.Bishop, Knight: nchess.Knight, Pawn: nchess.Pawn,
	}
	fromFENType = map[nchess.PieceType]PieceType{
		nchess.King: King, nchess.Queen: Queen, nchess.Rook: Rook,
		nchess.Bishop: Bishop, nchess.Knight: Knight, nchess.Pawn: Pawn,
	}
)

// fenDefaults fills in the fields a short FEN leaves out.
var fenDefaults = []string{"", "w", "-", "-", "0", "1"}

// FEN returns the piece placement field of the board's FEN.
func (b *Board) FEN() string {
	squares := make(map[nchess.Square]nchess.Piece)
	b.Each(func(pos Position, p Piece) {
		color := nchess.White
		if p.TeamColor == Black {
			color = nchess.Black
		}
		squares[toFENSquare(pos)] = nchess.NewPiece(toFENType[p.PieceType], color)
	})
	return nchess.NewBoard(squares).String()
}

// BoardFromFEN builds a board from a full FEN or from its placement field
// alone, or anything in between. Only the placement is used.
func BoardFromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 || len(fields) > len(fenDefaults) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedBoard, fen)
	}
	fields = append(fields, fenDefaults[len(fields):]...)
	opt, err := nchess.FEN(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBoard, err)
	}
	b := NewBoard()
	for sq, p := range nchess.NewGame(opt).Position().Board().SquareMap() {
		color := White
		if p.Color() == nchess.Black {
			color = Black
		}
		b.AddPiece(Position{Row: int(sq.Rank()) + 1, Col: int(sq.File()) + 1}, NewPiece(color, fromFENType[p.Type()]))
	}
	return b, nil
}

// GameFromFEN builds a game from a full FEN, taking the side to move from
// its second field (white when absent).
func GameFromFEN(fen string) (*Game, error) {
	b, err := BoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{board: b, teamTurn: White}
	if fields := strings.Fields(fen); len(fields) > 1 && fields[1] == "b" {
		g.teamTurn = Black
	}
	return g, nil
}

func toFENSquare(pos Position) nchess.Square {
	return nchess.NewSquare(nchess.File(pos.Col-1), nchess.Rank(pos.Row-1))
}
