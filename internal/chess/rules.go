package chess

// MovementRule produces every move a piece can geometrically make from a
// square. Rules do not look at whether the move would expose the mover's own
// king; Game filters those out.
type MovementRule interface {
	Moves(b *Board, from Position) []Move
}

type direction struct {
	dRow, dCol int
}

var (
	orthogonalDirs = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	royalDirs      = append(append([]direction{}, orthogonalDirs...), diagonalDirs...)
	knightDirs     = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// rules is filled once at init and only read afterwards.
var rules = map[PieceType]MovementRule{
	King:   kingRule{},
	Queen:  queenRule{},
	Bishop: bishopRule{},
	Knight: knightRule{},
	Rook:   rookRule{},
	Pawn:   pawnRule{},
}

// RuleFor returns the movement rule for a piece type. It panics on an
// unknown type; boards only ever hold the six real ones.
func RuleFor(t PieceType) MovementRule {
	r, ok := rules[t]
	if !ok {
		panic("chess: no movement rule for piece type " + string(t))
	}
	return r
}

// castRays walks each direction from the origin. A ray stops at the board
// edge or at the first occupied square, which is included only when it holds
// an enemy piece. With oneStep set only the first square of each ray is tried.
func castRays(b *Board, from Position, dirs []direction, oneStep bool) []Move {
	mover, ok := b.Piece(from)
	if !ok {
		return nil
	}
	var moves []Move
	for _, dir := range dirs {
		target := from.offset(dir.dRow, dir.dCol)
		for target.Valid() {
			occupant, occupied := b.Piece(target)
			if occupied {
				if occupant.TeamColor != mover.TeamColor {
					moves = append(moves, NewMove(from, target, ""))
				}
				break
			}
			moves = append(moves, NewMove(from, target, ""))
			if oneStep {
				break
			}
			target = target.offset(dir.dRow, dir.dCol)
		}
	}
	return moves
}

type kingRule struct{}

func (kingRule) Moves(b *Board, from Position) []Move {
	return castRays(b, from, royalDirs, true)
}

type queenRule struct{}

func (queenRule) Moves(b *Board, from Position) []Move {
	return castRays(b, from, royalDirs, false)
}

type rookRule struct{}

func (rookRule) Moves(b *Board, from Position) []Move {
	return castRays(b, from, orthogonalDirs, false)
}

type bishopRule struct{}

func (bishopRule) Moves(b *Board, from Position) []Move {
	return castRays(b, from, diagonalDirs, false)
}

type knightRule struct{}

func (knightRule) Moves(b *Board, from Position) []Move {
	return castRays(b, from, knightDirs, true)
}

type pawnRule struct{}

func (pawnRule) Moves(b *Board, from Position) []Move {
	pawn, ok := b.Piece(from)
	if !ok {
		return nil
	}
	forward, startRow, lastRow := 1, 2, 8
	if pawn.TeamColor == Black {
		forward, startRow, lastRow = -1, 7, 1
	}

	var moves []Move
	addMove := func(to Position) {
		if to.Row == lastRow {
			for _, t := range PromotionTypes {
				moves = append(moves, NewMove(from, to, t))
			}
			return
		}
		moves = append(moves, NewMove(from, to, ""))
	}

	oneStep := from.offset(forward, 0)
	if oneStep.Valid() {
		if _, occupied := b.Piece(oneStep); !occupied {
			addMove(oneStep)
			twoStep := from.offset(2*forward, 0)
			if from.Row == startRow {
				if _, occupied := b.Piece(twoStep); !occupied {
					addMove(twoStep)
				}
			}
		}
	}

	for _, dCol := range []int{-1, 1} {
		target := from.offset(forward, dCol)
		if !target.Valid() {
			continue
		}
		if occupant, occupied := b.Piece(target); occupied && occupant.TeamColor != pawn.TeamColor {
			addMove(target)
		}
	}
	return moves
}
