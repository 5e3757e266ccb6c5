package client

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	ansiReset      = "\x1b[0m"
	ansiLightBg    = "\x1b[48;5;180m"
	ansiDarkBg     = "\x1b[48;5;94m"
	ansiFromBg     = "\x1b[48;5;226m"
	ansiTargetBg   = "\x1b[48;5;71m"
	ansiBorderBg   = "\x1b[48;5;238m"
	ansiWhitePiece = "\x1b[1;97m"
	ansiBlackPiece = "\x1b[1;30m"
	ansiBorderText = "\x1b[97m"
)

// Renderer draws boards as text, with ANSI colors when Color is set.
type Renderer struct {
	Color bool
}

// Stdout returns a writer for the console and whether it can show colors.
func Stdout() (io.Writer, bool) {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !tty {
		return colorable.NewNonColorable(os.Stdout), false
	}
	return colorable.NewColorableStdout(), true
}

// Highlight marks one piece's square and the squares it may move to.
type Highlight struct {
	From    chess.Position
	Targets map[chess.Position]bool
}

// NewHighlight collects the targets of moves.
func NewHighlight(from chess.Position, moves []chess.Move) *Highlight {
	h := &Highlight{From: from, Targets: make(map[chess.Position]bool)}
	for _, m := range moves {
		h.Targets[m.EndPosition] = true
	}
	return h
}

// Render draws b as seen by perspective: white sees rank 8 at the top,
// black sees rank 1 at the top. hl may be nil.
func (r Renderer) Render(b *chess.Board, perspective chess.TeamColor, hl *Highlight) string {
	rows := []int{8, 7, 6, 5, 4, 3, 2, 1}
	cols := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if perspective == chess.Black {
		rows = []int{1, 2, 3, 4, 5, 6, 7, 8}
		cols = []int{8, 7, 6, 5, 4, 3, 2, 1}
	}

	var sb strings.Builder
	r.fileLabels(&sb, cols)
	for _, row := range rows {
		r.border(&sb, fmt.Sprintf(" %d ", row))
		for _, col := range cols {
			pos := chess.Position{Row: row, Col: col}
			piece, ok := b.Piece(pos)
			r.square(&sb, pos, piece, ok, hl)
		}
		r.border(&sb, fmt.Sprintf(" %d ", row))
		sb.WriteString("\n")
	}
	r.fileLabels(&sb, cols)
	return sb.String()
}

func (r Renderer) fileLabels(sb *strings.Builder, cols []int) {
	label := "   "
	for _, col := range cols {
		label += fmt.Sprintf(" %c ", 'a'+col-1)
	}
	label += "   "
	r.border(sb, label)
	sb.WriteString("\n")
}

func (r Renderer) border(sb *strings.Builder, s string) {
	if !r.Color {
		sb.WriteString(s)
		return
	}
	sb.WriteString(ansiBorderBg + ansiBorderText + s + ansiReset)
}

func (r Renderer) square(sb *strings.Builder, pos chess.Position, piece chess.Piece, occupied bool, hl *Highlight) {
	text := " . "
	if occupied {
		text = " " + pieceLetter(piece) + " "
	}
	if !r.Color {
		if hl != nil && hl.Targets[pos] {
			text = "[" + strings.TrimSpace(text) + "]"
		}
		sb.WriteString(text)
		return
	}

	bg := ansiLightBg
	if (pos.Row+pos.Col)%2 == 0 {
		bg = ansiDarkBg
	}
	if hl != nil {
		switch {
		case pos == hl.From:
			bg = ansiFromBg
		case hl.Targets[pos]:
			bg = ansiTargetBg
		}
	}
	fg := ansiWhitePiece
	if occupied && piece.TeamColor == chess.Black {
		fg = ansiBlackPiece
	}
	if !occupied {
		text = "   "
	}
	sb.WriteString(bg + fg + text + ansiReset)
}

// pieceLetter is upper case for white and lower case for black.
func pieceLetter(p chess.Piece) string {
	l := string(p.PieceType.Letter())
	if p.TeamColor == chess.Black {
		return strings.ToLower(l)
	}
	return l
}
