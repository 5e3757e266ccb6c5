package chess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var sortMoves = cmpopts.SortSlices(func(a, b Move) bool { return a.String() < b.String() })

func sq(t *testing.T, s string) Position {
	t.Helper()
	p, err := ParsePosition(s)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", s, err)
	}
	return p
}

func mv(t *testing.T, s string) Move {
	t.Helper()
	m, err := ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

func moves(t *testing.T, ss ...string) []Move {
	t.Helper()
	out := make([]Move, 0, len(ss))
	for _, s := range ss {
		out = append(out, mv(t, s))
	}
	return out
}

func gameFromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := GameFromFEN(fen)
	if err != nil {
		t.Fatalf("GameFromFEN(%q): %v", fen, err)
	}
	return g
}

func assertMoves(t *testing.T, got, want []Move) {
	t.Helper()
	if diff := cmp.Diff(want, got, sortMoves, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}
