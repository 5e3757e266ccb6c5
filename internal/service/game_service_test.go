package service

import (
	"testing"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/testutil"
)

func TestCreateAndListGames(t *testing.T) {
	s := newServices(t)
	token := s.register(t, "alice")

	_, err := s.games.CreateGame("bogus", "x")
	testutil.AssertErrorIs(t, err, ErrUnauthorized)
	_, err = s.games.CreateGame(token, "  ")
	testutil.AssertErrorIs(t, err, ErrBadRequest)

	first, err := s.games.CreateGame(token, "first")
	testutil.RequireNoError(t, err, "create")
	_, err = s.games.CreateGame(token, "second")
	testutil.RequireNoError(t, err, "create")

	games, err := s.games.ListGames(token)
	testutil.RequireNoError(t, err, "list")
	testutil.AssertEqual(t, len(games), 2)
	testutil.AssertEqual(t, games[0].GameID, first)
	for _, g := range games {
		if g.Game != nil {
			t.Errorf("listing of %s carries a board", g.GameName)
		}
	}

	full, err := s.games.GetGame(token, first)
	testutil.RequireNoError(t, err, "get")
	if full.Game == nil || !full.Game.Board().Equal(chess.NewStandardBoard()) {
		t.Error("new game should hold a standard board")
	}
}

func TestJoinGame(t *testing.T) {
	s := newServices(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	gameID, err := s.games.CreateGame(alice, "g")
	testutil.RequireNoError(t, err, "create")

	color, err := s.games.JoinGame(alice, gameID, "white")
	testutil.RequireNoError(t, err, "join")
	testutil.AssertEqual(t, color, chess.White)

	_, err = s.games.JoinGame(alice, gameID, "WHITE")
	testutil.RequireNoError(t, err, "rejoining own seat")

	_, err = s.games.JoinGame(bob, gameID, "white")
	testutil.AssertErrorIs(t, err, ErrAlreadyTaken)
	_, err = s.games.JoinGame(bob, gameID, "purple")
	testutil.AssertErrorIs(t, err, ErrBadRequest)
	_, err = s.games.JoinGame(bob, "", "black")
	testutil.AssertErrorIs(t, err, ErrBadRequest)
	_, err = s.games.JoinGame(bob, "missing", "black")
	testutil.AssertErrorIs(t, err, ErrGameNotFound)
	_, err = s.games.JoinGame("bogus", gameID, "black")
	testutil.AssertErrorIs(t, err, ErrUnauthorized)

	_, err = s.games.JoinGame(bob, gameID, "black")
	testutil.RequireNoError(t, err, "join black")

	g, err := s.store.GetGame(gameID)
	testutil.RequireNoError(t, err, "get")
	testutil.AssertEqual(t, g.WhiteUsername, "alice")
	testutil.AssertEqual(t, g.BlackUsername, "bob")
}

func TestClear(t *testing.T) {
	s := newServices(t)
	token := s.register(t, "alice")
	_, err := s.games.CreateGame(token, "g")
	testutil.RequireNoError(t, err, "create")

	testutil.RequireNoError(t, s.games.Clear(), "clear")

	_, err = s.users.Authenticate(token)
	testutil.AssertErrorIs(t, err, ErrUnauthorized)
	games, err := s.store.ListGames()
	testutil.RequireNoError(t, err, "list")
	testutil.AssertEqual(t, len(games), 0)
}
