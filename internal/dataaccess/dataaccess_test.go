package dataaccess

import (
	"testing"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/testutil"
)

// forEachStore runs fn against every DataAccess implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, store DataAccess)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryDataAccess())
	})
	t.Run("badger", func(t *testing.T) {
		store, err := NewBadgerDataAccess("")
		testutil.RequireNoError(t, err, "open in-memory badger")
		t.Cleanup(func() { store.Close() })
		fn(t, store)
	})
}

func TestUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, store DataAccess) {
		user := model.UserData{Username: "alice", PasswordHash: "hash", Email: "a@example.com"}
		testutil.RequireNoError(t, store.CreateUser(user), "CreateUser")
		testutil.AssertErrorIs(t, store.CreateUser(user), ErrAlreadyExists)

		got, err := store.GetUser("alice")
		testutil.RequireNoError(t, err, "GetUser")
		testutil.AssertEqual(t, got, user)

		_, err = store.GetUser("nobody")
		testutil.AssertErrorIs(t, err, ErrNotFound)
	})
}

func TestAuth(t *testing.T) {
	forEachStore(t, func(t *testing.T, store DataAccess) {
		auth := model.AuthData{AuthToken: "tok", Username: "alice"}
		testutil.RequireNoError(t, store.CreateAuth(auth), "CreateAuth")

		got, err := store.GetAuth("tok")
		testutil.RequireNoError(t, err, "GetAuth")
		testutil.AssertEqual(t, got, auth)

		testutil.RequireNoError(t, store.DeleteAuth("tok"), "DeleteAuth")
		_, err = store.GetAuth("tok")
		testutil.AssertErrorIs(t, err, ErrNotFound)
		testutil.AssertErrorIs(t, store.DeleteAuth("tok"), ErrNotFound)
	})
}

func TestGames(t *testing.T) {
	forEachStore(t, func(t *testing.T, store DataAccess) {
		g := model.NewGameData("id-2", "beta")
		testutil.RequireNoError(t, store.CreateGame(g), "CreateGame")
		testutil.RequireNoError(t, store.CreateGame(model.NewGameData("id-1", "alpha")), "CreateGame")
		testutil.AssertErrorIs(t, store.CreateGame(g), ErrAlreadyExists)

		m, _ := chess.ParseMove("e2e4")
		testutil.RequireNoError(t, g.Game.MakeMove(m), "move")
		g.Seat(chess.White, "alice")
		testutil.RequireNoError(t, store.UpdateGame(g), "UpdateGame")

		got, err := store.GetGame("id-2")
		testutil.RequireNoError(t, err, "GetGame")
		testutil.AssertEqual(t, got.WhiteUsername, "alice")
		testutil.AssertEqual(t, got.Game.TeamTurn(), chess.Black)
		if !got.Game.Board().Equal(g.Game.Board()) {
			t.Errorf("stored board differs from saved board")
		}

		// The returned copy is independent of what is stored.
		reply, _ := chess.ParseMove("e7e5")
		testutil.RequireNoError(t, got.Game.MakeMove(reply), "move on copy")
		again, err := store.GetGame("id-2")
		testutil.RequireNoError(t, err, "GetGame")
		testutil.AssertEqual(t, again.Game.TeamTurn(), chess.Black)

		list, err := store.ListGames()
		testutil.RequireNoError(t, err, "ListGames")
		names := []string{}
		for _, g := range list {
			names = append(names, g.GameName)
		}
		testutil.AssertEqual(t, names, []string{"alpha", "beta"})

		testutil.AssertErrorIs(t, store.UpdateGame(model.NewGameData("missing", "x")), ErrNotFound)
		_, err = store.GetGame("missing")
		testutil.AssertErrorIs(t, err, ErrNotFound)
	})
}

func TestClear(t *testing.T) {
	forEachStore(t, func(t *testing.T, store DataAccess) {
		testutil.RequireNoError(t, store.CreateUser(model.UserData{Username: "alice"}), "CreateUser")
		testutil.RequireNoError(t, store.CreateAuth(model.AuthData{AuthToken: "tok", Username: "alice"}), "CreateAuth")
		testutil.RequireNoError(t, store.CreateGame(model.NewGameData("g", "game")), "CreateGame")

		testutil.RequireNoError(t, store.Clear(), "Clear")

		_, err := store.GetUser("alice")
		testutil.AssertErrorIs(t, err, ErrNotFound)
		_, err = store.GetAuth("tok")
		testutil.AssertErrorIs(t, err, ErrNotFound)
		games, err := store.ListGames()
		testutil.RequireNoError(t, err, "ListGames")
		testutil.AssertEqual(t, len(games), 0)
	})
}
