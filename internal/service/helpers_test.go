package service

import (
	"testing"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/dataaccess"
	"github.com/benbeisheim/chess-server/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

type services struct {
	store   *dataaccess.MemoryDataAccess
	users   *UserService
	games   *GameService
	manager *GameManager
}

func newServices(t *testing.T) *services {
	t.Helper()
	store := dataaccess.NewMemoryDataAccess()
	users := NewUserService(store)
	users.cost = bcrypt.MinCost
	manager := NewGameManager(store, users)
	return &services{
		store:   store,
		users:   users,
		games:   NewGameService(store, users, manager),
		manager: manager,
	}
}

// register returns a token for a fresh user.
func (s *services) register(t *testing.T, username string) string {
	t.Helper()
	auth, err := s.users.Register(username, "pw-"+username, username+"@example.com")
	testutil.RequireNoError(t, err, "register "+username)
	return auth.AuthToken
}

// seatedGame creates a game with white and black already joined.
func (s *services) seatedGame(t *testing.T) (gameID, white, black string) {
	t.Helper()
	white = s.register(t, "white")
	black = s.register(t, "black")
	gameID, err := s.games.CreateGame(white, "match")
	testutil.RequireNoError(t, err, "create game")
	_, err = s.games.JoinGame(white, gameID, "white")
	testutil.RequireNoError(t, err, "join white")
	_, err = s.games.JoinGame(black, gameID, "black")
	testutil.RequireNoError(t, err, "join black")
	return gameID, white, black
}

func mv(t *testing.T, s string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(s)
	testutil.RequireNoError(t, err, "parse move "+s)
	return m
}
