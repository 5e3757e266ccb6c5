package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/benbeisheim/chess-server/internal/dataaccess"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/testutil"
	"github.com/benbeisheim/chess-server/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type testServer struct {
	app     *fiber.App
	users   *service.UserService
	games   *service.GameService
	manager *service.GameManager
	hub     *ws.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := dataaccess.NewMemoryDataAccess()
	users := service.NewUserService(store)
	manager := service.NewGameManager(store, users)
	games := service.NewGameService(store, users, manager)
	hub := ws.NewHub()

	app := fiber.New()
	SetupRoutes(app, users, games, manager, hub)
	return &testServer{app: app, users: users, games: games, manager: manager, hub: hub}
}

// do sends a JSON request and decodes the JSON response into out (if not nil).
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		testutil.RequireNoError(t, err, "marshal body")
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := s.app.Test(req, -1)
	testutil.RequireNoError(t, err, method+" "+path)
	defer resp.Body.Close()

	if out != nil {
		testutil.RequireNoError(t, json.NewDecoder(resp.Body).Decode(out), "decode "+path)
	}
	return resp.StatusCode
}

func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	var auth struct {
		AuthToken string `json:"authToken"`
	}
	status := s.do(t, "POST", "/user", "", fiber.Map{
		"username": username, "password": "pw", "email": username + "@example.com",
	}, &auth)
	testutil.AssertEqual(t, status, fiber.StatusOK)
	return auth.AuthToken
}

func (s *testServer) createGame(t *testing.T, token, name string) string {
	t.Helper()
	var res struct {
		GameID string `json:"gameID"`
	}
	status := s.do(t, "POST", "/game", token, fiber.Map{"gameName": name}, &res)
	testutil.AssertEqual(t, status, fiber.StatusOK)
	return res.GameID
}

func (s *testServer) join(t *testing.T, token, gameID, color string) {
	t.Helper()
	status := s.do(t, "PUT", "/game", token, fiber.Map{"gameID": gameID, "playerColor": color}, nil)
	testutil.AssertEqual(t, status, fiber.StatusOK)
}
