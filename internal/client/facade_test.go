package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/controller"
	"github.com/benbeisheim/chess-server/internal/dataaccess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/testutil"
	"github.com/benbeisheim/chess-server/internal/ws"
	"github.com/gofiber/fiber/v2"
)

// startServer runs a full server on a loopback port and returns its URL.
func startServer(t *testing.T) string {
	t.Helper()
	store := dataaccess.NewMemoryDataAccess()
	users := service.NewUserService(store)
	manager := service.NewGameManager(store, users)
	games := service.NewGameService(store, users, manager)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	controller.SetupRoutes(app, users, games, manager, ws.NewHub())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.RequireNoError(t, err, "listen")
	go app.Listener(ln)
	t.Cleanup(func() { app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestServerFacade(t *testing.T) {
	f := NewServerFacade(startServer(t))

	auth, err := f.Register("alice", "pw", "alice@example.com")
	testutil.RequireNoError(t, err, "register")
	testutil.AssertEqual(t, auth.Username, "alice")

	_, err = f.Register("alice", "pw", "alice@example.com")
	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected a ResponseError, got %v", err)
	}
	testutil.AssertEqual(t, respErr.Status, fiber.StatusForbidden)

	login, err := f.Login("alice", "pw")
	testutil.RequireNoError(t, err, "login")

	gameID, err := f.CreateGame(login.AuthToken, "casual")
	testutil.RequireNoError(t, err, "create")
	testutil.RequireNoError(t, f.JoinGame(login.AuthToken, gameID, chess.Black), "join")

	games, err := f.ListGames(login.AuthToken)
	testutil.RequireNoError(t, err, "list")
	testutil.AssertEqual(t, len(games), 1)
	testutil.AssertEqual(t, games[0].BlackUsername, "alice")

	game, err := f.GetGame(login.AuthToken, gameID)
	testutil.RequireNoError(t, err, "get")
	if game.Game == nil || game.Game.TeamTurn() != chess.White {
		t.Errorf("unexpected game state %+v", game)
	}

	testutil.RequireNoError(t, f.Logout(login.AuthToken), "logout")
	_, err = f.ListGames(login.AuthToken)
	if !errors.As(err, &respErr) || respErr.Status != fiber.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %v", err)
	}

	testutil.RequireNoError(t, f.Clear(), "clear")
	_, err = f.Login("alice", "pw")
	if err == nil {
		t.Error("login should fail after clear")
	}
}

func TestCommunicatorRoundTrip(t *testing.T) {
	url := startServer(t)
	f := NewServerFacade(url)
	auth, err := f.Register("alice", "pw", "alice@example.com")
	testutil.RequireNoError(t, err, "register")
	gameID, err := f.CreateGame(auth.AuthToken, "g")
	testutil.RequireNoError(t, err, "create")
	testutil.RequireNoError(t, f.JoinGame(auth.AuthToken, gameID, chess.White), "join")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan ws.ServerMessage, 4)
	conn, err := Dialer(url)(ctx, func(msg ws.ServerMessage) { received <- msg })
	testutil.RequireNoError(t, err, "dial")
	defer conn.Close()

	next := func() ws.ServerMessage {
		t.Helper()
		select {
		case msg := <-received:
			return msg
		case <-ctx.Done():
			t.Fatal("timed out waiting for a server message")
		}
		return ws.ServerMessage{}
	}

	testutil.RequireNoError(t, conn.Send(ctx, ws.Command{CommandType: ws.CommandConnect, AuthToken: auth.AuthToken, GameID: gameID}), "connect")
	msg := next()
	testutil.AssertEqual(t, msg.ServerMessageType, ws.MessageLoadGame)
	testutil.AssertEqual(t, msg.Role, model.RoleWhite)

	move, err := chess.ParseMove("e2e4")
	testutil.RequireNoError(t, err, "parse")
	testutil.RequireNoError(t, conn.Send(ctx, ws.Command{CommandType: ws.CommandMakeMove, AuthToken: auth.AuthToken, GameID: gameID, Move: &move}), "move")
	msg = next()
	testutil.AssertEqual(t, msg.ServerMessageType, ws.MessageLoadGame)
	testutil.AssertEqual(t, msg.Game.Game.TeamTurn(), chess.Black)

	testutil.RequireNoError(t, conn.Send(ctx, ws.Command{CommandType: ws.CommandMakeMove, AuthToken: auth.AuthToken, GameID: gameID, Move: &move}), "second move")
	msg = next()
	testutil.AssertEqual(t, msg, ws.Error("not your turn"))
}

func TestWebSocketURL(t *testing.T) {
	testutil.AssertEqual(t, WebSocketURL("http://localhost:8080"), "ws://localhost:8080/ws")
	testutil.AssertEqual(t, WebSocketURL("https://chess.example.com"), "wss://chess.example.com/ws")
}
