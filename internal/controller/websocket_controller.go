package controller

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameManager *service.GameManager
	hub         *ws.Hub
}

func NewWebSocketController(gameManager *service.GameManager, hub *ws.Hub) *WebSocketController {
	return &WebSocketController{
		gameManager: gameManager,
		hub:         hub,
	}
}

// HandleConnection serves one socket until it closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	client := ws.NewClient(c)
	// The conn is recycled once this handler returns; Close makes any
	// broadcast still holding the client fail instead of writing to it.
	defer func() {
		client.Close()
		if gameID := client.GameID(); gameID != "" {
			wsc.hub.Remove(gameID, client)
		}
	}()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("websocket read: %v", err)
			return
		}
		if messageType == websocket.TextMessage {
			wsc.HandleMessage(client, message)
		}
	}
}

// HandleMessage decodes and runs one command. Failures go back to the
// sender alone as an ERROR message.
func (wsc *WebSocketController) HandleMessage(client *ws.Client, data []byte) {
	var cmd ws.Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		wsc.sendError(client, fmt.Errorf("%w: malformed command", service.ErrBadRequest))
		return
	}
	if err := wsc.handleCommand(client, cmd); err != nil {
		log.Debugf("command %s on game %s: %v", cmd.CommandType, cmd.GameID, err)
		wsc.sendError(client, err)
	}
}

func (wsc *WebSocketController) handleCommand(client *ws.Client, cmd ws.Command) error {
	switch cmd.CommandType {
	case ws.CommandConnect:
		return wsc.connect(client, cmd)
	case ws.CommandMakeMove:
		return wsc.makeMove(client, cmd)
	case ws.CommandResign:
		return wsc.resign(cmd)
	case ws.CommandLeave:
		return wsc.leave(client, cmd)
	default:
		return fmt.Errorf("%w: unknown command type %q", service.ErrBadRequest, cmd.CommandType)
	}
}

// Every fan-out below runs inside the game manager's publish callback, so it
// holds the game's lock and messages for one game go out in command order.

func (wsc *WebSocketController) connect(client *ws.Client, cmd ws.Command) error {
	_, err := wsc.gameManager.Connect(cmd.AuthToken, cmd.GameID, func(res service.ConnectResult) error {
		if err := client.Send(ws.LoadGame(res.Game, res.Role)); err != nil {
			return err
		}
		if prev := client.GameID(); prev != "" && prev != cmd.GameID {
			wsc.hub.Remove(prev, client)
		}
		client.Attach(res.Username, cmd.GameID)
		wsc.hub.Add(cmd.GameID, client)
		wsc.hub.Broadcast(cmd.GameID, ws.Notification(fmt.Sprintf("%s joined as %s", res.Username, roleName(res.Role))), client)
		return nil
	})
	return err
}

func (wsc *WebSocketController) makeMove(client *ws.Client, cmd ws.Command) error {
	if cmd.Move == nil {
		return fmt.Errorf("%w: move is required", service.ErrBadRequest)
	}
	_, err := wsc.gameManager.MakeMove(cmd.AuthToken, cmd.GameID, *cmd.Move, func(res service.MoveResult) {
		wsc.hub.BroadcastEach(cmd.GameID, nil, func(c *ws.Client) ws.ServerMessage {
			return ws.LoadGame(res.Game, res.Game.Role(c.Username()))
		})
		wsc.hub.Broadcast(cmd.GameID, ws.Notification(moveText(res.Username, res.Move)), client)

		if msg := statusText(res); msg != "" {
			wsc.hub.Broadcast(cmd.GameID, ws.Notification(msg), nil)
		}
	})
	return err
}

func (wsc *WebSocketController) resign(cmd ws.Command) error {
	_, err := wsc.gameManager.Resign(cmd.AuthToken, cmd.GameID, func(res service.ResignResult) {
		wsc.hub.Broadcast(cmd.GameID, ws.Notification(fmt.Sprintf("%s resigned, %s wins", res.Username, strings.ToLower(string(res.Color.Opponent())))), nil)
	})
	return err
}

func (wsc *WebSocketController) leave(client *ws.Client, cmd ws.Command) error {
	_, err := wsc.gameManager.Leave(cmd.AuthToken, cmd.GameID, func(res service.LeaveResult) {
		wsc.hub.Remove(cmd.GameID, client)
		if client.GameID() == cmd.GameID {
			client.Attach(res.Username, "")
		}
		wsc.hub.Broadcast(cmd.GameID, ws.Notification(fmt.Sprintf("%s left the game", res.Username)), nil)
	})
	return err
}

func (wsc *WebSocketController) sendError(client *ws.Client, err error) {
	if sendErr := client.Send(ws.Error(err.Error())); sendErr != nil {
		log.Warnf("send error message: %v", sendErr)
	}
}

func roleName(r model.Role) string {
	if r == model.RoleObserver {
		return "an observer"
	}
	return strings.ToLower(string(r))
}

func moveText(username string, m chess.Move) string {
	s := fmt.Sprintf("%s moved %s to %s", username, m.StartPosition, m.EndPosition)
	if m.PromotionPiece != "" {
		s += fmt.Sprintf(", promoting to %s", strings.ToLower(string(m.PromotionPiece)))
	}
	return s
}

// statusText announces check, checkmate or stalemate after a move.
func statusText(res service.MoveResult) string {
	game := res.Game
	name := func(color chess.TeamColor) string {
		if u := game.Player(color); u != "" {
			return u
		}
		return strings.ToLower(string(color))
	}

	switch {
	case res.Outcome != nil && res.Outcome.Reason == chess.Checkmate:
		return fmt.Sprintf("%s is in checkmate, %s wins", name(res.Outcome.Loser), name(res.Outcome.Loser.Opponent()))
	case res.Outcome != nil && res.Outcome.Reason == chess.Stalemate:
		return "stalemate, the game is a draw"
	case res.InCheck:
		return fmt.Sprintf("%s is in check", name(game.Game.TeamTurn()))
	}
	return ""
}
