package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 10 * time.Second

// ResponseError is a non-2xx reply from the server.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server replied %d", e.Status)
}

// ServerFacade wraps the server's REST endpoints.
type ServerFacade struct {
	baseURL string
}

func NewServerFacade(baseURL string) *ServerFacade {
	return &ServerFacade{baseURL: baseURL}
}

func (f *ServerFacade) Clear() error {
	return f.do(fiber.Delete(f.baseURL+"/db"), "", nil, nil)
}

func (f *ServerFacade) Register(username, password, email string) (model.AuthData, error) {
	var auth model.AuthData
	err := f.do(fiber.Post(f.baseURL+"/user"), "", fiber.Map{
		"username": username,
		"password": password,
		"email":    email,
	}, &auth)
	return auth, err
}

func (f *ServerFacade) Login(username, password string) (model.AuthData, error) {
	var auth model.AuthData
	err := f.do(fiber.Post(f.baseURL+"/session"), "", fiber.Map{
		"username": username,
		"password": password,
	}, &auth)
	return auth, err
}

func (f *ServerFacade) Logout(token string) error {
	return f.do(fiber.Delete(f.baseURL+"/session"), token, nil, nil)
}

func (f *ServerFacade) CreateGame(token, name string) (string, error) {
	var res struct {
		GameID string `json:"gameID"`
	}
	err := f.do(fiber.Post(f.baseURL+"/game"), token, fiber.Map{"gameName": name}, &res)
	return res.GameID, err
}

func (f *ServerFacade) ListGames(token string) ([]model.GameData, error) {
	var res struct {
		Games []model.GameData `json:"games"`
	}
	err := f.do(fiber.Get(f.baseURL+"/game"), token, nil, &res)
	return res.Games, err
}

func (f *ServerFacade) JoinGame(token, gameID string, color chess.TeamColor) error {
	return f.do(fiber.Put(f.baseURL+"/game"), token, fiber.Map{
		"gameID":      gameID,
		"playerColor": color,
	}, nil)
}

func (f *ServerFacade) GetGame(token, gameID string) (model.GameData, error) {
	var game model.GameData
	err := f.do(fiber.Get(f.baseURL+"/game/"+gameID), token, nil, &game)
	return game, err
}

// do sends the request and decodes a successful JSON reply into out.
func (f *ServerFacade) do(a *fiber.Agent, token string, body interface{}, out interface{}) error {
	a.Timeout(requestTimeout)
	if token != "" {
		a.Set(fiber.HeaderAuthorization, token)
	}
	if body != nil {
		a.JSON(body)
	}

	code, data, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errs[0])
	}
	if code < 200 || code > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &msg)
		return &ResponseError{Status: code, Message: msg.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
