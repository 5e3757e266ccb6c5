package controller

import (
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	GameName string `json:"gameName"`
}

type joinGameRequest struct {
	PlayerColor string `json:"playerColor"`
	GameID      string `json:"gameID"`
}

// gameResponse is a full game record plus its FEN placement.
type gameResponse struct {
	model.GameData
	FEN string `json:"fen"`
}

// CreateGame handles POST /game.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	gameID, err := gc.gameService.CreateGame(authToken(c), req.GameName)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"gameID": gameID,
	})
}

// ListGames handles GET /game.
func (gc *GameController) ListGames(c *fiber.Ctx) error {
	games, err := gc.gameService.ListGames(authToken(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"games": games,
	})
}

// JoinGame handles PUT /game.
func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	var req joinGameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if _, err := gc.gameService.JoinGame(authToken(c), req.GameID, req.PlayerColor); err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{})
}

// GetGame handles GET /game/:gameId.
func (gc *GameController) GetGame(c *fiber.Ctx) error {
	game, err := gc.gameService.GetGame(authToken(c), c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameResponse{GameData: game, FEN: game.Game.Board().FEN()})
}
