package service

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/dataaccess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// GameService covers the lobby: creating, listing and joining games. Seat
// changes go through the GameManager so they serialize with live play.
type GameService struct {
	store       dataaccess.DataAccess
	users       *UserService
	gameManager *GameManager
}

func NewGameService(store dataaccess.DataAccess, users *UserService, gameManager *GameManager) *GameService {
	return &GameService{
		store:       store,
		users:       users,
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(token, name string) (string, error) {
	if _, err := gs.users.Authenticate(token); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: game name is required", ErrBadRequest)
	}

	gameID := uuid.New().String()
	if err := gs.store.CreateGame(model.NewGameData(gameID, name)); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	log.Infof("created game %s (%s)", gameID, name)
	return gameID, nil
}

// ListGames returns every game without its board.
func (gs *GameService) ListGames(token string) ([]model.GameData, error) {
	if _, err := gs.users.Authenticate(token); err != nil {
		return nil, err
	}
	games, err := gs.store.ListGames()
	if err != nil {
		return nil, err
	}
	summaries := make([]model.GameData, len(games))
	for i, g := range games {
		summaries[i] = g.Summary()
	}
	return summaries, nil
}

// GetGame returns the full record of one game.
func (gs *GameService) GetGame(token, gameID string) (model.GameData, error) {
	if _, err := gs.users.Authenticate(token); err != nil {
		return model.GameData{}, err
	}
	return gs.gameManager.load(gameID)
}

// JoinGame seats the caller as color. Joining a seat the caller already
// holds succeeds.
func (gs *GameService) JoinGame(token, gameID, color string) (chess.TeamColor, error) {
	username, err := gs.users.Authenticate(token)
	if err != nil {
		return "", err
	}
	if gameID == "" {
		return "", fmt.Errorf("%w: game ID is required", ErrBadRequest)
	}
	team, err := chess.ParseTeamColor(color)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	_, err = gs.gameManager.update(gameID, func(g *model.GameData) error {
		if g.Player(team) == username {
			return nil
		}
		if !g.Seat(team, username) {
			return fmt.Errorf("%w: %s seat", ErrAlreadyTaken, strings.ToLower(string(team)))
		}
		return nil
	}, nil)
	if err != nil {
		return "", err
	}
	log.Infof("%s joined game %s as %s", username, gameID, team)
	return team, nil
}

// Clear wipes every user, session and game.
func (gs *GameService) Clear() error {
	gs.gameManager.reset()
	return gs.store.Clear()
}
