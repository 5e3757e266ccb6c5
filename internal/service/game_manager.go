package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/dataaccess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// GameManager runs live play. Every read-modify-write of one game happens
// under that game's lock, so concurrent commands on a game apply one at a
// time while different games proceed in parallel.
type GameManager struct {
	store dataaccess.DataAccess
	users *UserService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// ConnectResult describes who joined a game's live session.
type ConnectResult struct {
	Username string
	Role     model.Role
	Game     model.GameData
}

// MoveResult is the state after an applied move. Outcome is set when the
// move ended the game; InCheck reports the side now to move is in check.
type MoveResult struct {
	Username string
	Move     chess.Move
	Game     model.GameData
	Outcome  *chess.Outcome
	InCheck  bool
}

type ResignResult struct {
	Username string
	Color    chess.TeamColor
	Game     model.GameData
}

type LeaveResult struct {
	Username string
	Role     model.Role
}

func NewGameManager(store dataaccess.DataAccess, users *UserService) *GameManager {
	return &GameManager{
		store: store,
		users: users,
		locks: make(map[string]*sync.Mutex),
	}
}

func (gm *GameManager) lockFor(gameID string) *sync.Mutex {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	l, ok := gm.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		gm.locks[gameID] = l
	}
	return l
}

// lockGame takes gameID's lock. Unknown games are rejected before a lock
// entry is made for them.
func (gm *GameManager) lockGame(gameID string) (*sync.Mutex, error) {
	if _, err := gm.load(gameID); err != nil {
		return nil, err
	}
	l := gm.lockFor(gameID)
	l.Lock()
	return l, nil
}

func (gm *GameManager) reset() {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.locks = make(map[string]*sync.Mutex)
}

func (gm *GameManager) load(gameID string) (model.GameData, error) {
	game, err := gm.store.GetGame(gameID)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return model.GameData{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
		}
		return model.GameData{}, err
	}
	if game.Game == nil {
		game.Game = chess.NewGame()
	}
	return game, nil
}

// update loads the game, applies fn and saves the result, all under the
// game's lock. Nothing is saved when fn fails. publish, if set, runs with
// the saved game before the lock is released.
func (gm *GameManager) update(gameID string, fn func(*model.GameData) error, publish func(model.GameData)) (model.GameData, error) {
	l, err := gm.lockGame(gameID)
	if err != nil {
		return model.GameData{}, err
	}
	defer l.Unlock()

	game, err := gm.load(gameID)
	if err != nil {
		return model.GameData{}, err
	}
	if err := fn(&game); err != nil {
		return model.GameData{}, err
	}
	if err := gm.store.UpdateGame(game); err != nil {
		return model.GameData{}, fmt.Errorf("save game %s: %w", gameID, err)
	}
	if publish != nil {
		publish(game)
	}
	return game, nil
}

// Connect determines how the caller takes part in the game. publish, if
// set, runs under the game's lock; its error is returned.
func (gm *GameManager) Connect(token, gameID string, publish func(ConnectResult) error) (ConnectResult, error) {
	username, err := gm.users.Authenticate(token)
	if err != nil {
		return ConnectResult{}, err
	}

	l, err := gm.lockGame(gameID)
	if err != nil {
		return ConnectResult{}, err
	}
	defer l.Unlock()

	game, err := gm.load(gameID)
	if err != nil {
		return ConnectResult{}, err
	}
	res := ConnectResult{Username: username, Role: game.Role(username), Game: game}
	if publish != nil {
		if err := publish(res); err != nil {
			return ConnectResult{}, err
		}
	}
	return res, nil
}

// MakeMove applies move for the caller. publish, if set, receives the result
// under the game's lock, so results for one game are published in the order
// the moves were applied.
func (gm *GameManager) MakeMove(token, gameID string, move chess.Move, publish func(MoveResult)) (MoveResult, error) {
	username, err := gm.users.Authenticate(token)
	if err != nil {
		return MoveResult{}, err
	}

	result := MoveResult{Username: username, Move: move}
	_, err = gm.update(gameID, func(g *model.GameData) error {
		color, ok := g.Role(username).Color()
		if !ok {
			return ErrObserver
		}
		if g.Game.IsOver() {
			return ErrGameOver
		}
		if g.Game.TeamTurn() != color {
			return ErrNotYourTurn
		}
		if err := g.Game.MakeMove(move); err != nil {
			return err
		}
		result.Outcome = g.Game.Conclude()
		result.InCheck = result.Outcome == nil && g.Game.IsInCheck(g.Game.TeamTurn())
		return nil
	}, func(game model.GameData) {
		result.Game = game
		if publish != nil {
			publish(result)
		}
	})
	if err != nil {
		return MoveResult{}, err
	}
	log.Debugf("game %s: %s played %s", gameID, username, move)
	if result.Outcome != nil {
		log.Infof("game %s over: %s", gameID, result.Outcome)
	}
	return result, nil
}

func (gm *GameManager) Resign(token, gameID string, publish func(ResignResult)) (ResignResult, error) {
	username, err := gm.users.Authenticate(token)
	if err != nil {
		return ResignResult{}, err
	}

	result := ResignResult{Username: username}
	_, err = gm.update(gameID, func(g *model.GameData) error {
		color, ok := g.Role(username).Color()
		if !ok {
			return ErrObserver
		}
		if g.Game.IsOver() {
			return ErrGameOver
		}
		g.Game.Resign(color)
		result.Color = color
		return nil
	}, func(game model.GameData) {
		result.Game = game
		if publish != nil {
			publish(result)
		}
	})
	if err != nil {
		return ResignResult{}, err
	}
	log.Infof("game %s: %s resigned", gameID, username)
	return result, nil
}

// Leave frees the caller's seat, if any. The game itself carries on.
func (gm *GameManager) Leave(token, gameID string, publish func(LeaveResult)) (LeaveResult, error) {
	username, err := gm.users.Authenticate(token)
	if err != nil {
		return LeaveResult{}, err
	}

	result := LeaveResult{Username: username}
	_, err = gm.update(gameID, func(g *model.GameData) error {
		result.Role = g.Role(username)
		g.Vacate(username)
		return nil
	}, func(model.GameData) {
		if publish != nil {
			publish(result)
		}
	})
	if err != nil {
		return LeaveResult{}, err
	}
	return result, nil
}
