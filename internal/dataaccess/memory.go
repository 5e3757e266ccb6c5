package dataaccess

import (
	"fmt"
	"sort"
	"sync"

	"github.com/benbeisheim/chess-server/internal/model"
)

// MemoryDataAccess keeps everything in maps. Games are stored as clones.
type MemoryDataAccess struct {
	mu    sync.RWMutex
	users map[string]model.UserData
	auths map[string]model.AuthData
	games map[string]model.GameData
}

func NewMemoryDataAccess() *MemoryDataAccess {
	m := &MemoryDataAccess{}
	m.reset()
	return m
}

func (m *MemoryDataAccess) reset() {
	m.users = make(map[string]model.UserData)
	m.auths = make(map[string]model.AuthData)
	m.games = make(map[string]model.GameData)
}

func (m *MemoryDataAccess) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

func (m *MemoryDataAccess) CreateUser(user model.UserData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Username]; exists {
		return fmt.Errorf("user %q: %w", user.Username, ErrAlreadyExists)
	}
	m.users[user.Username] = user
	return nil
}

func (m *MemoryDataAccess) GetUser(username string) (model.UserData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return model.UserData{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return user, nil
}

func (m *MemoryDataAccess) CreateAuth(auth model.AuthData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auths[auth.AuthToken] = auth
	return nil
}

func (m *MemoryDataAccess) GetAuth(token string) (model.AuthData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	auth, ok := m.auths[token]
	if !ok {
		return model.AuthData{}, fmt.Errorf("auth token: %w", ErrNotFound)
	}
	return auth, nil
}

func (m *MemoryDataAccess) DeleteAuth(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.auths[token]; !ok {
		return fmt.Errorf("auth token: %w", ErrNotFound)
	}
	delete(m.auths, token)
	return nil
}

func (m *MemoryDataAccess) CreateGame(game model.GameData) error {
	stored, err := game.Clone()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.games[game.GameID]; exists {
		return fmt.Errorf("game %s: %w", game.GameID, ErrAlreadyExists)
	}
	m.games[game.GameID] = stored
	return nil
}

func (m *MemoryDataAccess) GetGame(gameID string) (model.GameData, error) {
	m.mu.RLock()
	game, ok := m.games[gameID]
	m.mu.RUnlock()
	if !ok {
		return model.GameData{}, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	return game.Clone()
}

// ListGames returns every game ordered by name, then ID.
func (m *MemoryDataAccess) ListGames() ([]model.GameData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	games := make([]model.GameData, 0, len(m.games))
	for _, g := range m.games {
		c, err := g.Clone()
		if err != nil {
			return nil, err
		}
		games = append(games, c)
	}
	sortGames(games)
	return games, nil
}

func (m *MemoryDataAccess) UpdateGame(game model.GameData) error {
	stored, err := game.Clone()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[game.GameID]; !ok {
		return fmt.Errorf("game %s: %w", game.GameID, ErrNotFound)
	}
	m.games[game.GameID] = stored
	return nil
}

func (m *MemoryDataAccess) Close() error {
	return nil
}

func sortGames(games []model.GameData) {
	sort.Slice(games, func(i, j int) bool {
		if games[i].GameName != games[j].GameName {
			return games[i].GameName < games[j].GameName
		}
		return games[i].GameID < games[j].GameID
	})
}
