// Package dataaccess stores users, auth tokens and games.
package dataaccess

import (
	"errors"

	"github.com/benbeisheim/chess-server/internal/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// DataAccess is implemented by every store. Games go in and come out as
// independent copies; callers never share engine state through a store.
type DataAccess interface {
	Clear() error

	CreateUser(user model.UserData) error
	GetUser(username string) (model.UserData, error)

	CreateAuth(auth model.AuthData) error
	GetAuth(token string) (model.AuthData, error)
	DeleteAuth(token string) error

	CreateGame(game model.GameData) error
	GetGame(gameID string) (model.GameData, error)
	ListGames() ([]model.GameData, error)
	UpdateGame(game model.GameData) error

	Close() error
}
