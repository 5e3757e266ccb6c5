package model

import "github.com/benbeisheim/chess-server/internal/chess"

// Role is how a connected user takes part in a game.
type Role string

const (
	RoleWhite    Role = "WHITE"
	RoleBlack    Role = "BLACK"
	RoleObserver Role = "OBSERVER"
)

// Color returns the side a player role plays, or false for observers.
func (r Role) Color() (chess.TeamColor, bool) {
	switch r {
	case RoleWhite:
		return chess.White, true
	case RoleBlack:
		return chess.Black, true
	}
	return "", false
}

type UserData struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Email        string `json:"email"`
}

type AuthData struct {
	AuthToken string `json:"authToken"`
	Username  string `json:"username"`
}
