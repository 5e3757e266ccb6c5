package model

import (
	"encoding/json"

	"github.com/benbeisheim/chess-server/internal/chess"
)

// GameData is the persisted record of one game: who sits where plus the
// serialized engine state.
type GameData struct {
	GameID        string      `json:"gameID"`
	WhiteUsername string      `json:"whiteUsername,omitempty"`
	BlackUsername string      `json:"blackUsername,omitempty"`
	GameName      string      `json:"gameName"`
	Game          *chess.Game `json:"game,omitempty"`
}

func NewGameData(id, name string) GameData {
	return GameData{
		GameID:   id,
		GameName: name,
		Game:     chess.NewGame(),
	}
}

// Role returns the seat username holds, or RoleObserver.
func (g GameData) Role(username string) Role {
	switch {
	case username != "" && username == g.WhiteUsername:
		return RoleWhite
	case username != "" && username == g.BlackUsername:
		return RoleBlack
	}
	return RoleObserver
}

// Player returns the username seated as color ("" when the seat is open).
func (g GameData) Player(color chess.TeamColor) string {
	if color == chess.White {
		return g.WhiteUsername
	}
	return g.BlackUsername
}

// Seat puts username in color's seat. It reports false if the seat is taken.
func (g *GameData) Seat(color chess.TeamColor, username string) bool {
	seat := &g.BlackUsername
	if color == chess.White {
		seat = &g.WhiteUsername
	}
	if *seat != "" {
		return false
	}
	*seat = username
	return true
}

// Vacate frees any seat username holds.
func (g *GameData) Vacate(username string) {
	if g.WhiteUsername == username {
		g.WhiteUsername = ""
	}
	if g.BlackUsername == username {
		g.BlackUsername = ""
	}
}

// Summary drops the engine state, for listings.
func (g GameData) Summary() GameData {
	g.Game = nil
	return g
}

// Clone deep-copies the record by round-tripping it through JSON, so the
// copy shares no board with the original.
func (g GameData) Clone() (GameData, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return GameData{}, err
	}
	var out GameData
	if err := json.Unmarshal(data, &out); err != nil {
		return GameData{}, err
	}
	return out, nil
}
