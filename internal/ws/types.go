package ws

import (
	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
)

// CommandType is what a client asks the server to do.
type CommandType string

const (
	CommandConnect  CommandType = "CONNECT"
	CommandMakeMove CommandType = "MAKE_MOVE"
	CommandLeave    CommandType = "LEAVE"
	CommandResign   CommandType = "RESIGN"
)

// Command is a client to server message. Every command carries the
// sender's token; Move is only set for MAKE_MOVE.
type Command struct {
	CommandType CommandType `json:"commandType"`
	AuthToken   string      `json:"authToken"`
	GameID      string      `json:"gameID"`
	Move        *chess.Move `json:"move,omitempty"`
}

// ServerMessageType represents the different kinds of messages the server sends.
type ServerMessageType string

const (
	MessageLoadGame     ServerMessageType = "LOAD_GAME"
	MessageNotification ServerMessageType = "NOTIFICATION"
	MessageError        ServerMessageType = "ERROR"
)

// ServerMessage is a server to client message. Which fields are set depends
// on the type.
type ServerMessage struct {
	ServerMessageType ServerMessageType `json:"serverMessageType"`
	Game              *model.GameData   `json:"game,omitempty"`
	Role              model.Role        `json:"role,omitempty"`
	Message           string            `json:"message,omitempty"`
	ErrorMessage      string            `json:"errorMessage,omitempty"`
}

func LoadGame(game model.GameData, role model.Role) ServerMessage {
	return ServerMessage{ServerMessageType: MessageLoadGame, Game: &game, Role: role}
}

func Notification(message string) ServerMessage {
	return ServerMessage{ServerMessageType: MessageNotification, Message: message}
}

func Error(message string) ServerMessage {
	return ServerMessage{ServerMessageType: MessageError, ErrorMessage: "Error: " + message}
}
