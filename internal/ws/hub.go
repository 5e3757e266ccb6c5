package ws

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// Sender is the write side of a connection.
type Sender interface {
	WriteJSON(v interface{}) error
}

// ErrClientClosed is returned by Send once the client's socket is gone.
var ErrClientClosed = errors.New("client closed")

// Client is one connected socket. Writes are serialized because a socket
// may be written from several games' broadcasts at once.
type Client struct {
	conn    Sender
	writeMu sync.Mutex
	closed  bool

	mu       sync.RWMutex
	username string
	gameID   string
}

func NewClient(conn Sender) *Client {
	return &Client{conn: conn}
}

func (c *Client) Send(msg ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	return c.conn.WriteJSON(msg)
}

// Close stops all further writes to the underlying conn. It waits for a
// write in progress to finish.
func (c *Client) Close() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.closed = true
}

// Attach records who is on this socket and which game they follow.
func (c *Client) Attach(username, gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = username
	c.gameID = gameID
}

func (c *Client) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

// GameID is the game the client follows, or "" before CONNECT.
func (c *Client) GameID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameID
}

// Hub tracks which clients are attached to which game.
type Hub struct {
	mu    sync.RWMutex
	games map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{games: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Add(gameID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[gameID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.games[gameID] = clients
	}
	clients[c] = struct{}{}
}

func (h *Hub) Remove(gameID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[gameID]
	if !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.games, gameID)
	}
}

// Clients returns the clients attached to gameID.
func (h *Hub) Clients(gameID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Client, 0, len(h.games[gameID]))
	for c := range h.games[gameID] {
		out = append(out, c)
	}
	return out
}

// Broadcast sends msg to every client of gameID except the excluded one
// (which may be nil).
func (h *Hub) Broadcast(gameID string, msg ServerMessage, except *Client) {
	h.BroadcastEach(gameID, except, func(*Client) ServerMessage { return msg })
}

// BroadcastEach sends each client of gameID, except the excluded one, the
// message build returns for it. Clients whose write fails are dropped.
func (h *Hub) BroadcastEach(gameID string, except *Client, build func(*Client) ServerMessage) {
	for _, c := range h.Clients(gameID) {
		if c == except {
			continue
		}
		if err := c.Send(build(c)); err != nil {
			log.Warnf("dropping %s from game %s: %v", c.Username(), gameID, err)
			h.Remove(gameID, c)
		}
	}
}

// Reset forgets every attachment.
func (h *Hub) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.games = make(map[string]map[*Client]struct{})
}
