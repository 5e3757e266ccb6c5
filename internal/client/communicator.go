package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-server/internal/ws"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// GameConn is an open game socket.
type GameConn interface {
	Send(ctx context.Context, cmd ws.Command) error
	Close() error
}

// DialFunc opens a game socket whose incoming messages go to onMessage.
type DialFunc func(ctx context.Context, onMessage func(ws.ServerMessage)) (GameConn, error)

// Communicator is the client side of the /ws endpoint.
type Communicator struct {
	conn *websocket.Conn
	done chan struct{}
}

// WebSocketURL turns the server's http(s) base URL into its socket URL.
func WebSocketURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://") + "/ws"
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://") + "/ws"
	}
	return baseURL + "/ws"
}

// Dial connects to url and starts delivering server messages to onMessage
// until the socket closes.
func Dial(ctx context.Context, url string, onMessage func(ws.ServerMessage)) (*Communicator, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Communicator{conn: conn, done: make(chan struct{})}
	go c.readLoop(onMessage)
	return c, nil
}

// Dialer returns a DialFunc for the server at baseURL.
func Dialer(baseURL string) DialFunc {
	url := WebSocketURL(baseURL)
	return func(ctx context.Context, onMessage func(ws.ServerMessage)) (GameConn, error) {
		return Dial(ctx, url, onMessage)
	}
}

func (c *Communicator) readLoop(onMessage func(ws.ServerMessage)) {
	defer close(c.done)
	for {
		var msg ws.ServerMessage
		if err := wsjson.Read(context.Background(), c.conn, &msg); err != nil {
			return
		}
		onMessage(msg)
	}
}

func (c *Communicator) Send(ctx context.Context, cmd ws.Command) error {
	return wsjson.Write(ctx, c.conn, cmd)
}

// Close closes the socket and waits for the reader to stop.
func (c *Communicator) Close() error {
	err := c.conn.Close(websocket.StatusNormalClosure, "bye")
	<-c.done
	return err
}
