package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/ws"
)

// Server is the part of ServerFacade the REPL uses.
type Server interface {
	Register(username, password, email string) (model.AuthData, error)
	Login(username, password string) (model.AuthData, error)
	Logout(token string) error
	CreateGame(token, name string) (string, error)
	ListGames(token string) ([]model.GameData, error)
	JoinGame(token, gameID string, color chess.TeamColor) error
}

type State int

const (
	StateLoggedOut State = iota
	StateLoggedIn
	StateGameplay
)

func (s State) String() string {
	switch s {
	case StateLoggedIn:
		return "LOGGED_IN"
	case StateGameplay:
		return "GAMEPLAY"
	}
	return "LOGGED_OUT"
}

const (
	helpLoggedOut = `Available commands:
  register <USERNAME> <PASSWORD> <EMAIL>  - create an account
  login <USERNAME> <PASSWORD>             - log in
  quit                                    - exit
  help                                    - show this message`

	helpLoggedIn = `Available commands:
  create <NAME>                - create a game
  list                         - list games
  join <NUMBER> <WHITE|BLACK>  - join a game as a player
  observe <NUMBER>             - watch a game
  logout                       - log out
  quit                         - exit
  help                         - show this message`

	helpGameplay = `Available commands:
  redraw                        - redraw the board
  move <FROM> <TO> [PROMOTION]  - make a move, e.g. "move e7 e8 queen"
  highlight <SQUARE>            - show the legal moves of a piece
  fen                           - print the position as FEN
  resign                        - resign the game
  leave                         - leave the game
  help                          - show this message`
)

// Client is the terminal REPL. Lines are evaluated one at a time on the
// caller's goroutine; server messages arrive on the socket's goroutine.
type Client struct {
	server   Server
	dial     DialFunc
	renderer Renderer

	outMu sync.Mutex
	out   io.Writer

	mu   sync.Mutex
	game *chess.Game
	role model.Role

	state         State
	auth          model.AuthData
	games         []model.GameData
	conn          GameConn
	gameID        string
	confirmResign bool
}

func New(server Server, dial DialFunc, out io.Writer, renderer Renderer) *Client {
	return &Client{
		server:   server,
		dial:     dial,
		renderer: renderer,
		out:      out,
	}
}

func (c *Client) State() State {
	return c.state
}

// Run reads commands from in until quit or end of input.
func (c *Client) Run(ctx context.Context, in io.Reader) error {
	defer c.closeConn()

	c.println("Welcome to chess. Type help to get started.")
	scanner := bufio.NewScanner(in)
	c.prompt()
	for scanner.Scan() {
		if c.Eval(ctx, scanner.Text()) {
			return nil
		}
		c.prompt()
	}
	return scanner.Err()
}

// Eval runs one line and reports whether the user asked to quit.
func (c *Client) Eval(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if c.confirmResign {
		c.confirmResign = false
		c.report(c.answerResign(ctx, fields))
		return false
	}
	if len(fields) == 0 {
		return false
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	var (
		quit bool
		err  error
	)
	switch c.state {
	case StateLoggedOut:
		quit, err = c.evalLoggedOut(cmd, args)
	case StateLoggedIn:
		quit, err = c.evalLoggedIn(ctx, cmd, args)
	case StateGameplay:
		err = c.evalGameplay(ctx, cmd, args)
	}
	c.report(err)
	return quit
}

func (c *Client) evalLoggedOut(cmd string, args []string) (bool, error) {
	switch cmd {
	case "help":
		c.println(helpLoggedOut)
	case "quit":
		return true, nil
	case "register":
		if len(args) != 3 {
			return false, fmt.Errorf("usage: register <USERNAME> <PASSWORD> <EMAIL>")
		}
		auth, err := c.server.Register(args[0], args[1], args[2])
		if err != nil {
			return false, err
		}
		c.loggedIn(auth)
	case "login":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: login <USERNAME> <PASSWORD>")
		}
		auth, err := c.server.Login(args[0], args[1])
		if err != nil {
			return false, err
		}
		c.loggedIn(auth)
	default:
		return false, unknownCommand(cmd)
	}
	return false, nil
}

func (c *Client) loggedIn(auth model.AuthData) {
	c.auth = auth
	c.state = StateLoggedIn
	c.println("Logged in as " + auth.Username + ".")
}

func (c *Client) evalLoggedIn(ctx context.Context, cmd string, args []string) (bool, error) {
	switch cmd {
	case "help":
		c.println(helpLoggedIn)
	case "quit":
		return true, nil
	case "logout":
		if err := c.server.Logout(c.auth.AuthToken); err != nil {
			return false, err
		}
		c.auth = model.AuthData{}
		c.games = nil
		c.state = StateLoggedOut
		c.println("Logged out.")
	case "create":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: create <NAME>")
		}
		name := strings.Join(args, " ")
		if _, err := c.server.CreateGame(c.auth.AuthToken, name); err != nil {
			return false, err
		}
		c.println("Created game " + name + ".")
	case "list":
		return false, c.listGames()
	case "join":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: join <NUMBER> <WHITE|BLACK>")
		}
		game, err := c.pickGame(args[0])
		if err != nil {
			return false, err
		}
		color, err := chess.ParseTeamColor(args[1])
		if err != nil {
			return false, err
		}
		if err := c.server.JoinGame(c.auth.AuthToken, game.GameID, color); err != nil {
			return false, err
		}
		return false, c.enterGame(ctx, game)
	case "observe":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: observe <NUMBER>")
		}
		game, err := c.pickGame(args[0])
		if err != nil {
			return false, err
		}
		return false, c.enterGame(ctx, game)
	default:
		return false, unknownCommand(cmd)
	}
	return false, nil
}

func (c *Client) listGames() error {
	games, err := c.server.ListGames(c.auth.AuthToken)
	if err != nil {
		return err
	}
	c.games = games
	if len(games) == 0 {
		c.println("No games yet. Use create <NAME> to start one.")
		return nil
	}
	for i, g := range games {
		c.println(fmt.Sprintf("%d. %s  white: %s  black: %s", i+1, g.GameName, seat(g.WhiteUsername), seat(g.BlackUsername)))
	}
	return nil
}

func seat(username string) string {
	if username == "" {
		return "-"
	}
	return username
}

// pickGame resolves a number from the last listing, listing first if needed.
func (c *Client) pickGame(arg string) (model.GameData, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.GameData{}, fmt.Errorf("game number must be an integer")
	}
	if len(c.games) == 0 {
		games, err := c.server.ListGames(c.auth.AuthToken)
		if err != nil {
			return model.GameData{}, err
		}
		c.games = games
	}
	if n < 1 || n > len(c.games) {
		return model.GameData{}, fmt.Errorf("no game numbered %d, run list to see the games", n)
	}
	return c.games[n-1], nil
}

func (c *Client) enterGame(ctx context.Context, game model.GameData) error {
	conn, err := c.dial(ctx, c.handleMessage)
	if err != nil {
		return err
	}
	cmd := ws.Command{CommandType: ws.CommandConnect, AuthToken: c.auth.AuthToken, GameID: game.GameID}
	if err := conn.Send(ctx, cmd); err != nil {
		conn.Close()
		return err
	}
	c.conn = conn
	c.gameID = game.GameID
	c.state = StateGameplay
	c.println("Entered game " + game.GameName + ".")
	return nil
}

func (c *Client) evalGameplay(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		c.println(helpGameplay)
	case "redraw":
		return c.redraw(nil)
	case "fen":
		game := c.currentGame()
		if game == nil {
			return errNotLoaded
		}
		c.println(game.Board().FEN())
	case "highlight":
		if len(args) != 1 {
			return fmt.Errorf("usage: highlight <SQUARE>")
		}
		pos, err := chess.ParsePosition(args[0])
		if err != nil {
			return err
		}
		game := c.currentGame()
		if game == nil {
			return errNotLoaded
		}
		return c.redraw(NewHighlight(pos, game.ValidMoves(pos)))
	case "move":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: move <FROM> <TO> [PROMOTION]")
		}
		move, err := parseMoveArgs(args)
		if err != nil {
			return err
		}
		return c.send(ctx, ws.CommandMakeMove, &move)
	case "resign":
		c.confirmResign = true
		c.println("Are you sure you want to resign? (yes/no)")
	case "leave":
		if err := c.send(ctx, ws.CommandLeave, nil); err != nil {
			return err
		}
		c.closeConn()
		c.state = StateLoggedIn
		c.println("Left the game.")
	default:
		return unknownCommand(cmd)
	}
	return nil
}

func (c *Client) answerResign(ctx context.Context, fields []string) error {
	if len(fields) == 0 || !strings.HasPrefix(strings.ToLower(fields[0]), "y") {
		c.println("Resignation cancelled.")
		return nil
	}
	return c.send(ctx, ws.CommandResign, nil)
}

func parseMoveArgs(args []string) (chess.Move, error) {
	from, err := chess.ParsePosition(args[0])
	if err != nil {
		return chess.Move{}, err
	}
	to, err := chess.ParsePosition(args[1])
	if err != nil {
		return chess.Move{}, err
	}
	var promotion chess.PieceType
	if len(args) == 3 {
		if promotion, err = chess.ParsePieceType(args[2]); err != nil {
			return chess.Move{}, err
		}
	}
	return chess.NewMove(from, to, promotion), nil
}

func (c *Client) send(ctx context.Context, t ws.CommandType, move *chess.Move) error {
	if c.conn == nil {
		return fmt.Errorf("not connected to a game")
	}
	return c.conn.Send(ctx, ws.Command{
		CommandType: t,
		AuthToken:   c.auth.AuthToken,
		GameID:      c.gameID,
		Move:        move,
	})
}

func (c *Client) closeConn() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.gameID = ""
	c.mu.Lock()
	c.game, c.role = nil, ""
	c.mu.Unlock()
}

// handleMessage runs on the socket's goroutine.
func (c *Client) handleMessage(msg ws.ServerMessage) {
	switch msg.ServerMessageType {
	case ws.MessageLoadGame:
		if msg.Game == nil || msg.Game.Game == nil {
			return
		}
		c.mu.Lock()
		c.game = msg.Game.Game
		if msg.Role != "" {
			c.role = msg.Role
		}
		c.mu.Unlock()
		c.println("")
		c.redraw(nil)
	case ws.MessageNotification:
		c.println(msg.Message)
	case ws.MessageError:
		c.println(msg.ErrorMessage)
	}
}

var errNotLoaded = fmt.Errorf("the game has not loaded yet")

func (c *Client) currentGame() *chess.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game
}

func (c *Client) perspective() chess.TeamColor {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.role == model.RoleBlack {
		return chess.Black
	}
	return chess.White
}

func (c *Client) redraw(hl *Highlight) error {
	game := c.currentGame()
	if game == nil {
		return errNotLoaded
	}
	board := c.renderer.Render(game.Board(), c.perspective(), hl)
	status := fmt.Sprintf("%s to move", strings.ToLower(string(game.TeamTurn())))
	if o := game.Outcome(); o != nil {
		status = "game over: " + o.String()
	}
	c.print(board + status + "\n")
	return nil
}

func unknownCommand(cmd string) error {
	return fmt.Errorf("unknown command %q, type help for a list of commands", cmd)
}

func (c *Client) report(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "Error:") {
		msg = "Error: " + msg
	}
	c.println(msg)
}

func (c *Client) prompt() {
	c.print("[" + c.state.String() + "] >>> ")
}

func (c *Client) print(s string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	io.WriteString(c.out, s)
}

func (c *Client) println(s string) {
	c.print(s + "\n")
}
