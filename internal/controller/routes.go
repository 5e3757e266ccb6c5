package controller

import (
	"github.com/benbeisheim/chess-server/internal/middleware"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes wires every REST and WebSocket endpoint onto app.
func SetupRoutes(app *fiber.App, users *service.UserService, games *service.GameService, manager *service.GameManager, hub *ws.Hub) {
	userController := NewUserController(users, games)
	gameController := NewGameController(games)
	wsController := NewWebSocketController(manager, hub)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Delete("/db", userController.ClearDB)
	app.Post("/user", userController.Register)
	app.Post("/session", userController.Login)
	app.Delete("/session", middleware.RequireAuth(users), userController.Logout)

	gameRoutes := app.Group("/game", middleware.RequireAuth(users))
	gameRoutes.Post("/", gameController.CreateGame)
	gameRoutes.Get("/", gameController.ListGames)
	gameRoutes.Put("/", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGame)

	app.Get("/ws", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))
}
