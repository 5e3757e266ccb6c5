package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chess-server/internal/config"
	"github.com/benbeisheim/chess-server/internal/controller"
	"github.com/benbeisheim/chess-server/internal/dataaccess"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.LoadServer(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.Level())

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	// Initialize services
	userService := service.NewUserService(store)
	gameManager := service.NewGameManager(store, userService)
	gameService := service.NewGameService(store, userService, gameManager)

	app := fiber.New(fiber.Config{
		AppName:               "chess-server",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	controller.SetupRoutes(app, userService, gameService, gameManager, ws.NewHub())

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s (%s store)", cfg.Addr, cfg.Store)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Errorf("listen: %v", err)
	}
}

func openStore(cfg config.ServerConfig) (dataaccess.DataAccess, error) {
	if cfg.Store == config.StoreBadger {
		log.Infof("opening badger store in %s", cfg.DataDir)
		return dataaccess.NewBadgerDataAccess(cfg.DataDir)
	}
	return dataaccess.NewMemoryDataAccess(), nil
}
