package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/minimax-chess/internal/config"
	"github.com/benbeisheim/minimax-chess/internal/controller"
	"github.com/benbeisheim/minimax-chess/internal/service"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "search depth in plies")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for move ordering, 0 for time based")
	flag.StringVar(&cfg.HumanColor, "human", cfg.HumanColor, "default colour of the human player")
	flag.BoolVar(&cfg.StrictRoot, "strict-root", cfg.StrictRoot, "always filter the engine's root moves for self-check")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	app := fiber.New(fiber.Config{AppName: "minimax-chess"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(time.Duration(cfg.ClockSeconds) * time.Second)
	ai := service.NewAIPlayer(cfg.Depth, cfg.StrictRoot, cfg.Seed)
	gameService := service.NewGameService(gameManager, ai, cfg.Human())

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)
	controller.RegisterRoutes(app, gameController, wsController, websocket.Config{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		Origins:         cfg.AllowOrigins,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s (depth %d, human %s)", cfg.Addr, cfg.Depth, cfg.HumanColor)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
	gameService.Wait()
}
