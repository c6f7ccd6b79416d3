package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/urfave/cli/v2"

	"github.com/rishabhcod/event-registration-system2/config"
	"github.com/rishabhcod/event-registration-system2/database"
	"github.com/rishabhcod/event-registration-system2/handlers"
	"github.com/rishabhcod/event-registration-system2/middleware"
	"github.com/rishabhcod/event-registration-system2/router"
	"github.com/rishabhcod/event-registration-system2/service"
)

var Version = "dev"

var flags []cli.Flag = []cli.Flag{
	&cli.StringFlag{
		Name:  "env-file",
		Value: config.DEFAULT_ENV_FILE,
		Usage: "dotenv file to load before reading the environment",
	},
	&cli.BoolFlag{
		Name:  "log-json",
		Value: false,
		Usage: "log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Value: false,
		Usage: "log debug messages",
	},
	&cli.BoolFlag{
		Name:  "seed",
		Usage: "seed sample events into an empty store (overrides SEED_SAMPLE_EVENTS)",
	},
}

func main() {
	app := &cli.App{
		Name:   "event-registration",
		Usage:  "Serve the event registration API",
		Flags:  flags,
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(cCtx *cli.Context) error {
	logger := config.SetupLogger(&config.LoggingOpts{
		Debug:   cCtx.Bool("log-debug"),
		JSON:    cCtx.Bool("log-json"),
		Service: "event-registration",
		Version: Version,
	})

	if err := config.LoadEnvFile(cCtx.String("env-file")); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "err", err)
		return err
	}
	if cCtx.IsSet("seed") {
		cfg.SeedSampleEvents = cCtx.Bool("seed")
	}

	connectCtx, cancel := context.WithTimeout(cCtx.Context, 15*time.Second)
	defer cancel()
	client, collection, err := database.DBInit(connectCtx, cfg)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "err", err)
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("Failed to disconnect from MongoDB", "err", err)
		}
	}()
	logger.Info("MongoDB connected", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)

	store := database.NewMongoStore(collection)
	if err := store.EnsureIndexes(connectCtx); err != nil {
		return err
	}
	if cfg.SeedSampleEvents {
		if _, err := database.SeedIfEmpty(connectCtx, store, logger); err != nil {
			logger.Error("Seed error", "err", err)
		}
	}

	auth, err := service.NewAuthService(service.AuthConfig{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       cfg.JWTSecret,
		TokenTTL:     cfg.AdminTokenTTL,
	})
	if err != nil {
		return fmt.Errorf("auth service: %w", err)
	}

	h := handlers.New(
		service.NewRegistrationService(store, logger),
		service.NewAdminService(store, logger),
		auth,
		logger)

	app := newApp(cfg, h, auth)
	return serve(app, cfg, logger)
}

func newApp(cfg config.Config, h *handlers.Handlers, auth *service.AuthService) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(cors.New())

	router.SetupRoutes(app, h, middleware.Authorize(auth))

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
	return app
}

func serve(app *fiber.App, cfg config.Config, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", cfg.ListenAddr())
		errCh <- app.Listen(cfg.ListenAddr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down server", "signal", sig.String())
	}

	if err := app.Shutdown(); err != nil {
		logger.Error("Graceful shutdown failed", "err", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
