package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"

	"github.com/akarpov91/todo-service/internal/auth"
	"github.com/akarpov91/todo-service/internal/config"
	"github.com/akarpov91/todo-service/internal/router"
	"github.com/akarpov91/todo-service/internal/store"
	"github.com/akarpov91/todo-service/internal/todo"
	"github.com/akarpov91/todo-service/internal/user"
)

func main() {
	var (
		configPath string
		addr       string
	)
	pflag.StringVar(&configPath, "config", "", "optional YAML config file")
	pflag.StringVar(&addr, "addr", "", "listen address (overrides PORT)")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var (
		users store.UserStore
		items store.ItemStore
	)
	if cfg.UsePostgres() {
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURI)
		if err != nil {
			logger.Error("connecting to postgres", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		users, items = pg, pg
		logger.Info("connected to postgres")
	} else {
		sq, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			logger.Error("opening sqlite store", "error", err)
			os.Exit(1)
		}
		defer sq.Close()
		users, items = sq, sq
		logger.Info("using sqlite store", "path", cfg.SQLitePath)
	}

	authn := auth.NewAuthenticator(users)
	itemService := todo.NewService(items, authn)
	userService := user.NewService(users, authn)

	app := fiber.New(fiber.Config{
		AppName:      cfg.ProjectName,
		ErrorHandler: router.NewErrorHandler(logger),
	})
	app.Use(router.CorsMiddleware(cfg.CORSOrigins))
	app.Use(router.RequestLogger(logger))

	r := &router.Router{
		Items: todo.NewHandler(itemService),
		Users: user.NewHandler(userService),
	}
	r.RegisterRoutes(app)

	if addr == "" {
		addr = cfg.Addr()
	}
	logger.Info("listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
