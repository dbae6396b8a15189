package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/pflag"

	"github.com/akarpov91/todo-service/internal/config"
)

func main() {
	var (
		configPath string
		sqlPath    string
	)
	pflag.StringVar(&configPath, "config", "", "optional YAML config file")
	pflag.StringVar(&sqlPath, "file", "migrations/migrations.sql", "schema file to apply")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	if !cfg.UsePostgres() {
		logger.Error("no postgres configuration; the sqlite store migrates itself on open")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURI)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("pinging database", "error", err)
		os.Exit(1)
	}

	schema, err := os.ReadFile(sqlPath)
	if err != nil {
		logger.Error("reading schema file", "path", sqlPath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("applying migrations", "path", sqlPath)
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		logger.Error("applying migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")
}
