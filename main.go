package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"project-manager/internal/config"
	"project-manager/internal/router"
	"project-manager/internal/service"
	"project-manager/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// .env first, so viper's env overrides can see it
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	backend, err := newBackend(cfg)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	st := store.New(backend)

	users := service.NewUserService(st, cfg.Store.UsersFile)
	projects := service.NewProjectService(st, cfg.Store.ProjectsFile)

	r := router.SetupRouter(cfg, users, projects)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	slog.Info("server listening", "addr", addr, "store", cfg.Store.Driver)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func newBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Store.Driver {
	case "", "file":
		return store.NewFileBackend(cfg.Store.Dir)
	case "sqlite":
		return store.NewSQLiteBackend(cfg.Store.SQLitePath)
	case "memory":
		return store.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
