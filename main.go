package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theleywin/devconnect-backend/src/config"
	"github.com/theleywin/devconnect-backend/src/lib"
	"github.com/theleywin/devconnect-backend/src/server"
	"github.com/theleywin/devconnect-backend/src/store"
	"github.com/theleywin/devconnect-backend/src/store/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lib.Logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	lib.SetupLogger(cfg.IsProduction())

	st, err := openStore(cfg)
	if err != nil {
		lib.Logger.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, st)

	go func() {
		lib.Logger.Info("server is running", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.Listen(); err != nil {
			lib.Logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	lib.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lib.Logger.Error("shutdown failed", "error", err)
	}
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.StoreDriver == "memory" {
		return memory.New().Store(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	defer cancel()

	client, err := lib.ConnectDB(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return nil, err
	}
	return store.NewMongo(ctx, client, cfg.MongoDB)
}
