package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vraelian/OrbitalTrading/internal/api"
	"github.com/vraelian/OrbitalTrading/internal/catalog"
	"github.com/vraelian/OrbitalTrading/internal/config"
	"github.com/vraelian/OrbitalTrading/internal/db"
	"github.com/vraelian/OrbitalTrading/internal/game"
	"github.com/vraelian/OrbitalTrading/internal/save"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			logger.Error("load catalog failed", "path", cfg.CatalogPath, "err", err)
			os.Exit(1)
		}
	}

	var store *save.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = save.NewStore(pool, logger)
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("ensure schema failed", "err", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("no DATABASE_URL set, saves disabled")
	}

	session := game.New(cat, logger, cfg.Seed)
	server := api.New(cfg, logger, cat, session, store)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("trader api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
