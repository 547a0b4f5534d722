// Package main is the entry point for the storeops console API.
// The service is a stateless front for the inventory backend: it keeps only
// per-session view state in memory and a small cache of the store directory.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storeops/internal/config"
	"storeops/internal/domain/asset"
	"storeops/internal/domain/auth"
	"storeops/internal/domain/indent"
	"storeops/internal/domain/stockin"
	"storeops/internal/domain/store"
	"storeops/internal/infrastructure/backend"
	"storeops/internal/infrastructure/cache"
	v1 "storeops/internal/infrastructure/http/v1"
	"storeops/internal/infrastructure/session"
	"storeops/pkg/logger"
)

const version = "0.1.0"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Printf("failed to read .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Infow("starting storeops console", "version", version, "backend", cfg.BackendBaseURL)

	// --- Inventory backend ---
	client := backend.New(backend.Config{
		BaseURL:   cfg.BackendBaseURL,
		Timeout:   cfg.BackendTimeout,
		UserAgent: "storeops/" + version,
	})

	// --- Cache ---
	var kv cache.Client
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalw("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer rdb.Close()
		kv = rdb
		log.Infow("redis cache connected", "addr", cfg.RedisAddr)
	} else {
		mem := cache.NewMemoryClient()
		mem.StartSweeper(time.Minute)
		defer mem.Close()
		kv = mem
		log.Info("REDIS_ADDR not set, using in-process cache")
	}

	// --- Domain services ---
	stores := store.NewDirectory(client, kv, cfg.StoreCacheTTL)

	tokenCfg := auth.DefaultTokenConfig(cfg.SessionSecret)
	tokenCfg.TokenTTL = cfg.SessionTokenTTL
	authService := auth.NewService(auth.NewTokenService(tokenCfg), stores)

	indents := indent.NewService(client)
	limits := cfg.Limits()
	stockIn := stockin.NewService(client, indents, limits)
	assets := asset.NewService(client, limits)

	// --- Session workspaces ---
	registry := session.NewRegistry(
		session.Config{
			IdleTimeout:   cfg.SessionIdleTimeout,
			MaxWorkspaces: cfg.SessionMaxWorkspaces,
		},
		session.NewFactory(client, client, stores, time.Now),
		log,
	)
	defer registry.Close()

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		Version:        version,
		Backend:        client,
		AuthService:    authService,
		Stores:         stores,
		Indents:        indents,
		StockIn:        stockIn,
		Assets:         assets,
		Limits:         limits,
		Workspaces:     registry,
		Cache:          kv,
		IdempotencyTTL: cfg.IdempotencyTTL,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
