package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/techhive/users-api/internal/api"
	"github.com/techhive/users-api/internal/core/service"
	"github.com/techhive/users-api/internal/infrastructure/config"
	"github.com/techhive/users-api/internal/infrastructure/db/memory"
	redisinfra "github.com/techhive/users-api/internal/infrastructure/db/redis"
	"github.com/techhive/users-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		File:   cfg.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users := memory.NewUserRepository()
	if err := users.Seed(memory.SeedUsers()); err != nil {
		log.Fatal().Err(err).Msg("seed users")
	}

	registry, err := service.NewCredentialRegistry(memory.SeedCredentials())
	if err != nil {
		log.Fatal().Err(err).Msg("seed credentials")
	}

	deps := api.Deps{
		Users:       users,
		Revoker:     memory.NewRevocationStore(),
		Credentials: registry,
		Logger:      log,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		deps.Redis = rdb
		deps.Revoker = redisinfra.NewRevocationStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation backed by redis")
	}

	e := api.NewRouter(cfg, deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("users api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
