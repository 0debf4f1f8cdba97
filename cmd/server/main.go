package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayush/postboard/backend/internal/auth"
	"github.com/ayush/postboard/backend/internal/config"
	"github.com/ayush/postboard/backend/internal/logging"
	"github.com/ayush/postboard/backend/internal/server"
	"github.com/ayush/postboard/backend/internal/store"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, "invalid configuration", "err", err)
		os.Exit(1)
	}

	// ── Credential store ─────────────────────────────────────
	openCtx, cancelOpen := context.WithTimeout(ctx, 15*time.Second)
	st, err := store.Open(openCtx, cfg.DatabaseURL, cfg.MongoDB)
	cancelOpen()
	if err != nil {
		log.Error(ctx, "store connect", "err", err)
		os.Exit(1)
	}
	defer st.Close(context.Background())

	// ── Token revocation ─────────────────────────────────────
	var revoker auth.Revoker
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Error(ctx, "redis connect", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		revoker = auth.NewRedisRevoker(rdb)
	} else {
		log.Warn(ctx, "REDIS_ADDR not set, token revocation is process-local")
		revoker = auth.NewMemoryRevoker()
	}

	// ── Tokens ───────────────────────────────────────────────
	var codec auth.Codec
	switch cfg.TokenFormat {
	case config.TokenFormatLegacy:
		log.Warn(ctx, "legacy tokens are unsigned and never expire")
		codec = auth.LegacyCodec{}
	default:
		codec, err = auth.NewSignedCodec([]byte(cfg.TokenSecret), cfg.TokenTTL)
		if err != nil {
			log.Error(ctx, "token codec", "err", err)
			os.Exit(1)
		}
	}
	tokens := auth.NewTokens(codec, st, revoker, cfg.TokenTTL, log)

	// ── Router ───────────────────────────────────────────────
	handler := server.NewRouter(server.Deps{
		Store:       st,
		Hasher:      auth.NewBcryptHasher(cfg.BcryptCost),
		Tokens:      tokens,
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   true,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info(ctx, "server listening", "port", cfg.Port, "token_format", cfg.TokenFormat)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error(ctx, "shutdown", "err", err)
	}
}
