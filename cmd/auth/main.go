package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/phast_auth/internal/config"
	"github.com/Skotchmaster/phast_auth/internal/db"
	"github.com/Skotchmaster/phast_auth/internal/events"
	"github.com/Skotchmaster/phast_auth/internal/hash"
	"github.com/Skotchmaster/phast_auth/internal/httpserver"
	"github.com/Skotchmaster/phast_auth/internal/logging"
	"github.com/Skotchmaster/phast_auth/internal/metrics"
	"github.com/Skotchmaster/phast_auth/internal/repo"
	"github.com/Skotchmaster/phast_auth/internal/service"
	"github.com/Skotchmaster/phast_auth/internal/token"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(initCtx, gdb, cfg.DBDriver)
	}
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	params := hash.DefaultParams()
	params.MemoryKB = cfg.Argon2MemoryKB
	params.Time = cfg.Argon2Time
	params.Parallelism = cfg.Argon2Parallelism
	hasher, err := hash.NewArgon2(params)
	if err != nil {
		log.Fatalf("argon2: %v", err)
	}

	codec, err := token.NewCodec(cfg.JWTSecret, token.WithRefreshGrace(cfg.TokenRefreshGrace))
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	pub := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	userRepo := repo.NewGormRepo(gdb)

	e := httpserver.New(&httpserver.Deps{
		Users:   &httpserver.UserHTTP{Svc: service.NewAuthService(userRepo, codec, hasher, pub)},
		Logger:  logger,
		Metrics: metrics.New("phast_auth"),
		Ready:   userRepo.Ping,
	})

	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close", "error", err)
	}

	logger.Info("shutdown complete")
}
