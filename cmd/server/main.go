package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"lead_backend/internal/app/di"
	"lead_backend/internal/app/router"
	"lead_backend/internal/config"
	authadapters "lead_backend/internal/feature/auth/adapters"
	authhandler "lead_backend/internal/feature/auth/transport/handler"
	authusecase "lead_backend/internal/feature/auth/usecase"
	leadhandler "lead_backend/internal/feature/lead/transport/handler"
	leadusecase "lead_backend/internal/feature/lead/usecase"
	platformdb "lead_backend/internal/platform/db"
	jwtmw "lead_backend/internal/platform/jwt"
	"lead_backend/internal/platform/logging"
	"lead_backend/internal/platform/ratelimit"
	platformredis "lead_backend/internal/platform/redis"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("lead-api", cfg.LogLevel, cfg.AppEnv)

	// Error detail in 500 bodies is tied to gin's debug mode.
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	db, err := platformdb.OpenDB(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(cfg.Redis); err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	revocations := di.NewRevocationRepository(rdb, db)
	// Redisが使える場合はキャッシュでラップ
	leadRepo := di.NewLeadRepository(rdb, db, cfg.LeadCacheTTL)

	// Usecase
	tokens := jwtmw.NewManager(cfg.JWTSecret, cfg.JWTExpire)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, revocations)
	leadUC := leadusecase.NewLeadUsecase(leadRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, cfg.IsProduction())
	leadH := leadhandler.NewLeadHandler(leadUC)

	store, err := ratelimit.NewStore(rdb)
	if err != nil {
		slog.Error("failed to create rate limit store", "error", err)
		os.Exit(1)
	}

	// ルータ生成
	engine := router.NewRouter(router.Options{
		FrontendURL:     cfg.FrontendURL,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
		RateLimitStore:  store,
	}, authUC, authH, leadH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go purgeRevocations(ctx, authUC)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

type revocationPurger interface {
	PurgeRevocations(ctx context.Context) (int64, error)
}

// purgeRevocations removes expired revocation entries until ctx is done.
func purgeRevocations(ctx context.Context, p revocationPurger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeRevocations(ctx)
			if err != nil {
				slog.Error("revocation purge failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired revocations purged", "count", n)
			}
		}
	}
}
