// Package redis opens the optional redis connection.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"lead_backend/internal/config"
)

// ErrDisabled is returned when no REDIS_HOST is configured.
var ErrDisabled = errors.New("redis is not configured")

// NewRedisClient は Redis に接続し、疎通確認を行います。
// エラーを返した場合、呼び出し元はメモリまたはDBの実装にフォールバックします。
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認（設定済みなのに到達できない場合は早めに失敗させる）
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
