package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"

	"lead_backend/internal/app/di"
	"lead_backend/internal/app/seed"
	"lead_backend/internal/config"
	authadapters "lead_backend/internal/feature/auth/adapters"
	authusecase "lead_backend/internal/feature/auth/usecase"
	leadadapters "lead_backend/internal/feature/lead/adapters"
	platformdb "lead_backend/internal/platform/db"
	jwtmw "lead_backend/internal/platform/jwt"
	"lead_backend/internal/platform/logging"
)

func main() {
	count := flag.Int("leads", seed.DefaultLeadCount, "number of random leads to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Init("lead-seed", cfg.LogLevel, cfg.AppEnv)

	db, err := platformdb.OpenDB(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	users := authadapters.NewUserRepository(db)
	auth := authusecase.NewAuthUsecase(users, jwtmw.NewManager(cfg.JWTSecret, cfg.JWTExpire), di.NewRevocationRepository(nil, db))

	s := &seed.Seeder{
		Users:     users,
		Leads:     leadadapters.NewLeadRepository(db),
		Registrar: auth,
		Rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	if _, err := s.Run(context.Background(), *count); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("database seeded", "email", seed.TestUserEmail, "password", seed.TestUserPassword)
}
