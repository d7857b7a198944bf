package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"identity/internal/config"
	"identity/internal/infra"
)

func main() {
	seed := flag.Bool("seed", true, "seed roles and permissions after migrating")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	db, err := infra.InitPostgresql(cfg.PostgresURL, cfg.IsDevelopment())
	if err != nil {
		logger.Fatal("connect", zap.Error(err))
	}
	defer infra.ClosePostgresql(db)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := infra.Migrate(ctx, db); err != nil {
		logger.Error("migrate", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("schema migrated")

	if *seed {
		if err := infra.Seed(ctx, db); err != nil {
			logger.Error("seed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("roles and permissions seeded")
	}
}
