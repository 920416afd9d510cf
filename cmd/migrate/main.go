package main

import (
	"context"
	"flag"
	"log"
	"time"

	"mcq-generator/internal/config"
	"mcq-generator/internal/database"
	"mcq-generator/internal/logger"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config.yaml)")
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadConfigFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if !cfg.DatabaseEnabled() {
		l.Fatal("Database is not configured; set db.host and db.user")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.NewMigrateOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *down {
		err = database.RollbackMigrations(ctx, db)
	} else {
		err = database.RunMigrations(ctx, db)
	}
	if err != nil {
		l.Fatal("Migration failed", zap.Bool("down", *down), zap.Error(err))
	}
	l.Info("Migrations completed", zap.Bool("down", *down))
}
