package main

import (
	"context"
	"flag"

	"resnet-portal/internal/common"
	"resnet-portal/internal/config"
	"resnet-portal/internal/database"

	"go.uber.org/zap"
)

var flagSeed = flag.Bool("seed", true, "seed demo members into a fresh database")

// setup initializes the relational deployment's schema so portald has
// something to connect to.
func main() {
	flag.Parse()

	logger, cleanupLogger := common.InitializeLogger()
	defer cleanupLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	cfg.Database.SeedDemoData = *flagSeed

	svc, err := database.NewService(context.Background(), "local", cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer svc.Close()

	logger.Info("Schema ready", zap.String("path", cfg.Database.Path),
		zap.Bool("seeded", *flagSeed))
}
