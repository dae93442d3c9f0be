package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"resnet-portal/internal/database"
	"resnet-portal/internal/directory"
	"resnet-portal/internal/models"
	"resnet-portal/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from a .env file if one exists.
// Deployments usually set them via systemd or the container runtime.
func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("Loaded environment variables from .env file")
	}
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeBackends builds one connector per configured deployment. The
// returned cleanup closes every connector that was opened.
func InitializeBackends(ctx context.Context, cfg *models.Config) ([]store.Connector, func(), error) {
	deployments, err := LoadDeployments(cfg.Portal.DeploymentsFile)
	if err != nil {
		return nil, nil, err
	}

	var backends []store.Connector
	cleanup := func() {
		for _, be := range backends {
			be.Close()
		}
	}

	for _, dep := range deployments {
		var be store.Connector
		switch dep.Kind {
		case DeploymentKindSQLite:
			dbCfg := cfg.Database
			dbCfg.Path = dep.Path
			be, err = database.NewService(ctx, dep.Name, dbCfg)
		case DeploymentKindDirectoryExport:
			var client *directory.FileClient
			client, err = directory.NewFileClient(dep.Path)
			if err == nil {
				be, err = directory.NewService(dep.Name, client)
			}
		default:
			err = fmt.Errorf("unknown deployment kind %q", dep.Kind)
		}
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("deployment %s: %w", dep.Name, err)
		}
		backends = append(backends, be)
	}

	if len(backends) == 0 {
		return nil, nil, fmt.Errorf("no deployments configured in %s", cfg.Portal.DeploymentsFile)
	}

	zap.L().Info("Backends initialized", zap.Int("count", len(backends)))
	return backends, cleanup, nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
