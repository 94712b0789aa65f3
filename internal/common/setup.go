package common

import (
	"context"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"payments-engine-go/internal/database"
	"payments-engine-go/internal/models"
	"payments-engine-go/internal/store"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via other means (shell export,
	// docker, etc.), so a missing .env file is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env file")
	}
}

// InitializeLogger installs the global zap logger. In debug mode the logger
// emits Info and above; otherwise only errors reach stderr so diagnostics
// stay opt-in.
func InitializeLogger(debug bool) (*zap.Logger, func()) {
	cfg := zap.NewProductionConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	logger, err := cfg.Build()
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

// OpenAuditSink returns the SQLite audit service when a database path is
// configured, and a no-op sink otherwise. The second return value closes the
// underlying database, if any.
func OpenAuditSink(ctx context.Context, cfg models.AuditConfig) (store.AuditSink, func(), error) {
	if cfg.Path == "" {
		return store.NopSink{}, func() {}, nil
	}
	service, err := database.NewService(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return service, service.Close, nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
