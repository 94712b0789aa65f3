/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"payments-engine-go/internal/models"
	"payments-engine-go/internal/store"
)

// Compile-time check: *Service must satisfy store.AuditSink.
var _ store.AuditSink = (*Service)(nil)

// Service is the SQLite-backed audit trail. One database can hold any
// number of engine runs.
type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.AuditConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("audit database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite audit database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close audit database connection", zap.Error(err))
	}
}

func (s *Service) initSchema() error {
	schema := `
	-- One row per engine run
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP,
		records_read INTEGER NOT NULL DEFAULT 0,
		records_applied INTEGER NOT NULL DEFAULT 0,
		records_rejected INTEGER NOT NULL DEFAULT 0
	);

	-- Accepted deposits/withdrawals and dispute-related mutations, with the
	-- issuing account's balances after each one
	CREATE TABLE IF NOT EXISTS applied_transactions (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES runs(id),
		line INTEGER NOT NULL,
		type TEXT NOT NULL,
		client INTEGER NOT NULL,
		tx INTEGER NOT NULL,
		amount TEXT,
		available_after TEXT NOT NULL,
		held_after TEXT NOT NULL,
		total_after TEXT NOT NULL,
		locked BOOLEAN NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Rejected records with their rejection reason
	CREATE TABLE IF NOT EXISTS rejections (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES runs(id),
		line INTEGER NOT NULL,
		type TEXT NOT NULL,
		client INTEGER NOT NULL,
		tx INTEGER NOT NULL,
		amount TEXT,
		reason TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Final per-client snapshot of each run
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES runs(id),
		client INTEGER NOT NULL,
		available TEXT NOT NULL,
		held TEXT NOT NULL,
		total TEXT NOT NULL,
		locked BOOLEAN NOT NULL,
		UNIQUE(run_id, client)
	);

	CREATE INDEX IF NOT EXISTS idx_applied_run_id ON applied_transactions(run_id);
	CREATE INDEX IF NOT EXISTS idx_applied_client ON applied_transactions(run_id, client);
	CREATE INDEX IF NOT EXISTS idx_rejections_run_id ON rejections(run_id);
	CREATE INDEX IF NOT EXISTS idx_snapshots_run_id ON snapshots(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}
