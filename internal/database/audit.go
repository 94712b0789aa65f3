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
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"payments-engine-go/internal/models"
	"payments-engine-go/internal/store"
)

func (s *Service) BeginRun(ctx context.Context, startedAt time.Time) (string, error) {
	runId := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, started_at) VALUES (?, ?)",
		runId, startedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("unable to create run: %w", err)
	}
	return runId, nil
}

func (s *Service) RecordApplied(ctx context.Context, runId string, tx store.AppliedTransaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applied_transactions
			(id, run_id, line, type, client, tx, amount, available_after, held_after, total_after, locked)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		runId,
		tx.Record.Line,
		string(tx.Record.Type),
		tx.Record.Client,
		tx.Record.Tx,
		amountColumn(tx.Record),
		tx.AvailableAfter.String(),
		tx.HeldAfter.String(),
		tx.TotalAfter.String(),
		tx.Locked)
	if err != nil {
		return fmt.Errorf("unable to record applied transaction: %w", err)
	}
	return nil
}

func (s *Service) RecordRejected(ctx context.Context, runId string, rej store.RejectedRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rejections (id, run_id, line, type, client, tx, amount, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		runId,
		rej.Record.Line,
		string(rej.Record.Type),
		rej.Record.Client,
		rej.Record.Tx,
		amountColumn(rej.Record),
		rej.Reason)
	if err != nil {
		return fmt.Errorf("unable to record rejection: %w", err)
	}
	return nil
}

func (s *Service) RecordSnapshot(ctx context.Context, runId string, snapshot []models.AccountSnapshot) error {
	for _, row := range snapshot {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO snapshots (id, run_id, client, available, held, total, locked)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(),
			runId,
			row.Client,
			row.Available.String(),
			row.Held.String(),
			row.Total.String(),
			row.Locked)
		if err != nil {
			return fmt.Errorf("unable to record snapshot for client %d: %w", row.Client, err)
		}
	}
	return nil
}

func (s *Service) EndRun(ctx context.Context, runId string, stats store.RunStats) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, records_read = ?, records_applied = ?, records_rejected = ?
		WHERE id = ?`,
		time.Now().UTC(), stats.Read, stats.Applied, stats.Rejected, runId)
	if err != nil {
		return fmt.Errorf("unable to finalize run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrRunNotFound
	}
	return nil
}

// ListRuns returns all runs in the audit database, most recent first.
func (s *Service) ListRuns(ctx context.Context) ([]store.RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at,
		       records_read, records_applied, records_rejected
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("unable to list runs: %w", err)
	}
	defer rows.Close()

	var runs []store.RunInfo
	for rows.Next() {
		var (
			run        store.RunInfo
			finishedAt sql.NullTime
		)
		if err := rows.Scan(&run.Id, &run.StartedAt, &finishedAt,
			&run.Stats.Read, &run.Stats.Applied, &run.Stats.Rejected); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunSnapshot reads back a run's final snapshot, ordered by client id.
func (s *Service) GetRunSnapshot(ctx context.Context, runId string) ([]models.AccountSnapshot, error) {
	if err := s.runExists(ctx, runId); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT client, available, held, total, locked
		FROM snapshots WHERE run_id = ? ORDER BY client ASC`, runId)
	if err != nil {
		return nil, fmt.Errorf("unable to read snapshot: %w", err)
	}
	defer rows.Close()

	var snapshot []models.AccountSnapshot
	for rows.Next() {
		var (
			row                    models.AccountSnapshot
			available, held, total string
		)
		if err := rows.Scan(&row.Client, &available, &held, &total, &row.Locked); err != nil {
			return nil, err
		}
		if row.Available, err = decimal.NewFromString(available); err != nil {
			return nil, err
		}
		if row.Held, err = decimal.NewFromString(held); err != nil {
			return nil, err
		}
		if row.Total, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		snapshot = append(snapshot, row)
	}
	return snapshot, rows.Err()
}

// GetRunRejections reads back a run's rejected records in input order.
func (s *Service) GetRunRejections(ctx context.Context, runId string) ([]store.RejectedRecord, error) {
	if err := s.runExists(ctx, runId); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT line, type, client, tx, amount, reason
		FROM rejections WHERE run_id = ? ORDER BY line ASC`, runId)
	if err != nil {
		return nil, fmt.Errorf("unable to read rejections: %w", err)
	}
	defer rows.Close()

	var rejections []store.RejectedRecord
	for rows.Next() {
		var (
			rej    store.RejectedRecord
			amount sql.NullString
		)
		if err := rows.Scan(&rej.Record.Line, &rej.Record.Type, &rej.Record.Client,
			&rej.Record.Tx, &amount, &rej.Reason); err != nil {
			return nil, err
		}
		if amount.Valid {
			parsed, err := decimal.NewFromString(amount.String)
			if err != nil {
				return nil, err
			}
			rej.Record.Amount = parsed
			rej.Record.HasAmount = true
		}
		rejections = append(rejections, rej)
	}
	return rejections, rows.Err()
}

// CountAppliedTransactions returns the number of accepted records in a run.
func (s *Service) CountAppliedTransactions(ctx context.Context, runId string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM applied_transactions WHERE run_id = ?", runId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unable to count applied transactions: %w", err)
	}
	return count, nil
}

func (s *Service) runExists(ctx context.Context, runId string) error {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM runs WHERE id = ?", runId).Scan(&id)
	if err == sql.ErrNoRows {
		return store.ErrRunNotFound
	}
	return err
}

func amountColumn(rec models.Record) interface{} {
	if !rec.HasAmount {
		return nil
	}
	return rec.Amount.String()
}
