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

package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"payments-engine-go/internal/models"
	"payments-engine-go/internal/store"
)

// RecordSource produces transaction records in input order. Next returns
// io.EOF when the sequence is exhausted. A malformed row is returned as an
// error wrapping ErrMalformedRecord with the record context partially
// filled; any other error is a fatal read failure.
type RecordSource interface {
	Next() (models.Record, error)
}

// Reporter receives one event per rejected record.
type Reporter interface {
	Reject(rec models.Record, reason error)
}

// NopReporter drops rejections. Used when diagnostics are disabled.
type NopReporter struct{}

func (NopReporter) Reject(models.Record, error) {}

// Stats counts per-run outcomes. Reasons maps rejection reason text to the
// number of records rejected for it.
type Stats struct {
	Read     int
	Applied  int
	Rejected int
	Reasons  map[string]int
}

// EngineConfig contains the collaborators for an Engine.
type EngineConfig struct {
	Reporter Reporter
	Audit    store.AuditSink
}

// Engine is the ledger driver: it feeds records from a source through the
// processor in arrival order, forwards rejections to the reporter, mirrors
// outcomes to the audit sink, and produces the final snapshot.
type Engine struct {
	accounts  *AccountStore
	history   *History
	processor *Processor
	reporter  Reporter
	audit     store.AuditSink
	stats     Stats
}

func NewEngine(cfg EngineConfig) *Engine {
	accounts := NewAccountStore()
	history := NewHistory()
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	audit := cfg.Audit
	if audit == nil {
		audit = store.NopSink{}
	}
	return &Engine{
		accounts:  accounts,
		history:   history,
		processor: NewProcessor(accounts, history),
		reporter:  reporter,
		audit:     audit,
		stats:     Stats{Reasons: make(map[string]int)},
	}
}

// Run drains the source and returns the final snapshot, ordered by client
// id. Rejections never halt the batch; only a fatal source error or an
// unusable audit sink aborts the run.
func (e *Engine) Run(ctx context.Context, source RecordSource) ([]models.AccountSnapshot, error) {
	runId, err := e.audit.BeginRun(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("unable to begin audit run: %w", err)
	}

	for {
		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		e.stats.Read++
		if err != nil {
			if errors.Is(err, ErrMalformedRecord) {
				e.reject(ctx, runId, rec, err)
				continue
			}
			return nil, fmt.Errorf("reading record %d: %w", e.stats.Read, err)
		}

		if err := e.processor.Apply(rec); err != nil {
			e.reject(ctx, runId, rec, err)
			continue
		}
		e.stats.Applied++

		account := e.accounts.GetOrCreate(rec.Client)
		if err := e.audit.RecordApplied(ctx, runId, store.AppliedTransaction{
			Record:         rec,
			AvailableAfter: account.Available,
			HeldAfter:      account.Held,
			TotalAfter:     account.Total(),
			Locked:         account.Locked,
		}); err != nil {
			zap.L().Warn("Failed to record applied transaction in audit trail",
				zap.Uint32("tx", uint32(rec.Tx)),
				zap.Error(err))
		}
	}

	snapshot := e.accounts.Snapshot()
	if err := e.audit.RecordSnapshot(ctx, runId, snapshot); err != nil {
		zap.L().Warn("Failed to record snapshot in audit trail", zap.Error(err))
	}
	if err := e.audit.EndRun(ctx, runId, store.RunStats{
		Read:     e.stats.Read,
		Applied:  e.stats.Applied,
		Rejected: e.stats.Rejected,
	}); err != nil {
		zap.L().Warn("Failed to finalize audit run", zap.Error(err))
	}
	return snapshot, nil
}

// Stats returns the outcome counters for the run so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

func (e *Engine) reject(ctx context.Context, runId string, rec models.Record, reason error) {
	e.stats.Rejected++
	e.stats.Reasons[reasonText(reason)]++
	e.reporter.Reject(rec, reason)
	if err := e.audit.RecordRejected(ctx, runId, store.RejectedRecord{
		Record: rec,
		Reason: reason.Error(),
	}); err != nil {
		zap.L().Warn("Failed to record rejection in audit trail", zap.Error(err))
	}
}

// reasonText collapses wrapped malformed-record errors onto the sentinel so
// summary counts group by taxonomy rather than by line detail.
func reasonText(reason error) string {
	if errors.Is(reason, ErrMalformedRecord) {
		return ErrMalformedRecord.Error()
	}
	return reason.Error()
}
