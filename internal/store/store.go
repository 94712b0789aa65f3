package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"payments-engine-go/internal/models"
)

// Sentinel errors shared across all audit sink implementations.
var (
	ErrRunNotFound = errors.New("run not found")
)

// AppliedTransaction captures an accepted record together with the issuing
// account's balances after the mutation.
type AppliedTransaction struct {
	Record         models.Record
	AvailableAfter decimal.Decimal
	HeldAfter      decimal.Decimal
	TotalAfter     decimal.Decimal
	Locked         bool
}

// RejectedRecord captures a rejection with its record context.
type RejectedRecord struct {
	Record models.Record
	Reason string
}

// RunStats summarizes one engine run.
type RunStats struct {
	Read     int
	Applied  int
	Rejected int
}

// RunInfo describes a completed run in the audit trail.
type RunInfo struct {
	Id         string
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      RunStats
}

// AuditSink receives per-run audit events in input order. The engine is the
// only writer during a run.
type AuditSink interface {
	BeginRun(ctx context.Context, startedAt time.Time) (string, error)
	RecordApplied(ctx context.Context, runId string, tx AppliedTransaction) error
	RecordRejected(ctx context.Context, runId string, rej RejectedRecord) error
	RecordSnapshot(ctx context.Context, runId string, snapshot []models.AccountSnapshot) error
	EndRun(ctx context.Context, runId string, stats RunStats) error
}

// NopSink discards all audit events. Used when no audit database is
// configured.
type NopSink struct{}

var _ AuditSink = NopSink{}

func (NopSink) BeginRun(context.Context, time.Time) (string, error) { return "", nil }

func (NopSink) RecordApplied(context.Context, string, AppliedTransaction) error { return nil }

func (NopSink) RecordRejected(context.Context, string, RejectedRecord) error { return nil }

func (NopSink) RecordSnapshot(context.Context, string, []models.AccountSnapshot) error { return nil }

func (NopSink) EndRun(context.Context, string, RunStats) error { return nil }
