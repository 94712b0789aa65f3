package store

import (
	"context"
	"testing"
	"time"
)

// NopSink must be usable anywhere an AuditSink is expected and never fail.
func TestNopSink(t *testing.T) {
	var sink AuditSink = NopSink{}
	ctx := context.Background()

	runId, err := sink.BeginRun(ctx, time.Now())
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := sink.RecordApplied(ctx, runId, AppliedTransaction{}); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}
	if err := sink.RecordRejected(ctx, runId, RejectedRecord{}); err != nil {
		t.Fatalf("RecordRejected failed: %v", err)
	}
	if err := sink.RecordSnapshot(ctx, runId, nil); err != nil {
		t.Fatalf("RecordSnapshot failed: %v", err)
	}
	if err := sink.EndRun(ctx, runId, RunStats{}); err != nil {
		t.Fatalf("EndRun failed: %v", err)
	}
}
