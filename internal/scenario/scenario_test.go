package scenario

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"payments-engine-go/internal/ledger"
	"payments-engine-go/internal/models"
)

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write scenario file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeScenario(t, `
seed: 42
clients: 3
deposits: 10
withdrawals: 4
disputes: 2
resolves: 1
chargebacks: 1
max_amount: "250.00"
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Seed != 42 || s.Clients != 3 || s.Deposits != 10 {
		t.Errorf("scenario = %+v", s)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"no clients", "deposits: 5"},
		{"no deposits", "clients: 2"},
		{"too many disputes", "clients: 1\ndeposits: 2\ndisputes: 3"},
		{"resolves exceed disputes", "clients: 1\ndeposits: 5\ndisputes: 1\nresolves: 1\nchargebacks: 1"},
		{"bad max amount", "clients: 1\ndeposits: 1\nmax_amount: \"zero\""},
		{"negative counts", "clients: 1\ndeposits: 1\nwithdrawals: -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeScenario(t, tt.contents)); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestGenerate_Counts(t *testing.T) {
	s := &Scenario{Seed: 7, Clients: 4, Deposits: 20, Withdrawals: 5, Disputes: 3, Resolves: 1, Chargebacks: 1}

	records := s.Generate()
	counts := make(map[models.RecordType]int)
	for _, rec := range records {
		counts[rec.Type]++
	}

	if counts[models.RecordDeposit] != 20 ||
		counts[models.RecordWithdrawal] != 5 ||
		counts[models.RecordDispute] != 3 ||
		counts[models.RecordResolve] != 1 ||
		counts[models.RecordChargeback] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	s := &Scenario{Seed: 99, Clients: 3, Deposits: 15, Withdrawals: 5, Disputes: 2, Resolves: 1}

	first := s.Generate()
	second := s.Generate()

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type ||
			first[i].Client != second[i].Client ||
			first[i].Tx != second[i].Tx ||
			first[i].HasAmount != second[i].HasAmount ||
			(first[i].HasAmount && !first[i].Amount.Equal(second[i].Amount)) {
			t.Fatalf("records[%d] differ: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// Generated batches reference only real transactions, so the engine never
// sees unknown-transaction or client-mismatch rejections.
func TestGenerate_ReferencesAreConsistent(t *testing.T) {
	s := &Scenario{Seed: 3, Clients: 5, Deposits: 30, Withdrawals: 10, Disputes: 5, Resolves: 2, Chargebacks: 2}

	engine := ledger.NewEngine(ledger.EngineConfig{})
	snapshot, err := engine.Run(context.Background(), sliceSource(s.Generate()))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(snapshot) == 0 {
		t.Fatal("expected at least one account in the snapshot")
	}

	stats := engine.Stats()
	for _, reason := range []error{ledger.ErrUnknownTransaction, ledger.ErrClientMismatch, ledger.ErrDuplicateTransaction} {
		if stats.Reasons[reason.Error()] != 0 {
			t.Errorf("generated batch triggered %q %d times", reason, stats.Reasons[reason.Error()])
		}
	}
}

type recordsSource struct {
	records []models.Record
	pos     int
}

func sliceSource(records []models.Record) *recordsSource {
	return &recordsSource{records: records}
}

func (s *recordsSource) Next() (models.Record, error) {
	if s.pos >= len(s.records) {
		return models.Record{}, io.EOF
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}
