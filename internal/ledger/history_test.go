package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHistoryRecordAndLookup(t *testing.T) {
	history := NewHistory()

	amount := decimal.RequireFromString("12.5")
	if err := history.Record(1, 9, amount); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entry := history.Lookup(1)
	if entry == nil {
		t.Fatal("Lookup returned nil for recorded transaction")
	}
	if entry.Client != 9 {
		t.Errorf("client = %d, want 9", entry.Client)
	}
	if !entry.Amount.Equal(amount) {
		t.Errorf("amount = %s, want %s", entry.Amount, amount)
	}
	if entry.State != StateClean {
		t.Errorf("state = %v, want clean", entry.State)
	}
}

func TestHistoryRecord_Duplicate(t *testing.T) {
	history := NewHistory()

	if err := history.Record(1, 1, decimal.New(10, 0)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	err := history.Record(1, 1, decimal.New(20, 0))
	if !errors.Is(err, ErrDuplicateTransaction) {
		t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
	}

	// The original entry is untouched.
	if entry := history.Lookup(1); !entry.Amount.Equal(decimal.New(10, 0)) {
		t.Errorf("amount = %s, want 10", entry.Amount)
	}
}

func TestHistoryLookup_Unknown(t *testing.T) {
	history := NewHistory()
	if entry := history.Lookup(404); entry != nil {
		t.Errorf("Lookup of unknown tx returned %+v, want nil", entry)
	}
}

func TestHistorySetState(t *testing.T) {
	history := NewHistory()
	if err := history.Record(1, 1, decimal.New(5, 0)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	history.SetState(1, StateDisputed)
	if state := history.Lookup(1).State; state != StateDisputed {
		t.Errorf("state = %v, want disputed", state)
	}

	// Setting state of an unknown tx is a no-op.
	history.SetState(404, StateDisputed)
}
