package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"payments-engine-go/internal/models"
)

func TestGetOrCreate_NewAccountIsZeroed(t *testing.T) {
	accounts := NewAccountStore()

	account := accounts.GetOrCreate(7)
	if !account.Available.Equal(decimal.Zero) || !account.Held.Equal(decimal.Zero) {
		t.Errorf("new account not zeroed: available=%s held=%s", account.Available, account.Held)
	}
	if account.Locked {
		t.Error("new account should not be locked")
	}
	if account.Client != 7 {
		t.Errorf("client = %d, want 7", account.Client)
	}
}

func TestGetOrCreate_ReturnsSameAccount(t *testing.T) {
	accounts := NewAccountStore()

	first := accounts.GetOrCreate(1)
	first.Available = decimal.RequireFromString("3.5")

	second := accounts.GetOrCreate(1)
	if first != second {
		t.Fatal("GetOrCreate returned a different account for the same client")
	}
	if accounts.Len() != 1 {
		t.Errorf("store has %d accounts, want 1", accounts.Len())
	}
}

func TestSnapshot_OrderedByClientId(t *testing.T) {
	accounts := NewAccountStore()
	for _, client := range []models.ClientId{42, 1, 17, 3} {
		accounts.GetOrCreate(client)
	}

	snapshot := accounts.Snapshot()
	if len(snapshot) != 4 {
		t.Fatalf("snapshot has %d rows, want 4", len(snapshot))
	}
	want := []models.ClientId{1, 3, 17, 42}
	for i, row := range snapshot {
		if row.Client != want[i] {
			t.Errorf("snapshot[%d].Client = %d, want %d", i, row.Client, want[i])
		}
	}
}
