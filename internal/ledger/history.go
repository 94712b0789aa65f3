package ledger

import (
	"github.com/shopspring/decimal"

	"payments-engine-go/internal/models"
)

// DisputeState tracks whether a historical transaction is currently
// contested. A resolve returns the entry to StateClean, so a resolved
// transaction may be disputed again; a chargeback is terminal.
type DisputeState int

const (
	StateClean DisputeState = iota
	StateDisputed
	StateChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDisputed:
		return "disputed"
	case StateChargedBack:
		return "charged_back"
	}
	return "unknown"
}

// HistoricalTransaction retains what dispute handling needs from an applied
// deposit or withdrawal. Amount is the signed effect on available funds:
// positive for a deposit, negative for a withdrawal.
type HistoricalTransaction struct {
	Client models.ClientId
	Amount decimal.Decimal
	State  DisputeState
}

// History holds every successfully applied deposit and withdrawal, keyed by
// transaction id. Entries are never deleted; they are needed to validate
// later dispute-related records.
type History struct {
	entries map[models.TxId]*HistoricalTransaction
}

func NewHistory() *History {
	return &History{entries: make(map[models.TxId]*HistoricalTransaction)}
}

// Record inserts a clean entry, rejecting transaction id reuse.
func (h *History) Record(tx models.TxId, client models.ClientId, amount decimal.Decimal) error {
	if _, exists := h.entries[tx]; exists {
		return ErrDuplicateTransaction
	}
	h.entries[tx] = &HistoricalTransaction{Client: client, Amount: amount, State: StateClean}
	return nil
}

// Lookup returns the entry for tx, or nil if tx was never recorded.
func (h *History) Lookup(tx models.TxId) *HistoricalTransaction {
	return h.entries[tx]
}

// SetState mutates the dispute state in place. Callers verify the
// transition is legal before calling.
func (h *History) SetState(tx models.TxId, state DisputeState) {
	if entry, ok := h.entries[tx]; ok {
		entry.State = state
	}
}
