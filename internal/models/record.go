package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ClientId identifies a client account. Accounts are created implicitly on
// the first record that references them.
type ClientId uint16

// TxId identifies a deposit or withdrawal. Dispute-related records reference
// an existing TxId; they never introduce a new one.
type TxId uint32

// RecordType is the transaction type tag carried by an input record.
type RecordType string

const (
	RecordDeposit    RecordType = "deposit"
	RecordWithdrawal RecordType = "withdrawal"
	RecordDispute    RecordType = "dispute"
	RecordResolve    RecordType = "resolve"
	RecordChargeback RecordType = "chargeback"
)

// ParseRecordType validates the type tag from the input stream.
func ParseRecordType(s string) (RecordType, error) {
	switch t := RecordType(s); t {
	case RecordDeposit, RecordWithdrawal, RecordDispute, RecordResolve, RecordChargeback:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// RequiresAmount reports whether records of this type must carry an amount.
// Dispute-related records always use the amount recorded with the
// transaction they reference.
func (t RecordType) RequiresAmount() bool {
	return t == RecordDeposit || t == RecordWithdrawal
}

// Record is one parsed transaction record from the input stream.
type Record struct {
	Type      RecordType
	Client    ClientId
	Tx        TxId
	Amount    decimal.Decimal
	HasAmount bool
	Line      int // 1-based input line, for diagnostics
}
