package ledger

import "errors"

// Rejection reasons. Every rejection is record-scoped: the offending record
// leaves account and history state untouched and the batch continues.
var (
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
	ErrAccountLocked        = errors.New("account locked")
	ErrInsufficientFunds    = errors.New("insufficient available funds")
	ErrUnknownTransaction   = errors.New("referenced transaction not found")
	ErrClientMismatch       = errors.New("referenced transaction belongs to a different client")
	ErrAlreadyDisputed      = errors.New("transaction already under dispute")
	ErrNotDisputed          = errors.New("transaction not under dispute")
	ErrMalformedRecord      = errors.New("malformed record")
)
