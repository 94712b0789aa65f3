package models

import "github.com/shopspring/decimal"

// AccountSnapshot is one row of the final engine output. Total always equals
// Available + Held.
type AccountSnapshot struct {
	Client    ClientId
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
