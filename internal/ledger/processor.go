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

import "payments-engine-go/internal/models"

// Processor is the transaction state machine. It applies one record at a
// time against the account store and transaction history. A record either
// applies in full or is rejected with state exactly as it was; there is no
// partial application.
type Processor struct {
	accounts *AccountStore
	history  *History
}

func NewProcessor(accounts *AccountStore, history *History) *Processor {
	return &Processor{accounts: accounts, history: history}
}

// Apply runs rec through the state machine. A nil return means the record's
// effect is visible in the account store; otherwise the named rejection is
// returned and nothing changed.
func (p *Processor) Apply(rec models.Record) error {
	switch rec.Type {
	case models.RecordDeposit:
		return p.deposit(rec)
	case models.RecordWithdrawal:
		return p.withdrawal(rec)
	case models.RecordDispute:
		return p.dispute(rec)
	case models.RecordResolve:
		return p.resolve(rec)
	case models.RecordChargeback:
		return p.chargeback(rec)
	}
	return ErrMalformedRecord
}

func (p *Processor) deposit(rec models.Record) error {
	account := p.accounts.GetOrCreate(rec.Client)
	if account.Locked {
		return ErrAccountLocked
	}
	if err := p.history.Record(rec.Tx, rec.Client, rec.Amount); err != nil {
		return err
	}
	account.Available = account.Available.Add(rec.Amount)
	return nil
}

func (p *Processor) withdrawal(rec models.Record) error {
	account := p.accounts.GetOrCreate(rec.Client)
	if account.Locked {
		return ErrAccountLocked
	}
	if p.history.Lookup(rec.Tx) != nil {
		return ErrDuplicateTransaction
	}
	if account.Available.LessThan(rec.Amount) {
		return ErrInsufficientFunds
	}
	// History keeps the signed effect on available funds, so a withdrawal
	// is stored negated.
	if err := p.history.Record(rec.Tx, rec.Client, rec.Amount.Neg()); err != nil {
		return err
	}
	account.Available = account.Available.Sub(rec.Amount)
	return nil
}

// dispute freezes the referenced transaction's funds: its magnitude moves
// from available to held and the entry becomes disputed. The movement uses
// the magnitude for withdrawals as well as deposits; a dispute that would
// drive available negative is rejected so balances never go below zero.
func (p *Processor) dispute(rec models.Record) error {
	entry, account, err := p.referenced(rec)
	if err != nil {
		return err
	}
	if entry.State != StateClean {
		return ErrAlreadyDisputed
	}
	amount := entry.Amount.Abs()
	if account.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	account.Available = account.Available.Sub(amount)
	account.Held = account.Held.Add(amount)
	p.history.SetState(rec.Tx, StateDisputed)
	return nil
}

// resolve releases a pending dispute: held funds return to available and
// the entry goes back to clean, after which it may be disputed again.
func (p *Processor) resolve(rec models.Record) error {
	entry, account, err := p.referenced(rec)
	if err != nil {
		return err
	}
	if entry.State != StateDisputed {
		return ErrNotDisputed
	}
	amount := entry.Amount.Abs()
	account.Held = account.Held.Sub(amount)
	account.Available = account.Available.Add(amount)
	p.history.SetState(rec.Tx, StateClean)
	return nil
}

// chargeback permanently removes the held funds and locks the account
// against any further deposits or withdrawals.
func (p *Processor) chargeback(rec models.Record) error {
	entry, account, err := p.referenced(rec)
	if err != nil {
		return err
	}
	if entry.State != StateDisputed {
		return ErrNotDisputed
	}
	account.Held = account.Held.Sub(entry.Amount.Abs())
	account.Locked = true
	p.history.SetState(rec.Tx, StateChargedBack)
	return nil
}

// referenced resolves the transaction a dispute-related record points at,
// along with the account that issued it.
func (p *Processor) referenced(rec models.Record) (*HistoricalTransaction, *Account, error) {
	entry := p.history.Lookup(rec.Tx)
	if entry == nil {
		return nil, nil, ErrUnknownTransaction
	}
	if entry.Client != rec.Client {
		return nil, nil, ErrClientMismatch
	}
	return entry, p.accounts.GetOrCreate(rec.Client), nil
}
