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

import (
	"sort"

	"github.com/shopspring/decimal"

	"payments-engine-go/internal/models"
)

// Account holds the balance state for one client. Total is derived and
// equals Available + Held after every mutation.
type Account struct {
	Client    models.ClientId
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

func newAccount(client models.ClientId) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// AccountStore owns one account per client id. The processor is the sole
// writer during a run; the store is not safe for concurrent use.
type AccountStore struct {
	accounts map[models.ClientId]*Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[models.ClientId]*Account)}
}

// GetOrCreate returns the client's account, creating a zeroed unlocked
// account on first reference. It never fails.
func (s *AccountStore) GetOrCreate(client models.ClientId) *Account {
	account, ok := s.accounts[client]
	if !ok {
		account = newAccount(client)
		s.accounts[client] = account
	}
	return account
}

// Len returns the number of accounts known to the store.
func (s *AccountStore) Len() int {
	return len(s.accounts)
}

// Snapshot returns one entry per known account, ordered by ascending
// client id.
func (s *AccountStore) Snapshot() []models.AccountSnapshot {
	ids := make([]models.ClientId, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	snapshots := make([]models.AccountSnapshot, 0, len(ids))
	for _, id := range ids {
		account := s.accounts[id]
		snapshots = append(snapshots, models.AccountSnapshot{
			Client:    id,
			Available: account.Available,
			Held:      account.Held,
			Total:     account.Total(),
			Locked:    account.Locked,
		})
	}
	return snapshots
}
