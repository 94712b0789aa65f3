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

package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"payments-engine-go/internal/ledger"
	"payments-engine-go/internal/models"
)

// Reader is a lazy record source over a transactions CSV. Rows look like
// `type,client,tx,amount`; dispute-related rows omit the amount or leave it
// empty. A malformed row comes back as an error wrapping
// ledger.ErrMalformedRecord so the driver can report it and keep reading.
type Reader struct {
	csv       *csv.Reader
	line      int
	sawHeader bool
}

var _ ledger.RecordSource = (*Reader)(nil)

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows carry 3 or 4 fields
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next record in input order, io.EOF at the end of the
// stream, or a malformed-record error carrying the offending line number.
func (r *Reader) Next() (models.Record, error) {
	for {
		fields, err := r.csv.Read()
		if err == io.EOF {
			return models.Record{}, io.EOF
		}
		r.line++
		if err != nil {
			return models.Record{Line: r.line}, r.malformed("%v", err)
		}
		if !r.sawHeader && isHeader(fields) {
			r.sawHeader = true
			continue
		}
		rec, err := r.parse(fields)
		if err != nil {
			return models.Record{Line: r.line}, err
		}
		return rec, nil
	}
}

func (r *Reader) parse(fields []string) (models.Record, error) {
	if len(fields) < 3 || len(fields) > 4 {
		return models.Record{}, r.malformed("expected 3 or 4 fields, got %d", len(fields))
	}

	recordType, err := models.ParseRecordType(strings.TrimSpace(fields[0]))
	if err != nil {
		return models.Record{}, r.malformed("%v", err)
	}

	client, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 16)
	if err != nil {
		return models.Record{}, r.malformed("invalid client id %q", fields[1])
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 32)
	if err != nil {
		return models.Record{}, r.malformed("invalid transaction id %q", fields[2])
	}

	rec := models.Record{
		Type:   recordType,
		Client: models.ClientId(client),
		Tx:     models.TxId(tx),
		Line:   r.line,
	}

	if !recordType.RequiresAmount() {
		// Any amount on a dispute-related row is ignored; the amount that
		// matters is the one recorded with the referenced transaction.
		return rec, nil
	}

	if len(fields) < 4 || strings.TrimSpace(fields[3]) == "" {
		return models.Record{}, r.malformed("%s requires an amount", recordType)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return models.Record{}, r.malformed("invalid amount %q", fields[3])
	}
	if amount.IsNegative() {
		return models.Record{}, r.malformed("%s amount must not be negative", recordType)
	}
	if !amount.Equal(amount.Truncate(4)) {
		return models.Record{}, r.malformed("amount %q has more than four fractional digits", fields[3])
	}
	rec.Amount = amount
	rec.HasAmount = true
	return rec, nil
}

func (r *Reader) malformed(format string, args ...interface{}) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: line %d: %s", ledger.ErrMalformedRecord, r.line, detail)
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "type")
}
