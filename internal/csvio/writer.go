package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"payments-engine-go/internal/models"
)

// WriteSnapshot emits the final snapshot as CSV, one row per account in the
// order given, every numeric field formatted to four fractional digits.
func WriteSnapshot(w io.Writer, snapshot []models.AccountSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, row := range snapshot {
		fields := []string{
			strconv.FormatUint(uint64(row.Client), 10),
			row.Available.StringFixed(4),
			row.Held.StringFixed(4),
			row.Total.StringFixed(4),
			strconv.FormatBool(row.Locked),
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRecords emits transaction records in the input wire format. Records
// without an amount get an empty amount field, matching what the reader
// accepts for dispute-related rows.
func WriteRecords(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		return err
	}
	for _, rec := range records {
		amount := ""
		if rec.HasAmount {
			amount = rec.Amount.StringFixed(4)
		}
		fields := []string{
			string(rec.Type),
			strconv.FormatUint(uint64(rec.Client), 10),
			strconv.FormatUint(uint64(rec.Tx), 10),
			amount,
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
