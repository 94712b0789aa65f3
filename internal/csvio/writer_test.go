package csvio

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"payments-engine-go/internal/models"
)

func TestWriteSnapshot_FourFractionalDigits(t *testing.T) {
	snapshot := []models.AccountSnapshot{
		{
			Client:    1,
			Available: decimal.RequireFromString("1.5"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("1.5"),
			Locked:    false,
		},
		{
			Client:    2,
			Available: decimal.Zero,
			Held:      decimal.Zero,
			Total:     decimal.Zero,
			Locked:    true,
		},
	}

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, snapshot); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	want := "client,available,held,total,locked\n" +
		"1,1.5000,0.0000,1.5000,false\n" +
		"2,0.0000,0.0000,0.0000,true\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteSnapshot_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, nil); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if buf.String() != "client,available,held,total,locked\n" {
		t.Errorf("output = %q, want header only", buf.String())
	}
}

func TestWriteRecords_RoundTripsThroughReader(t *testing.T) {
	records := []models.Record{
		{Type: models.RecordDeposit, Client: 1, Tx: 1, Amount: decimal.RequireFromString("5.5"), HasAmount: true},
		{Type: models.RecordDispute, Client: 1, Tx: 1},
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, records); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}

	want := "type,client,tx,amount\n" +
		"deposit,1,1,5.5000\n" +
		"dispute,1,1,\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}

	parsed, rejections := readAll(t, buf.String())
	if len(rejections) != 0 {
		t.Fatalf("reader rejected generated output: %v", rejections)
	}
	if len(parsed) != 2 {
		t.Fatalf("reader parsed %d records, want 2", len(parsed))
	}
	if parsed[0].Type != models.RecordDeposit || !parsed[0].Amount.Equal(records[0].Amount) {
		t.Errorf("parsed[0] = %+v", parsed[0])
	}
}
