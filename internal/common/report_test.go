package common

import (
	"bytes"
	"strings"
	"testing"

	"payments-engine-go/internal/ledger"
)

func TestWriteRunSummary(t *testing.T) {
	stats := ledger.Stats{
		Read:     10,
		Applied:  7,
		Rejected: 3,
		Reasons: map[string]int{
			ledger.ErrInsufficientFunds.Error(): 2,
			ledger.ErrAccountLocked.Error():     1,
		},
	}

	var buf bytes.Buffer
	WriteRunSummary(&buf, stats)
	out := buf.String()

	for _, want := range []string{
		"Records read:     10",
		"Records applied:  7",
		"Records rejected: 3",
		ledger.ErrInsufficientFunds.Error(),
		ledger.ErrAccountLocked.Error(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRunSummary_NoRejections(t *testing.T) {
	var buf bytes.Buffer
	WriteRunSummary(&buf, ledger.Stats{Read: 2, Applied: 2})

	if strings.Contains(buf.String(), "Rejections by reason") {
		t.Errorf("summary should omit the rejection breakdown:\n%s", buf.String())
	}
}
