package csvio

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"payments-engine-go/internal/ledger"
)

// End-to-end: transactions CSV in, snapshot CSV out.
func runPipeline(t *testing.T, input string) string {
	t.Helper()
	engine := ledger.NewEngine(ledger.EngineConfig{})
	snapshot, err := engine.Run(context.Background(), NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, snapshot); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	return buf.String()
}

func TestPipeline_DepositsAndWithdrawals(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,1.0
deposit,2,2,2.0
deposit,1,3,2.0
withdrawal,1,4,1.5
withdrawal,2,5,3.0
`
	// Client 2's withdrawal exceeds its balance and is rejected, so the
	// account keeps its deposit.
	want := "client,available,held,total,locked\n" +
		"1,1.5000,0.0000,1.5000,false\n" +
		"2,2.0000,0.0000,2.0000,false\n"
	if got := runPipeline(t, input); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPipeline_ChargebackLocksAccount(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,5.0
dispute,1,1,
chargeback,1,1,
deposit,1,2,1.0
`
	want := "client,available,held,total,locked\n" +
		"1,0.0000,0.0000,0.0000,true\n"
	if got := runPipeline(t, input); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPipeline_MalformedRowsAreSkipped(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,1.0
deposit,1,banana,1.0
deposit,1,2,not-a-number
deposit,1,3,1.0
`
	want := "client,available,held,total,locked\n" +
		"1,2.0000,0.0000,2.0000,false\n"
	if got := runPipeline(t, input); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}
