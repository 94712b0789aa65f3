package scenario

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"payments-engine-go/internal/models"
)

// Scenario describes a synthetic transaction batch: how many clients to
// spread activity over and how many records of each type to emit.
type Scenario struct {
	Seed        int64  `yaml:"seed"`
	Clients     int    `yaml:"clients"`
	Deposits    int    `yaml:"deposits"`
	Withdrawals int    `yaml:"withdrawals"`
	Disputes    int    `yaml:"disputes"`
	Resolves    int    `yaml:"resolves"`
	Chargebacks int    `yaml:"chargebacks"`
	MaxAmount   string `yaml:"max_amount"`
}

func Load(scenarioFile string) (*Scenario, error) {
	var scenarioPath string
	if filepath.IsAbs(scenarioFile) {
		scenarioPath = scenarioFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		scenarioPath = filepath.Join(wd, scenarioFile)
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", scenarioFile, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", scenarioFile, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", scenarioFile, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Clients < 1 {
		return fmt.Errorf("clients must be at least 1, got %d", s.Clients)
	}
	if s.Deposits < 1 {
		return fmt.Errorf("deposits must be at least 1, got %d", s.Deposits)
	}
	if s.Withdrawals < 0 || s.Disputes < 0 || s.Resolves < 0 || s.Chargebacks < 0 {
		return fmt.Errorf("record counts cannot be negative")
	}
	if s.Disputes > s.Deposits {
		return fmt.Errorf("disputes (%d) cannot exceed deposits (%d)", s.Disputes, s.Deposits)
	}
	if s.Resolves+s.Chargebacks > s.Disputes {
		return fmt.Errorf("resolves (%d) plus chargebacks (%d) cannot exceed disputes (%d)",
			s.Resolves, s.Chargebacks, s.Disputes)
	}
	if s.MaxAmount != "" {
		maxAmount, err := decimal.NewFromString(s.MaxAmount)
		if err != nil {
			return fmt.Errorf("invalid max_amount %q: %w", s.MaxAmount, err)
		}
		if !maxAmount.IsPositive() {
			return fmt.Errorf("max_amount must be positive, got %s", s.MaxAmount)
		}
	}
	return nil
}

// Generate synthesizes the batch. Output is fully deterministic for a fixed
// seed: deposits first so later withdrawals and disputes mostly succeed,
// then withdrawals, then the dispute lifecycle records.
func (s *Scenario) Generate() []models.Record {
	r := rand.New(rand.NewSource(s.Seed))

	maxAmount := decimal.RequireFromString("100.0000")
	if s.MaxAmount != "" {
		maxAmount = decimal.RequireFromString(s.MaxAmount)
	}
	// Amounts are drawn in four-fractional-digit units.
	maxUnits := maxAmount.Shift(4).IntPart()

	records := make([]models.Record, 0, s.Deposits+s.Withdrawals+s.Disputes+s.Resolves+s.Chargebacks)
	nextTx := models.TxId(1)

	randomClient := func() models.ClientId {
		return models.ClientId(1 + r.Intn(s.Clients))
	}
	randomAmount := func() decimal.Decimal {
		return decimal.New(1+r.Int63n(maxUnits), -4)
	}

	depositTxs := make([]models.TxId, 0, s.Deposits)
	depositClient := make(map[models.TxId]models.ClientId, s.Deposits)
	for i := 0; i < s.Deposits; i++ {
		client := randomClient()
		records = append(records, models.Record{
			Type:      models.RecordDeposit,
			Client:    client,
			Tx:        nextTx,
			Amount:    randomAmount(),
			HasAmount: true,
		})
		depositTxs = append(depositTxs, nextTx)
		depositClient[nextTx] = client
		nextTx++
	}

	for i := 0; i < s.Withdrawals; i++ {
		// Withdraw from a client that deposited, for a fraction of the
		// deposit ceiling, so most withdrawals clear the balance check.
		tx := depositTxs[r.Intn(len(depositTxs))]
		records = append(records, models.Record{
			Type:      models.RecordWithdrawal,
			Client:    depositClient[tx],
			Tx:        nextTx,
			Amount:    decimal.New(1+r.Int63n(maxUnits/4+1), -4),
			HasAmount: true,
		})
		nextTx++
	}

	disputed := make([]models.TxId, 0, s.Disputes)
	for _, i := range r.Perm(len(depositTxs))[:s.Disputes] {
		tx := depositTxs[i]
		records = append(records, models.Record{
			Type:   models.RecordDispute,
			Client: depositClient[tx],
			Tx:     tx,
		})
		disputed = append(disputed, tx)
	}

	for i := 0; i < s.Resolves; i++ {
		tx := disputed[i]
		records = append(records, models.Record{
			Type:   models.RecordResolve,
			Client: depositClient[tx],
			Tx:     tx,
		})
	}

	for i := 0; i < s.Chargebacks; i++ {
		tx := disputed[s.Resolves+i]
		records = append(records, models.Record{
			Type:   models.RecordChargeback,
			Client: depositClient[tx],
			Tx:     tx,
		})
	}

	return records
}
