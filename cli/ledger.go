package cli

import (
	"encoding/json"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"zetasbox/contract"
	"zetasbox/sdk"
	"zetasbox/store"
)

// ledger bundles a controller with the resources it was opened on.
type ledger struct {
	ctrl    *contract.Controller
	bank    *sdk.Bank
	metrics *prometheus.Registry
	close   func() error
}

// openLedger opens the configured store. The bank is always in memory, so balances only live
// for one command.
func openLedger(forceMemory bool) (*ledger, error) {
	programID, err := cfg.ProgramAddress()
	if err != nil {
		return nil, err
	}

	var st contract.Store
	closer := func() error { return nil }
	if forceMemory {
		st = contract.NewMemStore()
	} else {
		db, err := store.Open(cfg.DataDir, cfg.InMemory, logger)
		if err != nil {
			return nil, err
		}
		st = db
		closer = db.Close
	}

	reg := prometheus.NewRegistry()
	bank := sdk.NewBank()
	ctrl, err := contract.NewController(st, bank, contract.Options{
		ProgramID:            programID,
		IdempotentSettlement: cfg.IdempotentSettlement,
		Logger:               logger,
		Metrics:              contract.NewMetrics(reg),
	})
	if err != nil {
		_ = closer()
		return nil, err
	}
	return &ledger{ctrl: ctrl, bank: bank, metrics: reg, close: closer}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
