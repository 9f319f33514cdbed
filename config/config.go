package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"zetasbox/sdk"
)

// Config is read from the environment once at startup. Platform fee routing lives on the
// ledger, not here.
type Config struct {
	DataDir              string `env:"ZETASBOX_DATA_DIR"              envDefault:"./data/badger"`
	InMemory             bool   `env:"ZETASBOX_IN_MEMORY"`
	LogLevel             string `env:"ZETASBOX_LOG_LEVEL"             envDefault:"info"`
	LogFile              string `env:"ZETASBOX_LOG_FILE"`
	ProgramID            string `env:"ZETASBOX_PROGRAM_ID"`
	IdempotentSettlement bool   `env:"ZETASBOX_IDEMPOTENT_SETTLEMENT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config and validates the program id.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.ProgramAddress(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ProgramAddress returns the configured program id, zero when unset.
func (c Config) ProgramAddress() (sdk.Address, error) {
	if c.ProgramID == "" {
		return sdk.ZeroAddress, nil
	}
	addr, err := sdk.AddressFromString(c.ProgramID)
	if err != nil {
		return sdk.ZeroAddress, fmt.Errorf("ZETASBOX_PROGRAM_ID: %w", err)
	}
	return addr, nil
}
