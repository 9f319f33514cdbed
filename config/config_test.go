package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./data/badger", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.InMemory)
	assert.False(t, cfg.IdempotentSettlement)

	addr, err := cfg.ProgramAddress()
	require.NoError(t, err)
	assert.True(t, addr.IsZero())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ZETASBOX_DATA_DIR", "/tmp/zb")
	t.Setenv("ZETASBOX_IN_MEMORY", "true")
	t.Setenv("ZETASBOX_LOG_LEVEL", "debug")
	t.Setenv("ZETASBOX_IDEMPOTENT_SETTLEMENT", "true")
	t.Setenv("ZETASBOX_PROGRAM_ID", "AaRJMWropnNyyaTRdJUjsSvBk9WdBwpMBY1vRmwz7rE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/zb", cfg.DataDir)
	assert.True(t, cfg.InMemory)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.IdempotentSettlement)

	addr, err := cfg.ProgramAddress()
	require.NoError(t, err)
	assert.Equal(t, "AaRJMWropnNyyaTRdJUjsSvBk9WdBwpMBY1vRmwz7rE", addr.String())
}

func TestLoadBadBool(t *testing.T) {
	t.Setenv("ZETASBOX_IN_MEMORY", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), err.Error())
}

func TestLoadBadProgramID(t *testing.T) {
	t.Setenv("ZETASBOX_PROGRAM_ID", "not-base58-0OIl")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZETASBOX_PROGRAM_ID")
}
