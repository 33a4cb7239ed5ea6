// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
apdu_size = 128
read_timeout = "5s"
device_index = 1
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 128, cfg.APDUSize)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout.Duration)
	assert.Equal(t, 1, cfg.DeviceIndex)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LEDGER_LOG_LEVEL", "")
	cfg, err := LoadConfig(writeConfig(t, `device_index = 0`))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, MaxAPDUSize, cfg.APDUSize)
	assert.Equal(t, 20*time.Second, cfg.ReadTimeout.Duration)
}

func TestLoadConfigUnknownEnvLevel(t *testing.T) {
	t.Setenv("LEDGER_LOG_LEVEL", "trace")
	assert.Equal(t, "info", DefaultConfig().LogLevel)

	cfg, err := LoadConfig(writeConfig(t, `apdu_size = 128`))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)

	t.Setenv("LEDGER_LOG_LEVEL", " WARN ")
	assert.Equal(t, "warn", DefaultConfig().LogLevel)
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, body := range []string{
		`apdu_size = 10`,
		`apdu_size = 300`,
		`read_timeout = "0s"`,
		`read_timeout = "soon"`,
		`log_level = "trace"`,
		`device_index = -1`,
		`apdu_size = "big"`,
	} {
		_, err := LoadConfig(writeConfig(t, body))
		assert.Error(t, err, body)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
