// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// minAPDUSize leaves room for a full depth path in SIGN MESSAGE and for the
// largest atomic transaction field in GET TRUSTED INPUT.
const minAPDUSize = 64

// Config tunes the HID transport and the command driver.
type Config struct {
	LogLevel    string   `toml:"log_level"`
	APDUSize    int      `toml:"apdu_size"`
	ReadTimeout Duration `toml:"read_timeout"`
	DeviceIndex int      `toml:"device_index"`
}

// Duration reads TOML strings such as "20s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func DefaultConfig() Config {
	return Config{
		LogLevel:    getLogLevel(),
		APDUSize:    MaxAPDUSize,
		ReadTimeout: Duration{20 * time.Second},
	}
}

// LoadConfig reads a TOML file, fills in defaults for missing keys and
// validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APDUSize < minAPDUSize || c.APDUSize > MaxAPDUSize {
		return fmt.Errorf("apdu_size must be within [%d, %d], got %d", minAPDUSize, MaxAPDUSize, c.APDUSize)
	}
	if c.ReadTimeout.Duration <= 0 {
		return fmt.Errorf("read_timeout must be positive")
	}
	if c.DeviceIndex < 0 {
		return fmt.Errorf("device_index must not be negative")
	}
	if !validLogLevel(strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
