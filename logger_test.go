// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel(getLogLevel())

	for level, want := range map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	} {
		SetLogLevel(level)
		assert.Equal(t, want, logLevel.Level(), level)
		assert.Equal(t, want == zapcore.DebugLevel, log.Desugar().Core().Enabled(zapcore.DebugLevel))
	}
}
