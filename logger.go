// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Forked from github.com/zondax/ledger-go - NO GOLEM DEPENDENCY
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log      *zap.SugaredLogger
	logLevel = zap.NewAtomicLevel()
)

func init() {
	initLogger()
}

func initLogger() {
	SetLogLevel(getLogLevel())

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = logLevel

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	log = logger.Sugar().Named("ledger-btc")
}

// SetLogLevel changes the package log level at runtime. Unknown levels fall
// back to info.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logLevel.SetLevel(zap.DebugLevel)
	case "info":
		logLevel.SetLevel(zap.InfoLevel)
	case "warn":
		logLevel.SetLevel(zap.WarnLevel)
	case "error":
		logLevel.SetLevel(zap.ErrorLevel)
	default:
		logLevel.SetLevel(zap.InfoLevel)
	}
}

// getLogLevel reads LEDGER_LOG_LEVEL, unknown or missing values become info.
func getLogLevel() string {
	level := strings.ToLower(strings.TrimSpace(os.Getenv("LEDGER_LOG_LEVEL")))
	if !validLogLevel(level) {
		return "info"
	}
	return level
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
