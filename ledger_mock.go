// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"errors"
	"sync"
)

// MockHandler answers one APDU with a raw reply, status word included.
type MockHandler func(command []byte) ([]byte, error)

type LedgerAdminMock struct {
	Handler MockHandler
}

// LedgerDeviceMock is an in-memory LedgerDevice. It records every command it
// receives and answers through its handler, or with a bare success status
// when no handler is set.
type LedgerDeviceMock struct {
	mu       sync.Mutex
	handler  MockHandler
	commands [][]byte
	closed   bool
}

func NewLedgerAdminMock(handler MockHandler) LedgerAdmin {
	return &LedgerAdminMock{Handler: handler}
}

func NewLedgerDeviceMock(handler MockHandler) *LedgerDeviceMock {
	return &LedgerDeviceMock{handler: handler}
}

func (admin *LedgerAdminMock) CountDevices() int {
	return 1
}

func (admin *LedgerAdminMock) ListDevices() ([]string, error) {
	return []string{"mock"}, nil
}

func (admin *LedgerAdminMock) Connect(deviceIndex int) (LedgerDevice, error) {
	if deviceIndex != 0 {
		return nil, errors.New("device not found")
	}
	return NewLedgerDeviceMock(admin.Handler), nil
}

func (ledger *LedgerDeviceMock) Exchange(command []byte) ([]byte, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	if ledger.closed {
		return nil, errors.New("device closed")
	}
	ledger.commands = append(ledger.commands, append([]byte(nil), command...))
	if ledger.handler == nil {
		return []byte{0x90, 0x00}, nil
	}
	return ledger.handler(command)
}

// Commands returns the APDUs received so far.
func (ledger *LedgerDeviceMock) Commands() [][]byte {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return append([][]byte(nil), ledger.commands...)
}

func (ledger *LedgerDeviceMock) Close() error {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	ledger.closed = true
	return nil
}
