// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// LedgerBitcoin drives commands of the Ledger Bitcoin app over a LedgerDevice.
//
// Round trips of one command are strictly sequential. A LedgerBitcoin must not
// be used from several goroutines at once.
type LedgerBitcoin struct {
	device   LedgerDevice
	apduSize int
}

// FindLedgerBitcoinApp connects to the configured HID device.
func FindLedgerBitcoinApp(cfg Config) (*LedgerBitcoin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	SetLogLevel(cfg.LogLevel)

	device, err := NewLedgerAdmin(cfg).Connect(cfg.DeviceIndex)
	if err != nil {
		return nil, err
	}
	return NewLedgerBitcoin(device, cfg), nil
}

func NewLedgerBitcoin(device LedgerDevice, cfg Config) *LedgerBitcoin {
	return &LedgerBitcoin{device: device, apduSize: effectiveSize(cfg.APDUSize)}
}

func (l *LedgerBitcoin) Close() error {
	return l.device.Close()
}

// Exchange runs cmd to completion and returns the final status word and
// payload. A bad status word is not an error here, except for commands that
// abort on their own.
func (l *LedgerBitcoin) Exchange(ctx context.Context, cmd Command) (StatusWord, []byte, error) {
	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}
		apdu, err := cmd.EncodeNext(l.apduSize)
		if err != nil {
			return 0, nil, err
		}
		if apdu == nil {
			break
		}

		log.Debugf("=> [%d] %x", round, apdu)
		reply, err := l.device.Exchange(apdu)
		if err != nil {
			return 0, nil, fmt.Errorf("ledger: exchange failed: %w", err)
		}
		log.Debugf("<= [%d] %x", round, reply)

		if err := cmd.DecodeReply(reply); err != nil {
			return 0, nil, err
		}
	}

	sw, payload := cmd.IntoReply()
	return sw, payload, nil
}

// run exchanges cmd, fails on a bad status word and decodes the payload into resp.
func (l *LedgerBitcoin) run(ctx context.Context, cmd Command, resp Response) error {
	sw, payload, err := l.Exchange(ctx, cmd)
	if err != nil {
		return err
	}
	if !sw.OK() {
		return &StatusError{SW: sw}
	}
	if resp == nil {
		return nil
	}
	return resp.Decode(payload)
}

func (l *LedgerBitcoin) GetFirmwareVersion(ctx context.Context) (*FirmwareVersion, error) {
	var version FirmwareVersion
	if err := l.run(ctx, NewGetFirmwareVersion(), &version); err != nil {
		return nil, err
	}
	return &version, nil
}

func (l *LedgerBitcoin) GetWalletPublicKey(ctx context.Context, path Path) (*WalletPublicKey, error) {
	cmd, err := NewGetWalletPublicKey(path)
	if err != nil {
		return nil, err
	}
	var key WalletPublicKey
	if err := l.run(ctx, cmd, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// GetRandom returns count bytes from the device RNG.
func (l *LedgerBitcoin) GetRandom(ctx context.Context, count byte) ([]byte, error) {
	sw, payload, err := l.Exchange(ctx, NewGetRandom(count))
	if err != nil {
		return nil, err
	}
	if !sw.OK() {
		return nil, &StatusError{SW: sw}
	}
	return payload, nil
}

// SignMessage streams message to the device and asks the user to sign it
// with the key at path. An empty message is refused before any exchange.
func (l *LedgerBitcoin) SignMessage(ctx context.Context, path Path, message []byte) (*MessageSignature, error) {
	if len(message) == 0 {
		return nil, ErrEmptyMessage
	}
	prepare, err := NewSignMessagePrepare(path, message)
	if err != nil {
		return nil, err
	}
	if err := l.run(ctx, prepare, nil); err != nil {
		return nil, err
	}

	var sig MessageSignature
	if err := l.run(ctx, NewSignMessageSign(), &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

// GetTrustedInput asks the device to attest output vout of tx.
func (l *LedgerBitcoin) GetTrustedInput(ctx context.Context, tx *wire.MsgTx, vout uint32) (*TrustedInput, error) {
	cmd, err := NewGetTrustedInput(tx, vout, l.apduSize)
	if err != nil {
		return nil, err
	}
	var input TrustedInput
	if err := l.run(ctx, cmd, &input); err != nil {
		return nil, err
	}
	return &input, nil
}
