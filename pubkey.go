// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"fmt"
	"unicode/utf8"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// GetWalletPublicKey is the GET WALLET PUBLIC KEY command.
type GetWalletPublicKey struct {
	singleShot
	path Path
}

// NewGetWalletPublicKey fails with ErrPathTooLong for paths the device cannot derive.
func NewGetWalletPublicKey(path Path) (*GetWalletPublicKey, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	return &GetWalletPublicKey{path: path}, nil
}

func (c *GetWalletPublicKey) EncodeNext(_ int) ([]byte, error) {
	if c.sent {
		return nil, nil
	}
	apdu := make([]byte, 0, apduHeaderSize+c.path.encodedLen())
	apdu = append(apdu, CLA, InsGetWalletPublicKey, 0x00, 0x00, byte(c.path.encodedLen()))
	apdu = c.path.appendTo(apdu)
	return c.next(apdu), nil
}

const chainCodeSize = 32

// WalletPublicKey is the reply to GET WALLET PUBLIC KEY.
type WalletPublicKey struct {
	PublicKey *btcec.PublicKey
	// Address is the base58 address of the key as shown by the device.
	Address   string
	ChainCode [chainCodeSize]byte
}

// Decode implements Response. The payload is laid out as
// [pkLen, pk, addrLen, addr, chaincode(32)].
func (k *WalletPublicKey) Decode(payload []byte) error {
	if len(payload) < 1 {
		return ErrUnexpectedEOF
	}
	pkLen := int(payload[0])
	if 2+pkLen > len(payload) {
		return ErrUnexpectedEOF
	}
	addrLen := int(payload[1+pkLen])
	if 2+pkLen+addrLen+chainCodeSize != len(payload) {
		return &ResponseLengthError{Ins: InsGetWalletPublicKey, Length: len(payload)}
	}

	pk, err := btcec.ParsePubKey(payload[1 : 1+pkLen])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	addr := payload[2+pkLen : 2+pkLen+addrLen]
	if !utf8.Valid(addr) {
		return ErrInvalidAddressEncoding
	}

	k.PublicKey = pk
	k.Address = string(addr)
	copy(k.ChainCode[:], payload[2+pkLen+addrLen:])
	return nil
}

// DecodeAddress parses the device supplied address for the given network.
func (k *WalletPublicKey) DecodeAddress(params *chaincfg.Params) (btcutil.Address, error) {
	return btcutil.DecodeAddress(k.Address, params)
}
