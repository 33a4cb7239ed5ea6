// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compressed secp256k1 generator point
const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func walletPublicKeyPayload(t *testing.T, pubkey []byte, addr string, chainCode []byte) []byte {
	t.Helper()
	payload := []byte{byte(len(pubkey))}
	payload = append(payload, pubkey...)
	payload = append(payload, byte(len(addr)))
	payload = append(payload, addr...)
	return append(payload, chainCode...)
}

func generator(t *testing.T) []byte {
	t.Helper()
	g, err := hex.DecodeString(generatorHex)
	require.NoError(t, err)
	return g
}

func TestWalletPublicKeyDecode(t *testing.T) {
	payload := walletPublicKeyPayload(t, generator(t), "ab", make([]byte, 32))
	require.Len(t, payload, 2+33+2+32)

	var key WalletPublicKey
	require.NoError(t, key.Decode(payload))
	assert.Equal(t, "ab", key.Address)
	assert.Equal(t, [32]byte{}, key.ChainCode)
	assert.Equal(t, generator(t), key.PublicKey.SerializeCompressed())
}

func TestWalletPublicKeyUncompressed(t *testing.T) {
	g, err := btcec.ParsePubKey(generator(t))
	require.NoError(t, err)
	chainCode := make([]byte, 32)
	for i := range chainCode {
		chainCode[i] = byte(i)
	}

	payload := walletPublicKeyPayload(t, g.SerializeUncompressed(), "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2", chainCode)

	var key WalletPublicKey
	require.NoError(t, key.Decode(payload))
	assert.True(t, key.PublicKey.IsEqual(g))
	assert.Equal(t, chainCode, key.ChainCode[:])

	addr, err := key.DecodeAddress(&chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.IsType(t, &btcutil.AddressPubKeyHash{}, addr)
	assert.Equal(t, key.Address, addr.EncodeAddress())
}

func TestWalletPublicKeyWrongLength(t *testing.T) {
	payload := walletPublicKeyPayload(t, generator(t), "ab", make([]byte, 32))

	for _, p := range [][]byte{payload[:len(payload)-1], append(payload, 0x00)} {
		var key WalletPublicKey
		err := key.Decode(p)

		var lengthErr *ResponseLengthError
		require.True(t, errors.As(err, &lengthErr))
		assert.Equal(t, InsGetWalletPublicKey, lengthErr.Ins)
		assert.Equal(t, len(p), lengthErr.Length)
	}
}

func TestWalletPublicKeyTruncatedHeader(t *testing.T) {
	var key WalletPublicKey
	assert.ErrorIs(t, key.Decode(nil), ErrUnexpectedEOF)
	assert.ErrorIs(t, key.Decode([]byte{33, 0x02, 0x79}), ErrUnexpectedEOF)
}

func TestWalletPublicKeyInvalidKey(t *testing.T) {
	bad := generator(t)
	bad[0] = 0x05
	payload := walletPublicKeyPayload(t, bad, "ab", make([]byte, 32))

	var key WalletPublicKey
	assert.ErrorIs(t, key.Decode(payload), ErrInvalidPublicKey)
}

func TestWalletPublicKeyInvalidAddress(t *testing.T) {
	payload := walletPublicKeyPayload(t, generator(t), "\xff\xfe", make([]byte, 32))

	var key WalletPublicKey
	assert.ErrorIs(t, key.Decode(payload), ErrInvalidAddressEncoding)
}
