// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

// Instruction class of the Bitcoin app on the Ledger, same for every APDU.
const CLA byte = 0xe0

// APDU instructions understood by the Bitcoin app.
// https://ledgerhq.github.io/btchip-doc/bitcoin-technical-beta.html
const (
	InsGetWalletPublicKey byte = 0x40 // Returns the public key, address and chain code of a BIP32 path
	InsGetTrustedInput    byte = 0x42 // Returns an attestation of a previous transaction output
	InsSignMessage        byte = 0x4e // Prepares and signs a personal message
	InsGetRandom          byte = 0xc0 // Returns random bytes from the device RNG
	InsGetFirmwareVersion byte = 0xc4 // Returns the firmware feature flags and version
)

// P1/P2 values used by the multi part commands.
const (
	p1SignMessagePrepare byte = 0x00 // Preparing the message
	p1SignMessageSign    byte = 0x80 // Signing the prepared message
	p2SignMessageFirst   byte = 0x01 // First part of the message
	p2SignMessageNext    byte = 0x80 // Subsequent part of the message

	p1TrustedInputFirst byte = 0x00 // First transaction block
	p1TrustedInputNext  byte = 0x80 // Subsequent transaction block
)

const (
	// apduHeaderSize is CLA, INS, P1, P2 and Lc.
	apduHeaderSize = 5
	// MaxAPDUSize is the largest packet a short APDU can carry.
	MaxAPDUSize = apduHeaderSize + 255
	// MaxPathDepth is the deepest BIP32 path the Nano S accepts.
	MaxPathDepth = 10
	// MaxMessageSize is bounded by the 16 bit length field of SIGN MESSAGE.
	MaxMessageSize = 0xffff
)
