// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF is returned when a reply is too short to hold what it must.
	ErrUnexpectedEOF = errors.New("ledger: unexpected end of reply")
	// ErrUnsupported is returned when the device replies with data where none is expected.
	ErrUnsupported = errors.New("ledger: unsupported reply")

	ErrInvalidPublicKey       = errors.New("ledger: invalid public key")
	ErrInvalidAddressEncoding = errors.New("ledger: address is not valid text")
	ErrInvalidSignature       = errors.New("ledger: invalid signature")

	ErrPathTooLong    = fmt.Errorf("ledger: bip32 path deeper than %d", MaxPathDepth)
	ErrMessageTooLong = fmt.Errorf("ledger: message longer than %d bytes", MaxMessageSize)
	ErrEmptyMessage   = errors.New("ledger: nothing to sign")
	// ErrPacketTooSmall is returned when the packet size leaves no room for progress.
	ErrPacketTooSmall = errors.New("ledger: apdu size too small")
	ErrInvalidCuts    = errors.New("ledger: invalid transaction cut points")
)

// ResponseLengthError is returned when a decoded reply does not have the
// length its instruction requires.
type ResponseLengthError struct {
	Ins    byte
	Length int
}

func (e *ResponseLengthError) Error() string {
	return fmt.Sprintf("ledger: reply to instruction 0x%02x has wrong length %d", e.Ins, e.Length)
}

// StatusError is a non-success status word reported by the device.
type StatusError struct {
	SW StatusWord
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ledger: bad status %s", e.SW)
}

// IsStatus checks whether err is a StatusError carrying sw.
func IsStatus(err error, sw StatusWord) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.SW == sw
	}
	return false
}
