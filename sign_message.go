// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// SignMessagePrepare is the preparation phase of SIGN MESSAGE, streaming the
// message to the device in as many APDUs as needed.
type SignMessagePrepare struct {
	replyState
	sentLength int
	path       Path
	message    []byte
}

func NewSignMessagePrepare(path Path, message []byte) (*SignMessagePrepare, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	if len(message) > MaxMessageSize {
		return nil, ErrMessageTooLong
	}
	return &SignMessagePrepare{path: path, message: message}, nil
}

func (c *SignMessagePrepare) EncodeNext(apduSize int) ([]byte, error) {
	if c.sentLength == len(c.message) {
		return nil, nil
	}
	apduSize = effectiveSize(apduSize)

	if c.sentLength == 0 {
		// path plus the two byte message length
		initLen := c.path.encodedLen() + 2
		chunk := min(apduSize-apduHeaderSize-initLen, len(c.message))
		if chunk <= 0 {
			return nil, ErrPacketTooSmall
		}

		apdu := make([]byte, 0, apduHeaderSize+initLen+chunk)
		apdu = append(apdu, CLA, InsSignMessage, p1SignMessagePrepare, p2SignMessageFirst, byte(initLen+chunk))
		apdu = c.path.appendTo(apdu)
		apdu = binary.BigEndian.AppendUint16(apdu, uint16(len(c.message)))
		apdu = append(apdu, c.message[:chunk]...)
		c.sentLength += chunk
		return apdu, nil
	}

	chunk := min(apduSize-apduHeaderSize, len(c.message)-c.sentLength)
	if chunk <= 0 {
		return nil, ErrPacketTooSmall
	}
	apdu := make([]byte, 0, apduHeaderSize+chunk)
	apdu = append(apdu, CLA, InsSignMessage, p1SignMessagePrepare, p2SignMessageNext, byte(chunk))
	apdu = append(apdu, c.message[c.sentLength:c.sentLength+chunk]...)
	c.sentLength += chunk
	return apdu, nil
}

// DecodeReply rejects any payload and aborts on the first failing status word,
// unlike the other commands which only record it.
func (c *SignMessagePrepare) DecodeReply(reply []byte) error {
	payload, sw, err := splitStatus(reply)
	if err != nil {
		return err
	}
	if len(payload) > 0 {
		return ErrUnsupported
	}
	c.reply, c.sw = payload, sw
	if !sw.OK() {
		return &StatusError{SW: sw}
	}
	return nil
}

// SignMessageSign is the final phase of SIGN MESSAGE, asking the device to
// sign the prepared message.
type SignMessageSign struct {
	singleShot
}

func NewSignMessageSign() *SignMessageSign {
	return &SignMessageSign{}
}

func (c *SignMessageSign) EncodeNext(_ int) ([]byte, error) {
	// Lc of one and an empty user authentication field
	return c.next([]byte{CLA, InsSignMessage, p1SignMessageSign, 0x00, 0x01, 0x00}), nil
}

// MessageSignature is the reply to SignMessageSign: a DER signature whose
// first byte carries the parity of the nonce point in its low bit.
type MessageSignature struct {
	Signature *ecdsa.Signature
	Parity    byte
}

// Decode implements Response.
func (s *MessageSignature) Decode(payload []byte) error {
	if len(payload) < 1 {
		return ErrUnexpectedEOF
	}
	der := make([]byte, len(payload))
	copy(der, payload)
	parity := der[0] & 0x01
	der[0] &^= 0x01

	sig, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	s.Signature, s.Parity = sig, parity
	return nil
}
