// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// trustedInputOverhead is the header of the first GET TRUSTED INPUT packet,
// the big endian output index included.
const trustedInputOverhead = apduHeaderSize + 4

// GetTrustedInput is the GET TRUSTED INPUT command. The serialized
// transaction is streamed in as few APDUs as possible without ever splitting
// a fragment between two cut points.
type GetTrustedInput struct {
	replyState
	// Cuts already sent. One cut ahead is always looked at, so the last cut
	// marks the end of the transaction.
	sentCuts int
	serTx    []byte
	cuts     []int
	vout     uint32
}

// NewGetTrustedInput prepares an attestation request for output vout of tx,
// cutting the transaction with WireSerializer.
func NewGetTrustedInput(tx *wire.MsgTx, vout uint32, apduSize int) (*GetTrustedInput, error) {
	return NewGetTrustedInputWith(WireSerializer{}, tx, vout, apduSize)
}

// NewGetTrustedInputWith is NewGetTrustedInput with a custom serializer.
func NewGetTrustedInputWith(s CutPointSerializer, tx *wire.MsgTx, vout uint32, apduSize int) (*GetTrustedInput, error) {
	// Packets must stay strictly below apduSize, hence the extra byte.
	serTx, cuts, err := s.SerializeWithCuts(tx, effectiveSize(apduSize)-trustedInputOverhead-1)
	if err != nil {
		return nil, err
	}
	return NewGetTrustedInputFromCuts(serTx, cuts, vout)
}

// NewGetTrustedInputFromCuts builds the command from an already serialized
// transaction and its cut points.
func NewGetTrustedInputFromCuts(serTx []byte, cuts []int, vout uint32) (*GetTrustedInput, error) {
	if len(cuts) == 0 || cuts[0] != 0 || cuts[len(cuts)-1] != len(serTx) {
		return nil, ErrInvalidCuts
	}
	for i := 1; i < len(cuts); i++ {
		if cuts[i] <= cuts[i-1] {
			return nil, ErrInvalidCuts
		}
	}
	return &GetTrustedInput{serTx: serTx, cuts: cuts, vout: vout}, nil
}

func (c *GetTrustedInput) done() bool {
	return c.sentCuts == len(c.cuts)-1
}

func (c *GetTrustedInput) EncodeNext(apduSize int) ([]byte, error) {
	if c.done() {
		return nil, nil
	}
	apduSize = effectiveSize(apduSize)
	if apduSize <= trustedInputOverhead {
		return nil, ErrPacketTooSmall
	}

	// Lc is patched once the payload is known
	apdu := make([]byte, 0, apduSize)
	if c.sentCuts == 0 {
		apdu = append(apdu, CLA, InsGetTrustedInput, p1TrustedInputFirst, 0x00, 0x00)
		apdu = binary.BigEndian.AppendUint32(apdu, c.vout)
	} else {
		apdu = append(apdu, CLA, InsGetTrustedInput, p1TrustedInputNext, 0x00, 0x00)
	}

	packed := 0
	for !c.done() {
		from, to := c.cuts[c.sentCuts], c.cuts[c.sentCuts+1]
		if len(apdu)+to-from >= apduSize {
			break
		}
		apdu = append(apdu, c.serTx[from:to]...)
		c.sentCuts++
		packed++
	}
	if packed == 0 {
		return nil, ErrPacketTooSmall
	}

	apdu[4] = byte(len(apdu) - apduHeaderSize)
	return apdu, nil
}

// DecodeReply keeps the last reply only; the trusted input arrives with the
// final packet and the earlier replies are expected to be empty.
func (c *GetTrustedInput) DecodeReply(reply []byte) error {
	if err := c.replyState.DecodeReply(reply); err != nil {
		return err
	}
	if !c.done() && len(c.reply) > 0 {
		log.Debugf("Unexpected %d byte reply to intermediate GET TRUSTED INPUT packet", len(c.reply))
	}
	return nil
}

const (
	trustedInputSize  = 56
	trustedInputMagic = 0x32
)

// TrustedInput is the attestation returned by GET TRUSTED INPUT. Raw is what
// gets handed back to the device when spending the output.
type TrustedInput struct {
	Raw    []byte
	TxHash chainhash.Hash
	Index  uint32
	Amount btcutil.Amount
}

// Decode implements Response. The blob is laid out as
// [magic, flags, random(2), txid(32), index(LE32), amount(LE64), mac(8)].
func (t *TrustedInput) Decode(payload []byte) error {
	if len(payload) != trustedInputSize {
		return &ResponseLengthError{Ins: InsGetTrustedInput, Length: len(payload)}
	}
	if payload[0] != trustedInputMagic {
		return ErrUnsupported
	}

	t.Raw = append([]byte(nil), payload...)
	copy(t.TxHash[:], payload[4:36])
	t.Index = binary.LittleEndian.Uint32(payload[36:40])
	t.Amount = btcutil.Amount(binary.LittleEndian.Uint64(payload[40:48]))
	return nil
}
