// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/wire"
)

// CutPointSerializer serializes a transaction and reports where it may be
// split across APDUs.
//
// The returned cuts start at 0, strictly increase and end at len(serialized).
// No two consecutive cuts are further apart than maxFragment, and no cut falls
// inside a field the device must receive in one piece.
type CutPointSerializer interface {
	SerializeWithCuts(tx *wire.MsgTx, maxFragment int) (serialized []byte, cuts []int, err error)
}

// minFragmentSize fits the largest atomic field: an outpoint and a nine byte varint.
const minFragmentSize = 32 + 4 + 9

// WireSerializer cuts the legacy (witness free) serialization of a btcd
// transaction the way the Bitcoin app parses it in GET TRUSTED INPUT.
type WireSerializer struct{}

var _ CutPointSerializer = WireSerializer{}

func (WireSerializer) SerializeWithCuts(tx *wire.MsgTx, maxFragment int) ([]byte, []int, error) {
	if maxFragment < minFragmentSize {
		return nil, nil, ErrPacketTooSmall
	}

	w := &cutWriter{max: maxFragment, cuts: []int{0}}
	w.putUint32(uint32(tx.Version))
	w.varInt(len(tx.TxIn))
	w.cut()

	for _, in := range tx.TxIn {
		w.write(in.PreviousOutPoint.Hash[:])
		w.putUint32(in.PreviousOutPoint.Index)
		w.varInt(len(in.SignatureScript))
		w.cut()

		sequence := binary.LittleEndian.AppendUint32(nil, in.Sequence)
		w.chunked(in.SignatureScript, sequence)
	}

	w.varInt(len(tx.TxOut))
	w.cut()
	for _, out := range tx.TxOut {
		w.putUint64(uint64(out.Value))
		w.varInt(len(out.PkScript))
		if w.pending()+len(out.PkScript) <= w.max {
			w.write(out.PkScript)
			w.cut()
			continue
		}
		w.cut()
		w.chunked(out.PkScript, nil)
	}

	w.putUint32(tx.LockTime)
	w.cut()
	return w.buf.Bytes(), w.cuts, nil
}

type cutWriter struct {
	buf  bytes.Buffer
	cuts []int
	max  int
}

func (w *cutWriter) write(p []byte) {
	w.buf.Write(p)
}

func (w *cutWriter) putUint32(v uint32) {
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}

func (w *cutWriter) putUint64(v uint64) {
	w.buf.Write(binary.LittleEndian.AppendUint64(nil, v))
}

func (w *cutWriter) varInt(n int) {
	// bytes.Buffer never fails a write
	_ = wire.WriteVarInt(&w.buf, wire.ProtocolVersion, uint64(n))
}

// pending is the size of the fragment written since the last cut.
func (w *cutWriter) pending() int {
	return w.buf.Len() - w.cuts[len(w.cuts)-1]
}

func (w *cutWriter) cut() {
	if w.pending() > 0 {
		w.cuts = append(w.cuts, w.buf.Len())
	}
}

// chunked writes data in fragments of at most max bytes. trailer is glued to
// the last fragment when it fits and gets a fragment of its own otherwise.
func (w *cutWriter) chunked(data, trailer []byte) {
	for len(data) > 0 {
		n := min(w.max, len(data))
		w.write(data[:n])
		data = data[n:]
		if len(data) == 0 && trailer != nil && n+len(trailer) <= w.max {
			w.write(trailer)
			trailer = nil
		}
		w.cut()
	}
	if trailer != nil {
		w.write(trailer)
		w.cut()
	}
}
