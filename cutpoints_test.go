// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireSerializerCuts(t *testing.T) {
	tx := wire.NewMsgTx(1)
	prev := chainhash.DoubleHashH([]byte("prev"))
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prev, 0), sequentialBytes(10), nil))
	tx.AddTxOut(wire.NewTxOut(1000, sequentialBytes(5)))

	serTx, cuts, err := WireSerializer{}.SerializeWithCuts(tx, 100)
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, tx.SerializeNoWitness(&want))
	assert.Equal(t, want.Bytes(), serTx)

	assert.Equal(t, []int{
		0,
		5,  // version, input count
		42, // outpoint, script length
		56, // script, sequence
		57, // output count
		71, // value, script length, script
		75, // lock time
	}, cuts)
}

func TestWireSerializerFragmentBound(t *testing.T) {
	tx := testTransaction()
	var want bytes.Buffer
	require.NoError(t, tx.SerializeNoWitness(&want))

	for _, limit := range []int{minFragmentSize, 54, 90, 250} {
		serTx, cuts, err := WireSerializer{}.SerializeWithCuts(tx, limit)
		require.NoError(t, err)
		assert.Equal(t, want.Bytes(), serTx)

		require.Equal(t, 0, cuts[0])
		require.Equal(t, len(serTx), cuts[len(cuts)-1])
		for i := 1; i < len(cuts); i++ {
			require.Greater(t, cuts[i], cuts[i-1])
			assert.LessOrEqual(t, cuts[i]-cuts[i-1], limit, "fragment %d with limit %d", i, limit)
		}
	}
}

func TestWireSerializerSequenceOwnFragment(t *testing.T) {
	tx := wire.NewMsgTx(1)
	prev := chainhash.DoubleHashH([]byte("prev"))
	// script fills the fragment, the sequence cannot join it
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prev, 0), sequentialBytes(minFragmentSize), nil))

	_, cuts, err := WireSerializer{}.SerializeWithCuts(tx, minFragmentSize)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5, 42, 42 + minFragmentSize, 42 + minFragmentSize + 4, 42 + minFragmentSize + 5, 42 + minFragmentSize + 9}, cuts)
}

func TestWireSerializerTooSmall(t *testing.T) {
	_, _, err := WireSerializer{}.SerializeWithCuts(wire.NewMsgTx(1), minFragmentSize-1)
	assert.ErrorIs(t, err, ErrPacketTooSmall)
}
