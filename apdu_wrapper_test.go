// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapCommandAPDU(t *testing.T) {
	command := sequentialBytes(100)
	chunks, err := WrapCommandAPDU(Channel, command, PacketSize)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, []byte{0x01, 0x01, 0x05, 0x00, 0x00, 0x00, 100}, chunks[0][:7])
	assert.Equal(t, command[:57], chunks[0][7:])
	assert.Equal(t, []byte{0x01, 0x01, 0x05, 0x00, 0x01}, chunks[1][:5])
	assert.Equal(t, command[57:], chunks[1][5:5+43])
	for _, chunk := range chunks {
		assert.Len(t, chunk, PacketSize)
	}

	_, err = WrapCommandAPDU(Channel, command, 4)
	assert.Error(t, err)
}

func TestUnwrapResponseAPDU(t *testing.T) {
	reply := append(sequentialBytes(150), 0x90, 0x00)
	frames, err := WrapCommandAPDU(Channel, reply, PacketSize)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	var response []byte
	total := -1
	for i, frame := range frames {
		chunk, length, err := UnwrapResponseAPDU(Channel, uint16(i), frame)
		require.NoError(t, err)
		if i == 0 {
			total = length
		} else {
			assert.Equal(t, -1, length)
		}
		response = append(response, chunk...)
	}
	require.Equal(t, len(reply), total)
	assert.Equal(t, reply, response[:total])
}

func TestUnwrapResponseAPDUErrors(t *testing.T) {
	frames, err := WrapCommandAPDU(Channel, []byte{0x90, 0x00}, PacketSize)
	require.NoError(t, err)
	frame := frames[0]

	_, _, err = UnwrapResponseAPDU(Channel, 0, frame[:4])
	assert.ErrorIs(t, err, errFrameTooShort)
	_, _, err = UnwrapResponseAPDU(0x0202, 0, frame)
	assert.ErrorIs(t, err, errInvalidChannel)
	_, _, err = UnwrapResponseAPDU(Channel, 1, frame)
	assert.ErrorIs(t, err, errInvalidSequence)

	badTag := append([]byte(nil), frame...)
	badTag[2] = 0xbf
	_, _, err = UnwrapResponseAPDU(Channel, 0, badTag)
	assert.ErrorIs(t, err, errInvalidTag)
}
