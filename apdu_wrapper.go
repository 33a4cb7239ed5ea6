// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"encoding/binary"
	"errors"
)

const tagAPDU = 0x05

var (
	errFrameTooShort   = errors.New("ledger: hid frame too short")
	errInvalidChannel  = errors.New("ledger: hid frame on unexpected channel")
	errInvalidTag      = errors.New("ledger: hid frame has unexpected tag")
	errInvalidSequence = errors.New("ledger: hid frame out of sequence")
)

// WrapCommandAPDU turns the command into a sequence of fixed size packets for
// HID transport. Every frame starts with the channel, the APDU tag and a
// sequence number; the first one also carries the total command length.
func WrapCommandAPDU(channel uint16, command []byte, packetSize int) ([][]byte, error) {
	if packetSize < 8 {
		return nil, errors.New("packet size must be at least 8")
	}
	if len(command) > 0xffff {
		return nil, errors.New("command too long for hid framing")
	}

	data := binary.BigEndian.AppendUint16(nil, uint16(len(command)))
	data = append(data, command...)

	var chunks [][]byte
	for seq := uint16(0); len(data) > 0; seq++ {
		packet := make([]byte, packetSize)
		binary.BigEndian.PutUint16(packet[0:2], channel)
		packet[2] = tagAPDU
		binary.BigEndian.PutUint16(packet[3:5], seq)

		n := copy(packet[5:], data)
		data = data[n:]
		chunks = append(chunks, packet)
	}

	return chunks, nil
}

// UnwrapResponseAPDU strips the HID framing from one response frame. seq is
// the sequence number the caller expects next. The first frame also yields the
// total response length, later frames report -1.
func UnwrapResponseAPDU(channel uint16, seq uint16, packet []byte) ([]byte, int, error) {
	if len(packet) < 5 {
		return nil, 0, errFrameTooShort
	}
	if binary.BigEndian.Uint16(packet[0:2]) != channel {
		return nil, 0, errInvalidChannel
	}
	if packet[2] != tagAPDU {
		return nil, 0, errInvalidTag
	}
	if binary.BigEndian.Uint16(packet[3:5]) != seq {
		return nil, 0, errInvalidSequence
	}

	if seq != 0 {
		return packet[5:], -1, nil
	}
	if len(packet) < 7 {
		return nil, 0, errFrameTooShort
	}
	return packet[7:], int(binary.BigEndian.Uint16(packet[5:7])), nil
}
