// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// Path is a BIP32 derivation path, one child index per level.
type Path []uint32

// ParsePath parses paths of the form m/44'/0'/0'/0/1. Hardened levels may be
// marked with ' or h.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "m")
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return Path{}, nil
	}

	parts := strings.Split(s, "/")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") {
			hardened = true
			part = part[:len(part)-1]
		}
		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ledger: invalid path component %q: %w", part, err)
		}
		if index >= uint64(hdkeychain.HardenedKeyStart) {
			return nil, fmt.Errorf("ledger: path component %q out of range", part)
		}
		if hardened {
			index += uint64(hdkeychain.HardenedKeyStart)
		}
		path = append(path, uint32(index))
	}
	return path, nil
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, index := range p {
		b.WriteByte('/')
		if index >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(index-hdkeychain.HardenedKeyStart), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(index), 10))
		}
	}
	return b.String()
}

// encodedLen is the size of the path on the wire: depth byte plus four bytes per level.
func (p Path) encodedLen() int {
	return 1 + 4*len(p)
}

// appendTo writes the depth byte followed by each index big endian.
func (p Path) appendTo(buf []byte) []byte {
	buf = append(buf, byte(len(p)))
	for _, index := range p {
		buf = binary.BigEndian.AppendUint32(buf, index)
	}
	return buf
}
