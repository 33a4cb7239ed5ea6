// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

// GetRandom is the GET RANDOM command, asking the device for count random bytes.
type GetRandom struct {
	singleShot
	count byte
}

func NewGetRandom(count byte) *GetRandom {
	return &GetRandom{count: count}
}

func (c *GetRandom) EncodeNext(_ int) ([]byte, error) {
	return c.next([]byte{CLA, InsGetRandom, 0x00, 0x00, c.count}), nil
}
