// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

// GetFirmwareVersion is the GET FIRMWARE VERSION command.
type GetFirmwareVersion struct {
	singleShot
}

func NewGetFirmwareVersion() *GetFirmwareVersion {
	return &GetFirmwareVersion{}
}

func (c *GetFirmwareVersion) EncodeNext(_ int) ([]byte, error) {
	return c.next([]byte{CLA, InsGetFirmwareVersion, 0x00, 0x00, 0x00}), nil
}

// FirmwareVersion is the reply to GET FIRMWARE VERSION.
type FirmwareVersion struct {
	// Compressed is set when the device uses compressed public keys.
	Compressed bool
	// HasScreenAndButtons is set when the device has its own user input.
	HasScreenAndButtons bool
	// ExternalScreenAndButtons is set when user input is taken externally.
	ExternalScreenAndButtons bool
	NFCPaymentExtension      bool
	BLELowPowerExtension     bool
	// TrustedExecution is set when running inside a Trusted Execution Environment.
	TrustedExecution bool

	Architecture byte
	Major        byte
	Minor        byte
	Patch        byte

	// Loader version, only reported by newer firmware.
	LoaderMajor *byte
	LoaderMinor *byte
}

// Decode implements Response.
func (v *FirmwareVersion) Decode(payload []byte) error {
	// Documented as 7 bytes, the Nano S and Blue append an eighth vestigial one.
	if len(payload) < 5 || len(payload) > 8 {
		return &ResponseLengthError{Ins: InsGetFirmwareVersion, Length: len(payload)}
	}

	flags := payload[0]
	*v = FirmwareVersion{
		Compressed:               flags&0x01 != 0,
		HasScreenAndButtons:      flags&0x02 != 0,
		ExternalScreenAndButtons: flags&0x04 != 0,
		NFCPaymentExtension:      flags&0x08 != 0,
		BLELowPowerExtension:     flags&0x10 != 0,
		TrustedExecution:         flags&0x20 != 0,
		Architecture:             payload[1],
		Major:                    payload[2],
		Minor:                    payload[3],
		Patch:                    payload[4],
	}
	if len(payload) >= 7 {
		major, minor := payload[5], payload[6]
		v.LoaderMajor, v.LoaderMinor = &major, &minor
	}
	return nil
}
