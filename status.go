// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

import "fmt"

// StatusWord is the two byte trailer of every reply from the device.
type StatusWord uint16

// Well known status words of the Bitcoin app.
const (
	SwOK                      StatusWord = 0x9000
	SwWrongLength             StatusWord = 0x6700
	SwSecurityStatus          StatusWord = 0x6982
	SwConditionsNotSatisfied  StatusWord = 0x6985
	SwInvalidData             StatusWord = 0x6a80
	SwNotFound                StatusWord = 0x6a82
	SwIncorrectP1P2           StatusWord = 0x6b00
	SwInstructionNotSupported StatusWord = 0x6d00
	SwClassNotSupported       StatusWord = 0x6e00
	SwTechnicalProblem        StatusWord = 0x6f00
)

var statusDescriptions = map[StatusWord]string{
	SwOK:                      "success",
	SwWrongLength:             "incorrect length",
	SwSecurityStatus:          "security status not satisfied",
	SwConditionsNotSatisfied:  "conditions of use not satisfied (denied by the user?)",
	SwInvalidData:             "invalid data",
	SwNotFound:                "file not found",
	SwIncorrectP1P2:           "incorrect parameter P1 or P2",
	SwInstructionNotSupported: "instruction not supported (is the Bitcoin app open?)",
	SwClassNotSupported:       "class not supported",
	SwTechnicalProblem:        "technical problem",
}

// OK reports whether the device accepted the command.
func (sw StatusWord) OK() bool {
	return sw == SwOK
}

func (sw StatusWord) String() string {
	if desc, ok := statusDescriptions[sw]; ok {
		return fmt.Sprintf("0x%04x (%s)", uint16(sw), desc)
	}
	return fmt.Sprintf("0x%04x", uint16(sw))
}

// splitStatus separates the payload of a raw reply from its trailing status word.
func splitStatus(reply []byte) ([]byte, StatusWord, error) {
	if len(reply) < 2 {
		return nil, 0, ErrUnexpectedEOF
	}
	n := len(reply) - 2
	sw := StatusWord(uint16(reply[n])<<8 | uint16(reply[n+1]))
	payload := make([]byte, n)
	copy(payload, reply[:n])
	return payload, sw, nil
}
