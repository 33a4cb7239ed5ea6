// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_btc

// Command is a request to the device that may span several APDUs.
//
// A driver calls EncodeNext until it returns a nil packet, sending each packet
// and feeding the raw reply to DecodeReply before asking for the next one.
// IntoReply is then called once to collect the result.
type Command interface {
	// EncodeNext returns the next APDU, at most apduSize bytes long, or nil
	// once the whole request has been sent.
	EncodeNext(apduSize int) ([]byte, error)
	// DecodeReply consumes the raw reply, status word included, to the packet
	// just sent.
	DecodeReply(reply []byte) error
	// IntoReply returns the final status word and assembled payload. The
	// command must not be used afterwards.
	IntoReply() (StatusWord, []byte)
}

// Response is a typed reply decoded from a payload whose status word has
// already been removed.
type Response interface {
	Decode(payload []byte) error
}

// replyState is the reply bookkeeping shared by every command.
type replyState struct {
	reply []byte
	sw    StatusWord
}

func (r *replyState) DecodeReply(reply []byte) error {
	payload, sw, err := splitStatus(reply)
	if err != nil {
		return err
	}
	r.reply, r.sw = payload, sw
	return nil
}

func (r *replyState) IntoReply() (StatusWord, []byte) {
	reply := r.reply
	r.reply = nil
	return r.sw, reply
}

// singleShot is a command that fits in one fixed APDU.
type singleShot struct {
	replyState
	sent bool
}

func (s *singleShot) next(apdu []byte) []byte {
	if s.sent {
		return nil
	}
	s.sent = true
	return apdu
}

func checkPath(path Path) error {
	if len(path) > MaxPathDepth {
		return ErrPathTooLong
	}
	return nil
}

// effectiveSize clamps the caller's packet size to what a short APDU allows.
func effectiveSize(apduSize int) int {
	if apduSize > MaxAPDUSize {
		return MaxAPDUSize
	}
	return apduSize
}
