// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sbus

import "fmt"

// ByteResult is one element of the decoder's byte input queue: either a
// transport byte, or the transport-level error that replaced it.
type ByteResult struct {
	Byte byte
	Err  error
}

// RecoverableResult is one element of the decoder's frame output queue: a
// successfully decoded Frame, or a RecoverableError describing why this
// slot did not contain one.
type RecoverableResult struct {
	Frame Frame
	Err   error
}

// Ok reports whether r carries a usable Frame.
func (r RecoverableResult) Ok() bool {
	return r.Err == nil
}

// MissingHeaderError reports that a byte expected to be the SBUS header
// (0x0f) was something else.
type MissingHeaderError struct{}

func (MissingHeaderError) Error() string { return "sbus: expected header byte, got something else" }

// MissingFooterError reports that a byte expected to be the SBUS footer
// (0x00) was something else. The decoder enters recovery.
type MissingFooterError struct{}

func (MissingFooterError) Error() string { return "sbus: expected footer byte, got something else" }

// FailsafeError wraps a syntactically valid Frame that was received with
// the failsafe flag set. The frame is preserved so the consumer, not the
// decoder, decides whether to act on or discard it.
type FailsafeError struct {
	Frame Frame
}

func (FailsafeError) Error() string { return "sbus: frame received under failsafe" }

// FrameLostError wraps a syntactically valid Frame received with the
// frame-lost flag set (digital byte bit 3). This is a design extension past
// the original protocol handling: see the frame-lost REDESIGN note.
type FrameLostError struct {
	Frame Frame
}

func (FrameLostError) Error() string { return "sbus: frame received with frame-lost flag set" }

// ByteReadError wraps a transport-level error reported alongside a byte on
// the input queue.
type ByteReadError struct {
	Err error
}

func (e ByteReadError) Error() string { return fmt.Sprintf("sbus: byte read error: %v", e.Err) }
func (e ByteReadError) Unwrap() error { return e.Err }

// FrameQueueFullError is a FatalError: the decoder could not push a message
// onto the frame output queue because it is at capacity. Pending holds the
// message that could not be delivered, so nothing is silently dropped; the
// caller must drain the queue and call Decoder.Process again.
type FrameQueueFullError struct {
	Pending RecoverableResult
}

func (FrameQueueFullError) Error() string { return "sbus: frame output queue is full" }

// BufferFullError is a FatalError indicating the payload buffer was asked
// to grow past its 22-byte static capacity. This should never happen; the
// state machine is designed to never attempt a 23rd payload push, so seeing
// this indicates a logic bug.
type BufferFullError struct {
	Byte byte
}

func (BufferFullError) Error() string { return "sbus: payload buffer overflow" }
