// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sbus

import "github.com/airframe-go/rcbridge/spsc"

// stateTag discriminates decoderState. decoderState is a tagged variant
// with inline payload, not an interface/subclass hierarchy: only one of the
// payload fields below is meaningful for a given tag, matching the
// WaitForHeader | Channel(buf) | WaitForFooter(result) | Recover shape of
// the protocol.
type stateTag uint8

const (
	stateWaitForHeader stateTag = iota
	stateChannel
	stateWaitForFooter
	stateRecover
)

type decoderState struct {
	tag stateTag

	// Valid when tag == stateChannel. buf holds the payload bytes seen
	// so far; len is always <= ChannelBytes.
	buf [ChannelBytes]byte
	len int

	// Valid when tag == stateWaitForFooter: the frame or recoverable
	// error already computed from the payload and digital byte, held
	// until the footer byte confirms or rejects the frame.
	pending RecoverableResult
}

// Decoder is the SBUS protocol state machine. It owns no peripheral; it
// only drains a byte queue and fills a frame queue, so it can be tested,
// and driven, without any hardware at all.
//
// A Decoder is not safe for concurrent use; it is intended to be driven
// from a single task or interrupt context, per the SPSC contract on its
// queues.
type Decoder struct {
	bytes  *spsc.Queue[ByteResult]
	frames *spsc.Queue[RecoverableResult]
	state  decoderState
}

// NewDecoder constructs a Decoder reading transport bytes from bytes and
// emitting decoded frames and recoverable errors to frames. The decoder
// starts in the WaitForHeader state.
func NewDecoder(bytes *spsc.Queue[ByteResult], frames *spsc.Queue[RecoverableResult]) *Decoder {
	return &Decoder{bytes: bytes, frames: frames}
}

// Process drains every byte currently available on the input queue,
// advancing the protocol state machine one byte at a time.
//
// Process never blocks waiting for more input; it returns nil once the
// input queue is empty. It returns a non-nil error only when the decoder
// cannot continue without external intervention: either the frame output
// queue was full when the decoder needed to emit (FrameQueueFullError), or
// the payload buffer was pushed past its static capacity
// (BufferFullError, which indicates a bug rather than a protocol event).
// In both cases the decoder forces its state to recovery before returning,
// so resuming Process after the caller has drained the frame queue does
// not silently treat mid-frame bytes as a new header.
func (d *Decoder) Process() error {
	for {
		br, ok := d.bytes.TryPop()
		if !ok {
			return nil
		}
		if br.Err != nil {
			d.state = decoderState{tag: stateRecover}
			if err := d.emit(RecoverableResult{Err: ByteReadError{Err: br.Err}}); err != nil {
				return err
			}
			continue
		}

		var err error
		switch d.state.tag {
		case stateWaitForHeader:
			err = d.waitForHeader(br.Byte)
		case stateChannel:
			err = d.channelByte(br.Byte)
		case stateWaitForFooter:
			err = d.waitForFooter(br.Byte)
		case stateRecover:
			d.recoverByte(br.Byte)
		}
		if err != nil {
			return err
		}
	}
}

func (d *Decoder) waitForHeader(b byte) error {
	if b == Header {
		d.state = decoderState{tag: stateChannel}
		return nil
	}
	d.state = decoderState{tag: stateRecover}
	return d.emit(RecoverableResult{Err: MissingHeaderError{}})
}

func (d *Decoder) channelByte(b byte) error {
	if d.state.len < ChannelBytes {
		// The array backing buf is exactly ChannelBytes long, so this
		// write can never run past its capacity; the bounds check
		// exists only to turn the state machine's own invariant
		// violation into the documented FatalError instead of a
		// panic, should that invariant ever be broken by a future
		// change to the transition table above.
		if d.state.len >= len(d.state.buf) {
			d.state = decoderState{tag: stateRecover}
			return BufferFullError{Byte: b}
		}
		d.state.buf[d.state.len] = b
		d.state.len++
		return nil
	}

	// b is the trailing digital/flags byte: exactly ChannelBytes payload
	// bytes have been consumed, so decode channels and flags now and
	// move to WaitForFooter carrying the already-computed result.
	var frame Frame
	channels := decodeChannels(&d.state.buf)
	frame.Channels = channels
	failsafe, frameLost := decodeDigitalByte(&frame, b)

	result := RecoverableResult{Frame: frame}
	switch {
	case failsafe:
		result.Err = FailsafeError{Frame: frame}
	case frameLost:
		result.Err = FrameLostError{Frame: frame}
	}

	d.state = decoderState{tag: stateWaitForFooter, pending: result}
	return nil
}

func (d *Decoder) waitForFooter(b byte) error {
	pending := d.state.pending
	if b == Footer {
		d.state = decoderState{tag: stateWaitForHeader}
		return d.emit(pending)
	}
	d.state = decoderState{tag: stateRecover}
	return d.emit(RecoverableResult{Err: MissingFooterError{}})
}

func (d *Decoder) recoverByte(b byte) {
	if b == Footer {
		d.state = decoderState{tag: stateWaitForHeader}
	}
	// Any other byte: stay in Recover. An 0x0f here is not trusted as a
	// header, since 0x0f can legitimately appear inside a 23-byte
	// payload and SBUS carries no checksum to disambiguate.
}

func (d *Decoder) emit(r RecoverableResult) error {
	if !d.frames.TryPush(r) {
		d.state = decoderState{tag: stateRecover}
		return FrameQueueFullError{Pending: r}
	}
	return nil
}
