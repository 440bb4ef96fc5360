// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bridge wires an sbus.Decoder to a cppm.Writer through the SPSC
// queues both expect, playing the role of the task scheduler and timer
// interrupt that the sbus and cppm packages deliberately leave external.
//
// Nothing in this package is part of the CORE protocol logic; it exists so
// the CORE can be driven end-to-end, in tests or against real hardware
// adapters (see hostgpio, ftdigpio, sysfsgpio, serialuart), instead of only
// through sbus and cppm's own unit tests.
package bridge

import (
	"errors"

	"github.com/airframe-go/rcbridge/cppm"
	"github.com/airframe-go/rcbridge/sbus"
	"github.com/airframe-go/rcbridge/spsc"
	"periph.io/x/conn/v3/physic"
)

// Bridge owns one sbus.Decoder and one cppm.Writer and moves decoded SBUS
// frames onto the CPPM schedule. It is generic over the GPIO pin and timer
// capability types, exactly as cppm.Writer is.
type Bridge[P cppm.Pin, T cppm.Timer] struct {
	decoder      *sbus.Decoder
	writer       *cppm.Writer[P, T]
	frames       *spsc.Queue[sbus.RecoverableResult]
	usToDuration func(us int32) physic.Duration
	lastGood     cppm.Frame
}

// New constructs a Bridge reading SBUS bytes from bytes, decoding onto
// frames, and driving pin. usToDuration converts a microsecond count into
// the caller's Duration representation for the CPPM schedule; pass
// cppm.MicrosecondDuration for real-time microsecond ticks.
func New[P cppm.Pin, T cppm.Timer](
	bytes *spsc.Queue[sbus.ByteResult],
	frames *spsc.Queue[sbus.RecoverableResult],
	pin P,
	usToDuration func(us int32) physic.Duration,
) *Bridge[P, T] {
	initial := cppm.BuildFrame([cppm.ChannelCount]float32{}, usToDuration)
	return &Bridge[P, T]{
		decoder:      sbus.NewDecoder(bytes, frames),
		writer:       cppm.NewWriter[P, T](pin, initial),
		frames:       frames,
		usToDuration: usToDuration,
		lastGood:     initial,
	}
}

// PumpBytes is the main-loop-task collaborator: it drains every byte
// currently queued from the UART side, decoding as many SBUS frames as are
// available. It should be called whenever the byte queue is known to be
// non-empty; it never blocks. A non-nil return is always a fatal decoder
// error — the caller must drain the frame queue before calling PumpBytes
// again, exactly as sbus.Decoder.Process documents.
func (b *Bridge[P, T]) PumpBytes() error {
	return b.decoder.Process()
}

// OnTimerTick is the timer-interrupt collaborator: call it once per timer
// expiry. It pops the oldest queued decoder result, if any (one result
// per call), converts it to a CPPM schedule, and advances the writer. If the queue is
// empty, or the popped result carries no frame (a framing error with
// nothing to fall back on), the previously transmitted frame is reused so
// CPPM output never stalls waiting on SBUS.
func (b *Bridge[P, T]) OnTimerTick(timer T) {
	next := b.lastGood
	if r, ok := b.frames.TryPop(); ok {
		if frame, ok := usableFrame(r); ok {
			next = cppm.BuildFrame(channelsToPPM(frame), b.usToDuration)
		}
	}
	b.lastGood = next
	b.writer.OnTimer(timer, next)
}

// usableFrame extracts a Frame from a RecoverableResult, whether it
// succeeded outright or carries a frame alongside a failsafe/frame-lost
// flag. Protocol errors with no associated frame (missing header, missing
// footer, a transport read error) report ok=false.
func usableFrame(r sbus.RecoverableResult) (sbus.Frame, bool) {
	if r.Ok() {
		return r.Frame, true
	}
	var fs sbus.FailsafeError
	if errors.As(r.Err, &fs) {
		return fs.Frame, true
	}
	var fl sbus.FrameLostError
	if errors.As(r.Err, &fl) {
		return fl.Frame, true
	}
	return sbus.Frame{}, false
}

// channelsToPPM maps the first cppm.ChannelCount SBUS proportional channels
// onto normalized [0,1] CPPM channel values. SBUS carries 16 proportional
// channels; CPPM's 8-channel frame can only carry the first 8 of them.
func channelsToPPM(f sbus.Frame) [cppm.ChannelCount]float32 {
	var out [cppm.ChannelCount]float32
	for i := range out {
		out[i] = float32(f.Channels[i]) / float32(sbus.ChannelMax)
	}
	return out
}
