// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cppm

import "periph.io/x/conn/v3/physic"

// Pin is the GPIO capability cppm.Writer needs: an infallible output pin
// that can be driven high or low. It is intentionally narrower than
// periph.io/x/conn/v3/gpio.PinOut, which can fail and carries PWM/In
// methods Writer has no use for.
type Pin interface {
	SetHigh()
	SetLow()
}

// Timer is the count-down timer capability cppm.Writer needs: start (or
// restart) a one-shot countdown for the given duration. Expiry is
// delivered by the caller invoking Writer.OnTimer, not through this
// interface.
type Timer interface {
	Start(d physic.Duration)
}

// Writer is the CPPM transmit state machine. It is generic over the
// concrete Pin and Timer types so that, on a build where those are
// zero-cost peripheral wrappers, OnTimer compiles down to direct calls
// with no interface dispatch.
//
// The zero value is not usable; construct with NewWriter.
type Writer[P Pin, T Timer] struct {
	pin     P
	index   int
	isLow   bool
	current Frame
}

// NewWriter constructs a Writer that immediately drives pin high and will,
// on its first OnTimer call, begin the first channel's separator pulse.
// initial is the frame transmitted before any call to OnTimer supplies a
// next frame; it is typically a zeroed-channel frame.
func NewWriter[P Pin, T Timer](pin P, initial Frame) *Writer[P, T] {
	pin.SetHigh()
	return &Writer[P, T]{pin: pin, current: initial}
}

// OnTimer is the timer-expiry handler: call it exactly once per timer
// event. It toggles the pin, reloads timer with the next interval, and
// advances the schedule per the CPPM waveform:
//
//   - line is high: drop to low for SepUS.
//   - line is low, index < ChannelCount: rise for current.Pulses[index],
//     then advance index.
//   - line is low, index == ChannelCount: rise for
//     current.FramePadding, adopt next as the frame for the following
//     cycle, and reset index to 0.
//
// OnTimer must complete in far less than SepUS of wall-clock time, since
// that is the shortest interval between two calls.
func (w *Writer[P, T]) OnTimer(timer T, next Frame) {
	if !w.isLow {
		timer.Start(physic.Duration(SepUS) * physic.Microsecond)
		w.pin.SetLow()
		w.isLow = true
		return
	}

	w.pin.SetHigh()
	if w.index == ChannelCount {
		timer.Start(w.current.FramePadding)
		w.current = next
		w.index = 0
	} else {
		timer.Start(w.current.Pulses[w.index])
		w.index++
	}
	w.isLow = false
}

// Index reports the next channel index within the current frame, 0..=8.
// Exposed for tests and diagnostics; the CORE never reads it.
func (w *Writer[P, T]) Index() int { return w.index }

// IsLow reports whether the pin is currently being held low.
func (w *Writer[P, T]) IsLow() bool { return w.isLow }
