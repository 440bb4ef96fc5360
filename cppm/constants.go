// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package cppm builds and transmits Combined Pulse-Position-Modulation
// (CPPM) frames: a single-wire, time-multiplexed pulse train where each of
// eight channels is encoded as the interval between two rising edges.
//
// BuildFrame is the pure precomputation stage: channel values in [0,1] in,
// a fixed schedule of pulse durations out. Writer is the interrupt-time
// state machine that walks that schedule, toggling a GPIO pin once per
// timer expiry. Neither allocates after construction.
package cppm

// Timing constants, all expressed in microseconds, bit-exact with the CPPM
// wire format this package emits.
const (
	// FrameUS is the fixed duration of one complete CPPM frame.
	FrameUS = 22_000
	// SepUS is the duration of the low separator pulse preceding every
	// channel pulse and the frame-padding pulse.
	SepUS = 300
	// MinUS is the pulse width for a channel value of 0.0.
	MinUS = 690
	// MaxUS is the pulse width for a channel value of 1.0.
	MaxUS = 1710

	// ChannelCount is the number of channels encoded per CPPM frame.
	ChannelCount = 8
)
