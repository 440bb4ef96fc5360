// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cppm

import "periph.io/x/conn/v3/physic"

// Frame is a precomputed schedule of timer durations for one CPPM frame:
// eight channel pulse widths and a terminal frame-padding pulse that brings
// the total frame to exactly FrameUS. The separator pulses between
// channels are always SepUS and are not stored; Writer reloads that
// constant directly as SepUS microseconds of physic.Duration, without the
// usToDuration conversion BuildFrame was given.
type Frame struct {
	Pulses       [ChannelCount]physic.Duration
	FramePadding physic.Duration
}

// BuildFrame maps eight normalized channel values into a Frame.
//
// Each channel value must lie in [0,1]; clamping values outside that range
// is the caller's responsibility, per the channel-builder contract. usToDuration
// converts a microsecond count into the caller's Duration representation —
// typically physic.Microsecond multiplication, or a fixed-point tick
// conversion for a specific hardware timer's prescaler, as long as the
// formula MinUS + round((MaxUS-MinUS)*c) is preserved bit-for-bit. Only the
// channel pulses and the frame padding pass through usToDuration; the
// separator Writer emits is always SepUS microseconds.
//
// The frame-padding duration is never negative: the worst case, all
// channels at 1.0, totals 8*(SepUS+MaxUS) = 16_080us, which is less than
// FrameUS.
func BuildFrame(channels [ChannelCount]float32, usToDuration func(us int32) physic.Duration) Frame {
	var f Frame
	var total int32
	for i, c := range channels {
		us := MinUS + int32(roundFloat32((MaxUS-MinUS)*c))
		f.Pulses[i] = usToDuration(us)
		total += SepUS + us
	}
	f.FramePadding = usToDuration(FrameUS - total)
	return f
}

// MicrosecondDuration is a ready-to-use usToDuration conversion for callers
// that want physic.Duration ticks directly in microseconds, i.e. running on
// a timer that counts real time rather than a hardware-specific prescaler.
func MicrosecondDuration(us int32) physic.Duration {
	return physic.Duration(us) * physic.Microsecond
}

// roundFloat32 rounds to the nearest integer, halfway cases away from
// zero — equivalent to Rust's f32::round used by the source this package's
// formula is bit-for-bit compatible with. Channel values are always
// non-negative after clamping, so only the positive-halfway case matters
// in practice.
func roundFloat32(v float32) float32 {
	if v >= 0 {
		return float32(int32(v + 0.5))
	}
	return float32(int32(v - 0.5))
}
