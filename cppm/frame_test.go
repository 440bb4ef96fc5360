// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cppm

import (
	"testing"

	"periph.io/x/conn/v3/physic"
)

func identityUS(us int32) physic.Duration { return physic.Duration(us) }

func TestBuildFrameRoundTrip(t *testing.T) {
	channels := [ChannelCount]float32{0.0, 0.5, 1.0, 0.25, 0.75, 0.0, 1.0, 0.5}
	got := BuildFrame(channels, identityUS)

	want := [ChannelCount]physic.Duration{690, 1200, 1710, 945, 1455, 690, 1710, 1200}
	if got.Pulses != want {
		t.Fatalf("Pulses = %v, want %v", got.Pulses, want)
	}
	if got.FramePadding != 10000 {
		t.Fatalf("FramePadding = %v, want 10000", got.FramePadding)
	}
}

func TestBuildFrameDurationSumsToFramePeriod(t *testing.T) {
	cases := [][ChannelCount]float32{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		{0, 1, 0, 1, 0, 1, 0, 1},
		{0.1, 0.2, 0.3, 0.4, 0.6, 0.7, 0.8, 0.9},
	}
	for _, c := range cases {
		f := BuildFrame(c, identityUS)
		total := int32(f.FramePadding)
		for _, p := range f.Pulses {
			total += SepUS + int32(p)
		}
		if total != FrameUS {
			t.Errorf("channels %v: total = %d, want %d", c, total, FrameUS)
		}
		if f.FramePadding < 0 {
			t.Errorf("channels %v: negative frame padding %v", c, f.FramePadding)
		}
	}
}

func TestBuildFrameBoundaryValues(t *testing.T) {
	var minChannels, maxChannels [ChannelCount]float32
	for i := range maxChannels {
		maxChannels[i] = 1.0
	}
	min := BuildFrame(minChannels, identityUS)
	for i, p := range min.Pulses {
		if p != MinUS {
			t.Errorf("min channel %d = %v, want %d", i, p, MinUS)
		}
	}
	max := BuildFrame(maxChannels, identityUS)
	for i, p := range max.Pulses {
		if p != MaxUS {
			t.Errorf("max channel %d = %v, want %d", i, p, MaxUS)
		}
	}
	// Worst case padding is still non-negative: 8*(300+1710) = 16_080 <= 22_000.
	if max.FramePadding < 0 {
		t.Fatalf("all-max FramePadding = %v, want >= 0", max.FramePadding)
	}
}

func TestMicrosecondDurationConversion(t *testing.T) {
	var channels [ChannelCount]float32
	f := BuildFrame(channels, MicrosecondDuration)
	for i, p := range f.Pulses {
		want := physic.Duration(MinUS) * physic.Microsecond
		if p != want {
			t.Errorf("channel %d = %v, want %v", i, p, want)
		}
	}
}
