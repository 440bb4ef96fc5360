// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cppm

import (
	"testing"

	"periph.io/x/conn/v3/physic"
)

// fakePin records every level transition, for assertions.
type fakePin struct {
	levels []bool // true == high
}

func (p *fakePin) SetHigh() { p.levels = append(p.levels, true) }
func (p *fakePin) SetLow()  { p.levels = append(p.levels, false) }

// fakeTimer records every (re)start duration.
type fakeTimer struct {
	starts []physic.Duration
}

func (t *fakeTimer) Start(d physic.Duration) { t.starts = append(t.starts, d) }

func zeroFrame() Frame {
	return BuildFrame([ChannelCount]float32{}, identityUS)
}

func TestNewWriterDrivesPinHighImmediately(t *testing.T) {
	pin := &fakePin{}
	NewWriter[*fakePin, *fakeTimer](pin, zeroFrame())
	if len(pin.levels) != 1 || pin.levels[0] != true {
		t.Fatalf("levels = %v, want [true]", pin.levels)
	}
}

// TestOnTimerOneFullFrame drives the writer through exactly one complete
// CPPM frame: a separator and a rise for each of the 8 channels, followed
// by the padding separator and the padding rise. Tracing the transition
// table in OnTimer shows this takes 18 calls, not 17: the line starts high
// (not itself counted as an OnTimer emission), then alternates
// low,high,low,high,... for the 8 channels (16 calls), and only the 17th
// and 18th calls emit the padding's separator and its rise.
func TestOnTimerOneFullFrame(t *testing.T) {
	pin := &fakePin{}
	timer := &fakeTimer{}
	frame := BuildFrame([ChannelCount]float32{0, 1, 0, 1, 0, 1, 0, 1}, identityUS)
	w := NewWriter[*fakePin, *fakeTimer](pin, frame)

	for i := 0; i < 18; i++ {
		w.OnTimer(timer, frame)
	}

	lowCount, highCount := 0, 0
	for _, lvl := range pin.levels {
		if lvl {
			highCount++
		} else {
			lowCount++
		}
	}
	if lowCount != 9 {
		t.Errorf("lowCount = %d, want 9 (8 channel separators + 1 padding separator)", lowCount)
	}
	// +1 for the initial high drive from NewWriter, +1 for the padding rise.
	if highCount != 10 {
		t.Errorf("highCount = %d, want 10 (initial + 8 channel rises + 1 padding rise)", highCount)
	}
	if len(timer.starts) != 18 {
		t.Fatalf("len(timer.starts) = %d, want 18", len(timer.starts))
	}
	// Calls alternate separator, channel pulse, ...; the 18th call is the
	// frame-padding duration. The separator is always SepUS of real time,
	// independent of the conversion the frame was built with.
	sep := physic.Duration(SepUS) * physic.Microsecond
	for i := 0; i < 16; i += 2 {
		if timer.starts[i] != sep {
			t.Errorf("starts[%d] = %v, want separator %v", i, timer.starts[i], sep)
		}
	}
	if timer.starts[17] != frame.FramePadding {
		t.Errorf("starts[17] = %v, want frame padding %v", timer.starts[17], frame.FramePadding)
	}
	if w.Index() != 0 {
		t.Errorf("Index() = %d, want 0 after frame boundary", w.Index())
	}
}

func TestOnTimerSwapsFrameOnlyAtPaddingBoundary(t *testing.T) {
	pin := &fakePin{}
	timer := &fakeTimer{}
	first := BuildFrame([ChannelCount]float32{}, identityUS)
	second := BuildFrame([ChannelCount]float32{1, 1, 1, 1, 1, 1, 1, 1}, identityUS)
	w := NewWriter[*fakePin, *fakeTimer](pin, first)

	// Drive through all 8 channels of "first", always offering "second" as
	// next: the frame must not change until the padding-boundary tick.
	for i := 0; i < 16; i++ {
		w.OnTimer(timer, second)
		if w.current != first {
			t.Fatalf("frame swapped early at tick %d", i)
		}
	}
	// The 17th tick emits the padding's separator (still "first"'s
	// schedule, since current hasn't swapped yet); the 18th tick
	// (low->high at index==ChannelCount) swaps in "second".
	w.OnTimer(timer, second)
	if w.current != first {
		t.Fatalf("frame swapped on the padding separator tick, not the padding rise")
	}
	w.OnTimer(timer, second)
	if w.current != second {
		t.Fatalf("frame did not swap at the padding boundary")
	}
}

func TestOnTimerIndexAdvancesMonotonically(t *testing.T) {
	pin := &fakePin{}
	timer := &fakeTimer{}
	frame := zeroFrame()
	w := NewWriter[*fakePin, *fakeTimer](pin, frame)

	seen := []int{}
	for i := 0; i < 16; i++ {
		w.OnTimer(timer, frame)
		if !w.IsLow() {
			seen = append(seen, w.Index())
		}
	}
	want := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
	}
}
