// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bridge

import (
	"testing"

	"github.com/airframe-go/rcbridge/cppm"
	"github.com/airframe-go/rcbridge/sbus"
	"github.com/airframe-go/rcbridge/spsc"
	"periph.io/x/conn/v3/physic"
)

type fakePin struct{ levels []bool }

func (p *fakePin) SetHigh() { p.levels = append(p.levels, true) }
func (p *fakePin) SetLow()  { p.levels = append(p.levels, false) }

// physicTimer records the number of (re)starts using the real
// physic.Duration type, matching cppm.Timer's signature exactly.
type physicTimer struct{ n int }

func (t *physicTimer) Start(_ physic.Duration) { t.n++ }

func newBridge(t *testing.T) (*Bridge[*fakePin, *physicTimer], *spsc.Queue[sbus.ByteResult], *spsc.Queue[sbus.RecoverableResult], *fakePin) {
	t.Helper()
	bytes := spsc.New[sbus.ByteResult](64)
	frames := spsc.New[sbus.RecoverableResult](8)
	pin := &fakePin{}
	b := New[*fakePin, *physicTimer](bytes, frames, pin, cppm.MicrosecondDuration)
	return b, bytes, frames, pin
}

func TestBridgeDeliversDecodedFrameToWriter(t *testing.T) {
	b, bytes, _, pin := newBridge(t)

	validFrame := append([]byte{sbus.Header}, make([]byte, sbus.ChannelBytes)...)
	for i := 1; i < sbus.ChannelBytes+1; i++ {
		validFrame[i] = 0xff // every channel at max
	}
	validFrame = append(validFrame, 0b0000_0011, sbus.Footer)

	for _, bb := range validFrame {
		if !bytes.TryPush(sbus.ByteResult{Byte: bb}) {
			t.Fatal("byte queue full")
		}
	}
	if err := b.PumpBytes(); err != nil {
		t.Fatalf("PumpBytes() = %v", err)
	}

	timer := &physicTimer{}
	before := len(pin.levels)
	b.OnTimerTick(timer)
	if len(pin.levels) != before+1 {
		t.Fatalf("OnTimerTick did not toggle the pin")
	}
	if b.lastGood.Pulses[0] != cppm.MicrosecondDuration(cppm.MaxUS) {
		t.Fatalf("lastGood.Pulses[0] = %v, want max pulse", b.lastGood.Pulses[0])
	}
}

func TestBridgeReusesLastGoodFrameWhenQueueEmpty(t *testing.T) {
	b, _, _, _ := newBridge(t)
	initial := b.lastGood

	timer := &physicTimer{}
	b.OnTimerTick(timer)
	if b.lastGood != initial {
		t.Fatalf("lastGood changed with no queued result")
	}
}

func TestBridgeReusesLastGoodOnHeaderError(t *testing.T) {
	b, bytes, _, _ := newBridge(t)
	bytes.TryPush(sbus.ByteResult{Byte: 0x42}) // not a header: MissingHeaderError
	if err := b.PumpBytes(); err != nil {
		t.Fatalf("PumpBytes() = %v", err)
	}

	initial := b.lastGood
	timer := &physicTimer{}
	b.OnTimerTick(timer)
	if b.lastGood != initial {
		t.Fatalf("lastGood changed on a frame-less recoverable error")
	}
}
