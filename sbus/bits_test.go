// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sbus

import "testing"

// alternatingMaxMinPayload is the 22-byte payload used throughout the
// protocol tests: channels alternate between the maximum 11-bit value
// (2047) and the minimum (0).
var alternatingMaxMinPayload = [ChannelBytes]byte{
	0b1111_1110,
	0b0000_0111,
	0b1100_0000,
	0b1111_1111,
	0b0000_0001,
	0b1111_0000,
	0b0111_1111,
	0b0000_0000,
	0b1111_1100,
	0b0001_1111,
	0b0000_0000,
	0b1111_1111,
	0b0000_0111,
	0b1100_0000,
	0b1111_1111,
	0b0000_0001,
	0b1111_0000,
	0b0111_1111,
	0b0000_0000,
	0b1111_1100,
	0b0001_1111,
	0b0000_0000,
}

func TestDecodeChannelsAlternatingMaxMin(t *testing.T) {
	got := decodeChannels(&alternatingMaxMinPayload)
	want := [ChannelCount]uint16{
		0b111_1111_1110, 0,
		0b111_1111_1111, 0,
		0b111_1111_1111, 0,
		0b111_1111_1111, 0,
		0b111_1111_1111, 0,
		0b111_1111_1111, 0,
		0b111_1111_1111, 0,
		0b111_1111_1111, 0,
	}
	if got != want {
		t.Fatalf("decodeChannels() = %v, want %v", got, want)
	}
}

func TestDecodeChannelsAllZero(t *testing.T) {
	var payload [ChannelBytes]byte
	got := decodeChannels(&payload)
	for i, v := range got {
		if v != 0 {
			t.Errorf("channel %d = %d, want 0", i, v)
		}
	}
}

func TestDecodeChannelsAllOnes(t *testing.T) {
	var payload [ChannelBytes]byte
	for i := range payload {
		payload[i] = 0xff
	}
	got := decodeChannels(&payload)
	for i, v := range got {
		if v != ChannelMax {
			t.Errorf("channel %d = %d, want %d", i, v, ChannelMax)
		}
	}
}

// TestDecodeChannelsRoundTrip packs each of 16 channels with its own
// distinguishable 11-bit value and checks that decoding produces exactly
// that sequence, exercising every possible first_shift (channel*11 mod 8)
// at least twice across the frame.
func TestDecodeChannelsRoundTrip(t *testing.T) {
	var want [ChannelCount]uint16
	for k := range want {
		want[k] = uint16((k*131 + 7) % (ChannelMax + 1))
	}

	var payload [ChannelBytes]byte
	for k, v := range want {
		offset := 11 * k
		for bit := 0; bit < 11; bit++ {
			if v&(1<<uint(bit)) == 0 {
				continue
			}
			absBit := offset + bit
			payload[absBit/8] |= 1 << uint(absBit%8)
		}
	}

	got := decodeChannels(&payload)
	if got != want {
		t.Fatalf("decodeChannels() = %v, want %v", got, want)
	}
}

func TestDecodeChannelsAlwaysFitsIn11Bits(t *testing.T) {
	payloads := [][ChannelBytes]byte{
		{},
		alternatingMaxMinPayload,
	}
	var allOnes [ChannelBytes]byte
	for i := range allOnes {
		allOnes[i] = 0xff
	}
	payloads = append(payloads, allOnes)

	for _, p := range payloads {
		for i, v := range decodeChannels(&p) {
			if v > ChannelMax {
				t.Errorf("channel %d = %d exceeds %d", i, v, ChannelMax)
			}
		}
	}
}

func TestDecodeDigitalByte(t *testing.T) {
	cases := []struct {
		name               string
		b                  byte
		wantDigital        [2]bool
		wantFailsafe       bool
		wantFrameLost      bool
	}{
		{"all clear", 0b0000_0000, [2]bool{false, false}, false, false},
		{"both digitals", 0b0000_0011, [2]bool{true, true}, false, false},
		{"failsafe only", 0b0000_0111, [2]bool{true, true}, true, false},
		{"frame lost only", 0b0000_1000, [2]bool{false, false}, false, true},
		{"failsafe and frame lost", 0b0000_1100, [2]bool{false, false}, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var f Frame
			failsafe, frameLost := decodeDigitalByte(&f, c.b)
			if f.Digital != c.wantDigital {
				t.Errorf("Digital = %v, want %v", f.Digital, c.wantDigital)
			}
			if failsafe != c.wantFailsafe {
				t.Errorf("failsafe = %v, want %v", failsafe, c.wantFailsafe)
			}
			if frameLost != c.wantFrameLost {
				t.Errorf("frameLost = %v, want %v", frameLost, c.wantFrameLost)
			}
		})
	}
}
