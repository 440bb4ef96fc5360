// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sbus implements a streaming decoder for Futaba's SBUS serial
// protocol: 16 proportional channels plus 2 digital channels packed into a
// fixed 25-byte frame, with a failsafe flag and a frame-lost flag carried in
// a trailing flags byte.
//
// Decoder is a byte-oriented state machine, not a buffered parser: it is fed
// one transport byte (or transport error) at a time through a bounded SPSC
// queue and emits decoded frames or protocol errors through a second bounded
// SPSC queue. It performs no heap allocation after construction.
package sbus

// Wire format constants, bit-exact with the SBUS protocol.
const (
	// Header is the byte that begins every SBUS frame.
	Header = 0x0f
	// Footer is the byte that ends every SBUS frame.
	Footer = 0x00

	// ChannelBytes is the number of payload bytes carrying the 16
	// 11-bit proportional channels.
	ChannelBytes = 22
	// DigitalBytes is the number of bytes carrying the two digital
	// channels, the failsafe flag and the frame-lost flag.
	DigitalBytes = 1
	// TotalFrameBytes is Header + ChannelBytes + DigitalBytes + Footer.
	TotalFrameBytes = 1 + ChannelBytes + DigitalBytes + 1

	// ChannelCount is the number of proportional channels per frame.
	ChannelCount = 16
	// ChannelMax is the largest value a proportional channel can take;
	// channels are packed as unsigned 11-bit integers.
	ChannelMax = 1<<11 - 1

	digitalChannel0Bit = 0b001
	digitalChannel1Bit = 0b010
	failsafeBit        = 0b100
	frameLostBit       = 0b1000
)
