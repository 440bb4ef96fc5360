// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package serialuart reads raw SBUS bytes off a Linux tty device and feeds
// them into the decoder's byte queue. SBUS's wire format is 100000 baud,
// 8 data bits, even parity, 2 stop bits; on real hardware the line is also
// logic-inverted, which this package leaves to an external level shifter
// rather than attempting in software.
package serialuart

import (
	"fmt"
	"time"

	serial "github.com/daedaluz/goserial"

	"github.com/airframe-go/rcbridge/sbus"
	"github.com/airframe-go/rcbridge/spsc"
)

// BaudRate is the fixed SBUS line rate.
const BaudRate = 100000

// pollTimeout bounds how long a single Pump call may block waiting for the
// next byte, so the caller's task loop keeps its own cadence.
const pollTimeout = 20 * time.Millisecond

// Source is an open SBUS-configured serial port.
type Source struct {
	port *serial.Port
}

// Open configures device for the SBUS wire format and returns a Source
// ready for Pump.
func Open(device string) (*Source, error) {
	port, err := serial.Open(device, serial.NewOptions().SetReadTimeout(pollTimeout))
	if err != nil {
		return nil, fmt.Errorf("serialuart: open %s: %w", device, err)
	}
	attrs, err := port.GetAttr2()
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("serialuart: get attrs: %w", err)
	}
	attrs.MakeRaw()
	attrs.Cflag &= ^serial.CSIZE
	attrs.Cflag |= serial.CS8 | serial.CSTOPB | serial.PARENB
	attrs.Cflag &= ^serial.PARODD
	attrs.SetCustomSpeed(BaudRate)
	if err := port.SetAttr2(serial.TCSANOW, attrs); err != nil {
		port.Close()
		return nil, fmt.Errorf("serialuart: set attrs: %w", err)
	}
	return &Source{port: port}, nil
}

// Pump reads whatever bytes are currently available and pushes each onto
// bytes as a sbus.ByteResult. It returns the number of bytes read. A read
// error is pushed as a single sbus.ByteResult carrying Err instead of Byte,
// matching how sbus.Decoder surfaces transport failures as ByteReadError.
//
// If bytes fills up mid-read, Pump stops pushing and returns early; the
// caller should call Decoder.Process to drain frames and make room before
// pumping again.
func (s *Source) Pump(bytes *spsc.Queue[sbus.ByteResult]) (int, error) {
	var buf [64]byte
	n, err := s.port.Read(buf[:])
	if err != nil {
		bytes.TryPush(sbus.ByteResult{Err: err})
		return n, err
	}
	for i := 0; i < n; i++ {
		if !bytes.TryPush(sbus.ByteResult{Byte: buf[i]}) {
			return i, nil
		}
	}
	return n, nil
}

// Close releases the underlying tty.
func (s *Source) Close() error {
	return s.port.Close()
}
