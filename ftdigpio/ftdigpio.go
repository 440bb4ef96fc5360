// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ftdigpio adapts a GPIO pin on an FTDI FT232R USB-serial adapter
// (driven through this repository's ftdi driver, itself built on
// periph.io/x/d2xx) into the cppm.Pin capability the CPPM writer needs.
//
// It is a second, independent development-host backend alongside hostgpio:
// a CPPM signal can be bit-banged out of an FT232R's DBus header pin
// without any Linux GPIO chardev access, which is convenient when
// bring-up happens on a machine with no exposed GPIO header at all.
package ftdigpio

import (
	"fmt"
	"log"

	"github.com/airframe-go/rcbridge/ftdi"
	"periph.io/x/conn/v3/gpio"
)

// Pin implements cppm.Pin over a periph.io/x/conn/v3/gpio.PinIO exposed by
// an FT232R's Header(). As with hostgpio.Pin, SetHigh/SetLow are
// infallible from the caller's point of view; the underlying Out error, if
// any, is logged.
type Pin struct {
	pin gpio.PinIO
}

// Open finds the first attached FT232R device and returns its headerIndex
// pin (0-based, matching the order Header() returns) configured as an
// output driven low.
func Open(headerIndex int) (*Pin, error) {
	for _, dev := range ftdi.All() {
		f232, ok := dev.(*ftdi.FT232R)
		if !ok {
			continue
		}
		hdr := f232.Header()
		if headerIndex < 0 || headerIndex >= len(hdr) {
			return nil, fmt.Errorf("ftdigpio: header index %d out of range (0..%d)", headerIndex, len(hdr)-1)
		}
		p := hdr[headerIndex]
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("ftdigpio: configure %s as output: %w", p.Name(), err)
		}
		return &Pin{pin: p}, nil
	}
	return nil, fmt.Errorf("ftdigpio: no FT232R device found")
}

func (p *Pin) SetHigh() {
	if err := p.pin.Out(gpio.High); err != nil {
		log.Printf("ftdigpio: SetHigh on %s: %v", p.pin.Name(), err)
	}
}

func (p *Pin) SetLow() {
	if err := p.pin.Out(gpio.Low); err != nil {
		log.Printf("ftdigpio: SetLow on %s: %v", p.pin.Name(), err)
	}
}
