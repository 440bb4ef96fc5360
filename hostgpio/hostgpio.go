// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hostgpio adapts a Linux GPIO character-device line (driven
// through the gpioioctl driver in this repository) into the cppm.Pin
// capability the CPPM writer needs: an infallible SetHigh/SetLow pair.
//
// This is a development-host stand-in for the real GPIO peripheral driver
// a firmware build would use instead; it exists so the CORE's CPPM writer
// can be pointed at a real pin on a Raspberry Pi or similar SBC during
// bring-up, without pulling any of this repository's board-detection
// machinery into the CORE itself.
package hostgpio

import (
	"log"

	"github.com/airframe-go/rcbridge/gpioioctl"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Pin implements cppm.Pin over a gpioioctl.GPIOLine already configured as
// an output. Unlike GPIOLine.Out, SetHigh/SetLow are infallible from the
// caller's point of view, matching the CORE's GPIO capability contract;
// errors are logged rather than returned, since the CPPM writer's hot path
// has nowhere to propagate them to.
type Pin struct {
	line *gpioioctl.GPIOLine
}

// Open resolves name (as registered with periph's gpioreg, e.g. "GPIO17")
// to a gpioioctl-backed line and configures it as an output driven low,
// returning a Pin ready for cppm.NewWriter.
func Open(name string) (*Pin, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errNotFound(name)
	}
	line, ok := pin.(*gpioioctl.GPIOLine)
	if !ok {
		return nil, errWrongDriver(name)
	}
	if err := line.Out(gpio.Low); err != nil {
		return nil, err
	}
	return &Pin{line: line}, nil
}

func (p *Pin) SetHigh() {
	if err := p.line.Out(gpio.High); err != nil {
		log.Printf("hostgpio: SetHigh on %s: %v", p.line.Name(), err)
	}
}

func (p *Pin) SetLow() {
	if err := p.line.Out(gpio.Low); err != nil {
		log.Printf("hostgpio: SetLow on %s: %v", p.line.Name(), err)
	}
}

type errNotFound string

func (e errNotFound) Error() string { return "hostgpio: no such pin " + string(e) }

type errWrongDriver string

func (e errWrongDriver) Error() string {
	return "hostgpio: pin " + string(e) + " is not backed by gpioioctl"
}
