// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sysfsgpio adapts a legacy /sys/class/gpio pin (driven through
// this repository's sysfs driver) into the cppm.Pin capability the CPPM
// writer needs. It is the fallback backend for kernels or distributions
// where the GPIO character-device API hostgpio relies on isn't available.
package sysfsgpio

import (
	"fmt"
	"log"

	"github.com/airframe-go/rcbridge/sysfs"
	"periph.io/x/conn/v3/gpio"
)

// Pin implements cppm.Pin over a sysfs.Pin configured as an output.
type Pin struct {
	pin *sysfs.Pin
}

// Open resolves the sysfs GPIO numbered n and configures it as an output
// driven low.
func Open(n int) (*Pin, error) {
	p, ok := sysfs.Pins[n]
	if !ok {
		return nil, fmt.Errorf("sysfsgpio: no such pin %d", n)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("sysfsgpio: configure pin %d as output: %w", n, err)
	}
	return &Pin{pin: p}, nil
}

func (p *Pin) SetHigh() {
	if err := p.pin.Out(gpio.High); err != nil {
		log.Printf("sysfsgpio: SetHigh on %s: %v", p.pin.Name(), err)
	}
}

func (p *Pin) SetLow() {
	if err := p.pin.Out(gpio.Low); err != nil {
		log.Printf("sysfsgpio: SetLow on %s: %v", p.pin.Name(), err)
	}
}
