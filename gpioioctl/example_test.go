package gpioioctl_test

// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

import (
	"fmt"
	"time"

	host "github.com/airframe-go/rcbridge"
	"github.com/airframe-go/rcbridge/gpioioctl"
	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

func Example() {
	_, _ = host.Init()
	_, _ = driverreg.Init()

	fmt.Println("GPIO Test Program")
	chip := gpioioctl.Chips[0]
	defer chip.Close()
	fmt.Println(chip.String())
	// Test by flashing an LED, the same Out-only usage the CPPM GPIO
	// adapters exercise.
	led := gpioreg.ByName("GPIO5")
	fmt.Println("Flashing LED ", led.Name())
	for i := range 20 {
		_ = led.Out((i % 2) == 0)
		time.Sleep(500 * time.Millisecond)
	}
	_ = led.Out(true)
}
