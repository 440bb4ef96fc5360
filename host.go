// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package host

import "periph.io/x/conn/v3/driver/driverreg"

// Init calls driverreg.Init() and returns it as-is.
//
// Calling host.Init() guarantees the GPIO drivers this repository's CPPM
// output adapters (hostgpio, sysfsgpio) rely on are registered before any
// gpioreg.ByName lookup runs; see host_linux.go for the registered set.
func Init() (*driverreg.State, error) {
	return driverreg.Init()
}
