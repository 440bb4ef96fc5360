// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package host

import (
	// Make sure the GPIO drivers hostgpio and sysfsgpio build on are
	// registered before host.Init() returns.
	_ "github.com/airframe-go/rcbridge/gpioioctl"
	_ "github.com/airframe-go/rcbridge/sysfs"
)
