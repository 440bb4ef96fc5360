// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ftdi drives an FT232R's bitbang GPIO header over USB via d2xx, for
// use as a CPPM output pin when no native GPIO chardev is available.
//
// Other FTDI device families are enumerated (so All() reports every
// connected chip) but are left as plain Dev values without a GPIO header;
// this package doesn't implement their I²C/SPI/MPSSE/EEPROM capabilities.
//
// Use build tag periph_host_ftdi_debug to enable verbose debugging.
//
// # Datasheet
//
// http://www.ftdichip.com/Support/Documents/DataSheets/ICs/DS_FT232R.pdf
package ftdi
