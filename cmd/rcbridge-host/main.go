// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// rcbridge-host runs the SBUS-to-CPPM bridge against real hardware: an SBUS
// receiver wired to a UART and a CPPM-expecting flight controller wired to
// a GPIO pin. It exists to exercise the bridge package end to end during
// development; production deployments are expected to embed bridge and the
// three GPIO adapter packages directly rather than shell out to this binary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	host "github.com/airframe-go/rcbridge"
	"github.com/airframe-go/rcbridge/bridge"
	"github.com/airframe-go/rcbridge/cppm"
	"github.com/airframe-go/rcbridge/ftdigpio"
	"github.com/airframe-go/rcbridge/hostgpio"
	"github.com/airframe-go/rcbridge/sbus"
	"github.com/airframe-go/rcbridge/serialuart"
	"github.com/airframe-go/rcbridge/spsc"
	"github.com/airframe-go/rcbridge/sysfsgpio"
	"periph.io/x/conn/v3/physic"
)

// byteQueueCapacity is sized well above one SBUS frame so a slow task loop
// can't lose bytes between Pump calls.
const byteQueueCapacity = 256

// frameQueueCapacity gives a host-adapter polling loop headroom before
// backpressure, rather than the tighter capacity 1 an ISR-driven consumer
// could use.
const frameQueueCapacity = 8

// tickerTimer adapts a standard time.Timer to cppm.Timer. OnTimer is driven
// from the timer's own channel rather than a hardware interrupt, which is
// the right tradeoff for a development host but adds scheduling jitter a
// firmware build running from a real timer peripheral would not have.
type tickerTimer struct {
	t *time.Timer
}

func newTickerTimer() *tickerTimer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return &tickerTimer{t: t}
}

func (t *tickerTimer) Start(d physic.Duration) {
	t.t.Reset(time.Duration(d))
}

func main() {
	uartDevice := flag.String("uart", "/dev/ttyUSB0", "serial device the SBUS receiver is wired to")
	backend := flag.String("gpio-backend", "host", "GPIO backend to drive the CPPM pin: host, ftdi, or sysfs")
	pinName := flag.String("pin", "GPIO17", "pin name for the host backend (e.g. GPIO17)")
	ftdiHeader := flag.Int("ftdi-header", 0, "DBus header index for the ftdi backend")
	sysfsPin := flag.Int("sysfs-pin", 17, "GPIO number for the sysfs backend")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		log.Fatalf("rcbridge-host: host.Init: %v", err)
	}

	uart, err := serialuart.Open(*uartDevice)
	if err != nil {
		log.Fatalf("rcbridge-host: %v", err)
	}
	defer uart.Close()

	halt := make(chan os.Signal, 1)
	signal.Notify(halt, syscall.SIGINT, syscall.SIGTERM)

	switch *backend {
	case "host":
		pin, err := hostgpio.Open(*pinName)
		if err != nil {
			log.Fatalf("rcbridge-host: %v", err)
		}
		run(uart, pin, halt)
	case "ftdi":
		pin, err := ftdigpio.Open(*ftdiHeader)
		if err != nil {
			log.Fatalf("rcbridge-host: %v", err)
		}
		run(uart, pin, halt)
	case "sysfs":
		pin, err := sysfsgpio.Open(*sysfsPin)
		if err != nil {
			log.Fatalf("rcbridge-host: %v", err)
		}
		run(uart, pin, halt)
	default:
		fmt.Fprintf(os.Stderr, "rcbridge-host: unknown -gpio-backend %q\n", *backend)
		os.Exit(2)
	}
}

// run owns the bridge for one concrete pin type and drives it until halt
// fires. It is instantiated once per GPIO backend in main, since the
// backend's pin type is chosen at compile time, not runtime, to keep the
// CPPM writer's hot path monomorphic.
func run[P cppm.Pin](uart *serialuart.Source, pin P, halt <-chan os.Signal) {
	bytes := spsc.New[sbus.ByteResult](byteQueueCapacity)
	frames := spsc.New[sbus.RecoverableResult](frameQueueCapacity)
	b := bridge.New[P, *tickerTimer](bytes, frames, pin, cppm.MicrosecondDuration)

	timer := newTickerTimer()
	timer.Start(cppm.MicrosecondDuration(1))

	log.Println("rcbridge-host: running, ctrl+c to exit")
	for {
		select {
		case <-timer.t.C:
			b.OnTimerTick(timer)
		case <-halt:
			return
		default:
			if n, err := uart.Pump(bytes); err != nil {
				log.Printf("rcbridge-host: uart read: %v", err)
			} else if n > 0 {
				if err := b.PumpBytes(); err != nil {
					log.Printf("rcbridge-host: decoder: %v", err)
				}
			}
		}
	}
}
