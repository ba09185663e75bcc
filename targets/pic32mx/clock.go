//go:build tinygo

package main

// Peripheral bus clock in Hz. The system clock runs at 80 MHz with
// FPBDIV = 1:2; the SPI baud-rate generator divides down from this.
const peripheralClock = 40_000_000
