package core

import (
	"errors"

	"tinygo.org/x/drivers"
)

// SPIBus adapts an acquired channel to the drivers.SPI bus interface so
// tinygo.org/x/drivers-style device drivers can sit on top of it.
//
// This hardware driver has no receive path, so the adapter is transmit-only:
// Tx rejects requests for received data and Transfer always reports zero.
type SPIBus struct {
	ch *SPIChannel
}

var _ drivers.SPI = (*SPIBus)(nil)

var (
	// ErrNoReceive reports a read through the transmit-only bus adapter.
	ErrNoReceive = errors.New("spi: receive path not implemented")

	// ErrNotMaster reports a transfer on a channel that is not configured
	// as bus master.
	ErrNotMaster = errors.New("spi: channel not in master mode")
)

// NewSPIBus wraps ch. The channel must be configured for 8-bit master
// operation and enabled before the bus is used.
func NewSPIBus(ch *SPIChannel) *SPIBus {
	assert(ch != nil, "spi: nil channel")
	return &SPIBus{ch: ch}
}

// Tx transmits w. Passing a non-nil r asks for received data, which this
// driver does not implement.
func (b *SPIBus) Tx(w, r []byte) error {
	if r != nil {
		return ErrNoReceive
	}
	if len(w) == 0 {
		return nil
	}
	if !b.ch.Transmit(w) {
		return ErrNotMaster
	}
	return nil
}

// Transfer sends a single byte. The returned byte is always zero; see Tx.
func (b *SPIBus) Transfer(c byte) (byte, error) {
	if !b.ch.Transmit([]byte{c}) {
		return 0, ErrNotMaster
	}
	return 0, nil
}
