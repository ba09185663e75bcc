// SPI (Serial Peripheral Interface) channel driver.
//
// The part has two SPI modules. Each is represented by a channel slot in a
// fixed pool; callers acquire a slot, configure it, and push data either by
// blocking transmission or by wiring an external DMA channel to the module's
// data buffer. There is no receive path and no interrupt-driven operation.
package core

import "errors"

// FIFO geometry per transfer width. With ENHBUF set the hardware FIFO holds
// 16 bytes; the entry count follows from the configured unit size.
const (
	fifoDepthMode8  = 16
	fifoDepthMode16 = 8
	fifoDepthMode32 = 4

	fifoSizeMode8  = 1
	fifoSizeMode16 = 2
	fifoSizeMode32 = 4
)

// ErrChannelAssigned is returned by Acquire when the requested channel
// already has an owner.
var ErrChannelAssigned = errors.New("spi: channel already assigned")

// SPIChannelConfig is the caller-supplied configuration for one channel. It
// is consumed by Configure and not retained.
type SPIChannelConfig struct {
	// Baudrate is the desired SPI clock in Hz. Zero programs a divisor of 0
	// (fastest clock) rather than dividing by zero.
	Baudrate uint32

	// Control is the raw SPIxCON word, assembled from the SPICon* flags.
	// It is written verbatim; leave SPIConOn clear and call Enable
	// afterwards.
	Control uint32
}

// SPIChannel is one acquired SPI module. Channels live in the controller's
// pool for the lifetime of the program; a handle is only valid between
// Acquire and Release.
type SPIChannel struct {
	port    SPIPort
	pbClock uint32

	fifoDepth uint8
	fifoSize  uint8
	assigned  bool
}

// SPIController owns the channel pool. It is safe to build one over mock
// registers in tests; firmware builds one over the hardware ports and
// registers it with SetSPIController.
//
// There is no internal locking: channels are expected to be acquired and
// driven from a single execution context, matching the rest of the firmware
// core.
type SPIController struct {
	channels [SPIChannelCount]SPIChannel
}

// NewSPIController builds a controller over the given port descriptors.
// pbClock is the peripheral bus clock in Hz, used by the baud-rate
// generator formula.
func NewSPIController(pbClock uint32, ports [SPIChannelCount]SPIPort) *SPIController {
	c := &SPIController{}
	for i := range c.channels {
		c.channels[i] = SPIChannel{
			port:      ports[i],
			pbClock:   pbClock,
			fifoDepth: fifoDepthMode8,
			fifoSize:  fifoSizeMode8,
		}
	}
	return c
}

// Acquire hands out exclusive ownership of a channel and applies cfg.
// It fails with ErrChannelAssigned if the channel already has an owner.
func (c *SPIController) Acquire(id SPIChannelID, cfg SPIChannelConfig) (*SPIChannel, error) {
	assert(int(id) < len(c.channels), "spi: invalid channel id")
	ch := &c.channels[id]

	if ch.assigned {
		return nil, ErrChannelAssigned
	}
	ch.assigned = true
	ch.Configure(cfg)
	return ch, nil
}

// Release disables the hardware and returns the channel to the pool, making
// it eligible for a future Acquire. The handle must not be used afterwards.
func (ch *SPIChannel) Release() {
	assert(ch != nil, "spi: nil channel")

	ch.port.Regs.Control.ClearBits(SPIConOn)
	ch.assigned = false
}

// Configure programs the channel from cfg. The module is disabled first so
// the baud and control writes never glitch a running transfer, and all six
// interrupt enable/flag bits are cleared: interrupt-driven operation is not
// supported, so enables are always left off.
func (ch *SPIChannel) Configure(cfg SPIChannelConfig) {
	assert(ch != nil, "spi: nil channel")
	regs := &ch.port.Regs
	ints := &ch.port.Ints

	// Disable module first
	regs.Control.ClearBits(SPIConOn)

	ints.Enables.ClearBits(ints.FaultEnableMask)
	ints.Enables.ClearBits(ints.ReceiveEnableMask)
	ints.Enables.ClearBits(ints.TransferEnableMask)
	ints.Flags.ClearBits(ints.FaultFlagMask)
	ints.Flags.ClearBits(ints.ReceiveFlagMask)
	ints.Flags.ClearBits(ints.TransferFlagMask)

	regs.BaudGen.Set(spiBaudDivisor(ch.pbClock, cfg.Baudrate))
	regs.Control.Set(cfg.Control)

	ch.fifoDepth = fifoDepthMode8
	ch.fifoSize = fifoSizeMode8
	if cfg.Control&SPIConMode32 != 0 {
		ch.fifoDepth = fifoDepthMode32
		ch.fifoSize = fifoSizeMode32
	} else if cfg.Control&SPIConMode16 != 0 {
		ch.fifoDepth = fifoDepthMode16
		ch.fifoSize = fifoSizeMode16
	}
}

// spiBaudDivisor derives the SPIxBRG value: Fsck = Fpb / (2 * (BRG + 1)).
func spiBaudDivisor(pbClock, baud uint32) uint32 {
	if baud == 0 {
		return 0
	}
	return pbClock/(2*baud) - 1
}

// Enable sets the module ON bit.
func (ch *SPIChannel) Enable() {
	assert(ch != nil, "spi: nil channel")

	ch.port.Regs.Control.SetBits(SPIConOn)
}

// Disable clears the module ON bit.
func (ch *SPIChannel) Disable() {
	assert(ch != nil, "spi: nil channel")

	ch.port.Regs.Control.ClearBits(SPIConOn)
}

// FIFOSize returns the bytes per transfer unit under the active
// configuration (1, 2 or 4).
func (ch *SPIChannel) FIFOSize() uint8 { return ch.fifoSize }

// FIFODepth returns the number of transfer units the hardware FIFO holds
// under the active configuration (16, 8 or 4).
func (ch *SPIChannel) FIFODepth() uint8 { return ch.fifoDepth }

// ConfigureDMASource programs dma to read from this channel's data buffer,
// one FIFO unit per cell, started by the channel's receive interrupt and
// aborted by its fault interrupt. Configuration only; no transfer happens
// here and no interrupt enables are touched.
func (ch *SPIChannel) ConfigureDMASource(dma DMAChannel) {
	assert(ch != nil, "spi: nil channel")
	assert(dma != nil, "spi: nil dma channel")

	dma.ConfigureSource(ch.port.Regs.BufferAddr, 1) // one fifo unit per transfer
	dma.ConfigureCellSize(ch.fifoSize)
	dma.ConfigureStartEvent(DMAEvent{Enable: true, Vector: ch.port.Ints.ReceiveIRQ})
	dma.ConfigureAbortEvent(DMAEvent{Enable: true, Vector: ch.port.Ints.FaultIRQ})
}

// ConfigureDMADestination programs dma to write into this channel's data
// buffer, started by the transfer interrupt and aborted by the fault
// interrupt.
func (ch *SPIChannel) ConfigureDMADestination(dma DMAChannel) {
	assert(ch != nil, "spi: nil channel")
	assert(dma != nil, "spi: nil dma channel")

	dma.ConfigureDestination(ch.port.Regs.BufferAddr, 1) // one fifo unit per transfer
	dma.ConfigureCellSize(ch.fifoSize)
	dma.ConfigureStartEvent(DMAEvent{Enable: true, Vector: ch.port.Ints.TransferIRQ})
	dma.ConfigureAbortEvent(DMAEvent{Enable: true, Vector: ch.port.Ints.FaultIRQ})
}

// Transmit pushes p into the transmit FIFO one byte at a time, busy-waiting
// for a free slot before each write. It returns false without touching the
// data buffer when p is empty or the channel is not in master mode. The
// module must already be enabled.
//
// There is no timeout: a misconfigured or unresponsive module blocks the
// caller indefinitely. That is the accepted tradeoff for a bare-metal
// polling driver; use the DMA wiring when the CPU cannot be occupied.
func (ch *SPIChannel) Transmit(p []byte) bool {
	assert(ch != nil, "spi: nil channel")
	regs := &ch.port.Regs
	assert(regs.Control.Get()&SPIConOn != 0, "spi: transmit on disabled module")

	if len(p) == 0 || regs.Control.Get()&SPIConMaster == 0 {
		return false
	}
	for _, b := range p {
		for regs.Status.Get()&SPIStatTxBufFull != 0 {
		}
		regs.Buffer.Set(uint32(b))
	}
	return true
}

// TransmitWords is Transmit for channels configured for 32-bit transfers.
// The polling discipline is identical; only the unit width differs.
func (ch *SPIChannel) TransmitWords(p []uint32) bool {
	assert(ch != nil, "spi: nil channel")
	regs := &ch.port.Regs
	assert(regs.Control.Get()&SPIConOn != 0, "spi: transmit on disabled module")

	if len(p) == 0 || regs.Control.Get()&SPIConMaster == 0 {
		return false
	}
	for _, w := range p {
		for regs.Status.Get()&SPIStatTxBufFull != 0 {
		}
		regs.Buffer.Set(w)
	}
	return true
}
