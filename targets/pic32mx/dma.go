//go:build tinygo

package main

import (
	"ledcon/core"
)

// DMA channel register blocks start at DCH0CON and repeat every 0xC0.
const (
	dmaChanBase   uintptr = 0xBF883060
	dmaChanStride uintptr = 0xC0
	dmaChanCount          = 4
)

// DCHxECON fields.
const (
	dchEconAIRQEN = 1 << 3 // abort IRQ enable
	dchEconSIRQEN = 1 << 4 // start IRQ enable
	dchEconCFORCE = 1 << 7 // force the first cell transfer

	dchEconCHSIRQShift = 8  // start IRQ vector, bits 8-15
	dchEconCHAIRQShift = 16 // abort IRQ vector, bits 16-23

	dchEconIRQMask = 0xFF
)

// DCHxCON / DCHxINT fields.
const (
	dchConCHEN   = 1 << 7 // channel enable
	dchIntCHBCIF = 1 << 3 // block transfer complete flag
)

// dmaChannel is one hardware DMA channel. It satisfies core.DMAChannel so
// the SPI driver can wire its data buffer to the engine.
type dmaChannel struct {
	con  *sfr // DCHxCON
	econ *sfr // DCHxECON
	intr *sfr // DCHxINT
	ssa  *sfr // DCHxSSA: source start address (physical)
	dsa  *sfr // DCHxDSA: destination start address (physical)
	ssiz *sfr // DCHxSSIZ: source size
	dsiz *sfr // DCHxDSIZ: destination size
	csiz *sfr // DCHxCSIZ: cell size in bytes
}

var _ core.DMAChannel = (*dmaChannel)(nil)

// dmaChannelAt returns channel n's register block.
func dmaChannelAt(n uint8) *dmaChannel {
	if n >= dmaChanCount {
		panic("dma: invalid channel number")
	}
	base := dmaChanBase + uintptr(n)*dmaChanStride
	return &dmaChannel{
		con:  sfrAt(base + 0x00),
		econ: sfrAt(base + 0x10),
		intr: sfrAt(base + 0x20),
		ssa:  sfrAt(base + 0x30),
		dsa:  sfrAt(base + 0x40),
		ssiz: sfrAt(base + 0x50),
		dsiz: sfrAt(base + 0x60),
		csiz: sfrAt(base + 0x90),
	}
}

func (c *dmaChannel) ConfigureSource(addr uintptr, count uint32) {
	c.ssa.Set(uint32(physAddr(addr)))
	c.ssiz.Set(count)
}

func (c *dmaChannel) ConfigureDestination(addr uintptr, count uint32) {
	c.dsa.Set(uint32(physAddr(addr)))
	c.dsiz.Set(count)
}

func (c *dmaChannel) ConfigureCellSize(bytes uint8) {
	c.csiz.Set(uint32(bytes))
}

func (c *dmaChannel) ConfigureStartEvent(ev core.DMAEvent) {
	c.econ.ClearBits(dchEconIRQMask<<dchEconCHSIRQShift | dchEconSIRQEN)
	if ev.Enable {
		c.econ.SetBits(uint32(ev.Vector)<<dchEconCHSIRQShift | dchEconSIRQEN)
	}
}

func (c *dmaChannel) ConfigureAbortEvent(ev core.DMAEvent) {
	c.econ.ClearBits(dchEconIRQMask<<dchEconCHAIRQShift | dchEconAIRQEN)
	if ev.Enable {
		c.econ.SetBits(uint32(ev.Vector)<<dchEconCHAIRQShift | dchEconAIRQEN)
	}
}

// startBlock arms the channel for one block transfer and forces the first
// cell so the engine does not wait for a stale start event.
func (c *dmaChannel) startBlock() {
	c.intr.ClearBits(dchIntCHBCIF)
	c.con.SetBits(dchConCHEN)
	c.econ.SetBits(dchEconCFORCE)
}

// blockDone reports whether the armed block transfer has completed.
func (c *dmaChannel) blockDone() bool {
	return c.intr.Get()&dchIntCHBCIF != 0
}
