//go:build tinygo

package main

import (
	"ledcon/core"
)

// SPI module bases and interrupt controller SFRs (KSEG1 virtual addresses).
const (
	spi1Base uintptr = 0xBF805800
	spi2Base uintptr = 0xBF805A00

	ifs1Addr uintptr = 0xBF881040
	ifs2Addr uintptr = 0xBF881050
	iec1Addr uintptr = 0xBF881070
	iec2Addr uintptr = 0xBF881080
)

// Register offsets within an SPI module block. Each SFR occupies 0x10
// together with its CLR/SET/INV shadows.
const (
	spiConOff  = 0x00 // SPIxCON
	spiStatOff = 0x10 // SPIxSTAT
	spiBufOff  = 0x20 // SPIxBUF
	spiBrgOff  = 0x30 // SPIxBRG
	spiCon2Off = 0x40 // SPIxCON2
)

// SPI IRQ vector numbers, consumed by the DMA engine's CHSIRQ/CHAIRQ
// fields.
const (
	irqSPI1Fault    = 35
	irqSPI1Receive  = 36
	irqSPI1Transfer = 37

	irqSPI2Fault    = 85
	irqSPI2Receive  = 86
	irqSPI2Transfer = 87
)

func spiPort(base uintptr, ints core.SPIInterruptMap) core.SPIPort {
	return core.SPIPort{
		Regs: core.SPIRegisterBlock{
			Control:    sfrAt(base + spiConOff),
			Status:     sfrAt(base + spiStatOff),
			Buffer:     sfrAt(base + spiBufOff),
			BaudGen:    sfrAt(base + spiBrgOff),
			Control2:   sfrAt(base + spiCon2Off),
			BufferAddr: physAddr(base + spiBufOff),
		},
		Ints: ints,
	}
}

// hardwareSPIPorts describes the part's two SPI modules. SPI1 events sit in
// IFS1/IEC1 bits 3-5, SPI2 events in IFS2/IEC2 bits 21-23.
func hardwareSPIPorts() [core.SPIChannelCount]core.SPIPort {
	return [core.SPIChannelCount]core.SPIPort{
		core.SPIChannel1: spiPort(spi1Base, core.SPIInterruptMap{
			Flags:   sfrAt(ifs1Addr),
			Enables: sfrAt(iec1Addr),

			FaultFlagMask:    1 << 3,
			ReceiveFlagMask:  1 << 4,
			TransferFlagMask: 1 << 5,

			FaultEnableMask:    1 << 3,
			ReceiveEnableMask:  1 << 4,
			TransferEnableMask: 1 << 5,

			FaultIRQ:    irqSPI1Fault,
			ReceiveIRQ:  irqSPI1Receive,
			TransferIRQ: irqSPI1Transfer,
		}),
		core.SPIChannel2: spiPort(spi2Base, core.SPIInterruptMap{
			Flags:   sfrAt(ifs2Addr),
			Enables: sfrAt(iec2Addr),

			FaultFlagMask:    1 << 21,
			ReceiveFlagMask:  1 << 22,
			TransferFlagMask: 1 << 23,

			FaultEnableMask:    1 << 21,
			ReceiveEnableMask:  1 << 22,
			TransferEnableMask: 1 << 23,

			FaultIRQ:    irqSPI2Fault,
			ReceiveIRQ:  irqSPI2Receive,
			TransferIRQ: irqSPI2Transfer,
		}),
	}
}
