package core

// SPI register access substrate.
//
// The driver in spi.go never touches memory-mapped hardware directly; it
// goes through the Register interface so the same code runs against the
// PIC32 SFRs on target builds and against recording mocks in unit tests.

// SPIChannelID selects one of the physical SPI modules.
type SPIChannelID uint8

const (
	SPIChannel1 SPIChannelID = iota
	SPIChannel2

	// SPIChannelCount is the number of SPI modules on the part.
	SPIChannelCount = 2
)

// Register is one hardware register. Every access must be a single
// uninterruptible bus transaction; target implementations back SetBits and
// ClearBits with the PIC32 SET/CLR shadow registers so read-modify-write
// happens in hardware.
type Register interface {
	Get() uint32
	Set(value uint32)
	SetBits(mask uint32)
	ClearBits(mask uint32)
}

// SPIxCON control word flags.
const (
	SPIConMaster  = 1 << 5  // MSTEN: master mode
	SPIConClkPol  = 1 << 6  // CKP: clock idles high
	SPIConClkEdge = 1 << 8  // CKE: transmit on active-to-idle edge
	SPIConSample  = 1 << 9  // SMP: sample at end of data output time
	SPIConMode16  = 1 << 10 // MODE16: 16-bit transfers
	SPIConMode32  = 1 << 11 // MODE32: 32-bit transfers
	SPIConOn      = 1 << 15 // ON: module enable
	SPIConEnhBuf  = 1 << 16 // ENHBUF: enhanced buffer (FIFO) mode
)

// SPIxSTAT status flags.
const (
	SPIStatTxBufFull  = 1 << 1 // SPITBF: transmit buffer full
	SPIStatRxBufEmpty = 1 << 5 // SPIRBE: receive buffer empty
)

// SPIRegisterBlock collects the registers of one SPI module.
type SPIRegisterBlock struct {
	Control  Register // SPIxCON
	Status   Register // SPIxSTAT
	Buffer   Register // SPIxBUF
	BaudGen  Register // SPIxBRG
	Control2 Register // SPIxCON2

	// BufferAddr is the physical address of SPIxBUF, handed to the DMA
	// engine when the channel is wired as a DMA source or destination.
	BufferAddr uintptr
}

// SPIInterruptMap fixes the interrupt wiring of one SPI module: which
// flag/enable register pair and bit positions belong to its fault, receive
// and transfer events, and which IRQ vectors the DMA engine triggers on.
// The maps are immutable properties of the silicon.
type SPIInterruptMap struct {
	Flags   Register // IFSx
	Enables Register // IECx

	FaultFlagMask    uint32
	ReceiveFlagMask  uint32
	TransferFlagMask uint32

	FaultEnableMask    uint32
	ReceiveEnableMask  uint32
	TransferEnableMask uint32

	FaultIRQ    IRQVector
	ReceiveIRQ  IRQVector
	TransferIRQ IRQVector
}

// SPIPort describes one physical SPI module: its register block plus its
// interrupt map.
type SPIPort struct {
	Regs SPIRegisterBlock
	Ints SPIInterruptMap
}

// Package-level default controller, registered by target-specific code.
var defaultSPI *SPIController

// SetSPIController is called by target-specific code to register the
// controller built over the real hardware ports.
func SetSPIController(c *SPIController) {
	defaultSPI = c
}

// MustSPI returns the registered controller or panics if missing.
func MustSPI() *SPIController {
	if defaultSPI == nil {
		panic("SPI controller not configured")
	}
	return defaultSPI
}
