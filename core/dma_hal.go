package core

// IRQVector identifies a hardware interrupt source by its vector number.
type IRQVector uint8

// DMAEvent designates an interrupt that starts or aborts a DMA transfer.
type DMAEvent struct {
	Enable bool
	Vector IRQVector
}

// DMAChannel is the slice of the DMA engine the SPI driver programs. The
// channel object is owned by the DMA subsystem; the driver only populates
// it so the engine can move data without per-byte CPU involvement.
type DMAChannel interface {
	// ConfigureSource points the channel at the block it reads from.
	// count is in transfer units, not bytes.
	ConfigureSource(addr uintptr, count uint32)

	// ConfigureDestination points the channel at where it writes.
	ConfigureDestination(addr uintptr, count uint32)

	// ConfigureCellSize sets the number of bytes moved per triggered cell
	// transfer.
	ConfigureCellSize(bytes uint8)

	// ConfigureStartEvent selects the interrupt that starts a cell transfer.
	ConfigureStartEvent(ev DMAEvent)

	// ConfigureAbortEvent selects the interrupt that aborts the transfer.
	ConfigureAbortEvent(ev DMAEvent)
}
