// Package serial abstracts the host's serial port so the link layer can be
// tested against an in-memory implementation.
package serial

import (
	"io"
)

// Port represents a serial port. Implementations:
// - Native serial (github.com/tarm/serial)
// - Mock ports in tests
type Port interface {
	io.ReadWriteCloser

	// Flush drops any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (ignored for USB CDC devices)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration for the LED controller's UART
// link.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
