// Package link implements the host side of the LED controller serial
// protocol.
package link

import (
	"errors"
	"io"
	"time"

	"ledcon/host/serial"
	"ledcon/protocol"
)

// ErrAckTimeout reports that the controller did not acknowledge a ping in
// time.
var ErrAckTimeout = errors.New("link: timed out waiting for ack")

// Link sends frames to the LED controller over a serial port.
type Link struct {
	port serial.Port
	dec  protocol.Decoder

	// scratch is the reused frame-encoding buffer.
	scratch []byte
}

// New returns a link over port.
func New(port serial.Port) *Link {
	return &Link{port: port}
}

// Ping sends a ping and waits up to timeout for the controller's ack.
func (l *Link) Ping(timeout time.Duration) error {
	if err := l.send(protocol.CmdPing, nil); err != nil {
		return err
	}
	return l.waitAck(timeout)
}

// SetPixel sets one LED on the controller. The change is not visible until
// Show.
func (l *Link) SetPixel(index, r, g, b uint8) error {
	return l.send(protocol.CmdSetPixel, []byte{index, r, g, b})
}

// Fill sets every LED to the given color.
func (l *Link) Fill(r, g, b uint8) error {
	return l.send(protocol.CmdFill, []byte{r, g, b})
}

// SetBrightness sets the controller's global brightness (0-255).
func (l *Link) SetBrightness(level uint8) error {
	return l.send(protocol.CmdBrightness, []byte{level})
}

// Show refreshes the strip from the controller's pixel buffer.
func (l *Link) Show() error {
	return l.send(protocol.CmdShow, nil)
}

func (l *Link) send(cmd byte, payload []byte) error {
	wire, err := protocol.Encode(l.scratch[:0], cmd, payload)
	if err != nil {
		return err
	}
	l.scratch = wire

	if _, err := l.port.Write(wire); err != nil {
		return err
	}
	return nil
}

// waitAck reads from the port until an ack frame arrives or the deadline
// passes. Ports with a read timeout return zero-length reads, so this polls
// rather than blocking forever.
func (l *Link) waitAck(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var buf [64]byte

	for time.Now().Before(deadline) {
		n, err := l.port.Read(buf[:])
		if err != nil && err != io.EOF {
			return err
		}
		for _, b := range buf[:n] {
			if f, ok := l.dec.Feed(b); ok && f.Cmd == protocol.CmdAck {
				return nil
			}
		}
	}
	return ErrAckTimeout
}
