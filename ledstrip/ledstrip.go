// Package ledstrip drives a chain of APA102-style LEDs over an SPI bus in
// 8-bit master mode.
package ledstrip

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// maxBrightness is the 5-bit global brightness field of an APA102 LED frame.
const maxBrightness = 31

// Strip holds a pixel buffer for one LED chain. Mutate pixels with SetPixel
// and Fill, then push the buffer to the hardware with Show.
type Strip struct {
	bus        drivers.SPI
	pixels     []color.RGBA
	brightness uint8 // 5-bit global brightness, 0..31

	// frame is the wire-format scratch buffer, reused across Show calls so
	// steady-state animation does not allocate.
	frame []byte
}

// New returns a strip of n LEDs on bus, fully dark at maximum brightness.
func New(bus drivers.SPI, n int) *Strip {
	return &Strip{
		bus:        bus,
		pixels:     make([]color.RGBA, n),
		brightness: maxBrightness,
		frame:      make([]byte, 0, frameLen(n)),
	}
}

// frameLen is the wire size of one refresh: a 4-byte start frame, 4 bytes
// per LED, and enough end-frame bytes to clock the last LEDs through the
// chain (half a clock per LED, minimum 4 bytes).
func frameLen(n int) int {
	return 4 + 4*n + endFrameLen(n)
}

func endFrameLen(n int) int {
	end := (n + 15) / 16
	if end < 4 {
		end = 4
	}
	return end
}

// Len returns the number of LEDs in the chain.
func (s *Strip) Len() int {
	return len(s.pixels)
}

// SetPixel sets one LED. Out-of-range indexes are ignored so a malformed
// remote command cannot crash the firmware.
func (s *Strip) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

// Fill sets every LED to c.
func (s *Strip) Fill(c color.RGBA) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// SetBrightness sets the global brightness from an 8-bit level; the top
// five bits map onto the APA102 brightness field.
func (s *Strip) SetBrightness(level uint8) {
	s.brightness = level >> 3
}

// Render builds the wire-format frame for the current pixel buffer and
// returns it. The slice is reused by the next Render call; callers that
// hand it to a DMA engine must render again only after the transfer
// completes.
func (s *Strip) Render() []byte {
	f := s.frame[:0]
	f = append(f, 0x00, 0x00, 0x00, 0x00)
	for _, p := range s.pixels {
		f = append(f, 0xE0|s.brightness, p.B, p.G, p.R)
	}
	for i := 0; i < endFrameLen(len(s.pixels)); i++ {
		f = append(f, 0xFF)
	}
	s.frame = f
	return f
}

// Show renders the pixel buffer and pushes it out on the bus.
func (s *Strip) Show() error {
	return s.bus.Tx(s.Render(), nil)
}
