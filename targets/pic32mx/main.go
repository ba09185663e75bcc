//go:build tinygo

package main

import (
	"image/color"
	"time"
	"unsafe"

	"ledcon/core"
	"ledcon/ledstrip"
)

const (
	stripLEDs = 60

	// APA102 data rate. The chain reshapes the clock per LED, so this can
	// be well above fixed-timing protocols like WS2812.
	stripBaud = 8_000_000
)

// useDMARefresh selects how frames reach the SPI data buffer: busy-poll
// transmission through the bus adapter, or block transfers driven by the
// DMA engine. The two are mutually exclusive usage patterns of the SPI
// channel; never mix them on one channel.
const useDMARefresh = true

func main() {
	ctrl := core.NewSPIController(peripheralClock, hardwareSPIPorts())
	core.SetSPIController(ctrl)

	ch, err := ctrl.Acquire(core.SPIChannel2, core.SPIChannelConfig{
		Baudrate: stripBaud,
		Control:  core.SPIConMaster | core.SPIConClkEdge | core.SPIConEnhBuf,
	})
	if err != nil {
		// Nothing sensible to do on a bare MCU without its one SPI channel.
		panic(err)
	}

	var dma *dmaChannel
	if useDMARefresh {
		dma = dmaChannelAt(0)
		ch.ConfigureDMADestination(dma)
	}
	ch.Enable()

	strip := ledstrip.New(core.NewSPIBus(ch), stripLEDs)

	// Rotating rainbow until reset.
	var offset uint8
	for {
		for i := 0; i < strip.Len(); i++ {
			strip.SetPixel(i, wheel(uint8(i*256/strip.Len())+offset))
		}
		refresh(strip, dma)
		offset++
		time.Sleep(20 * time.Millisecond)
	}
}

func refresh(strip *ledstrip.Strip, dma *dmaChannel) {
	if !useDMARefresh {
		if err := strip.Show(); err != nil {
			core.DebugPrintln("strip refresh failed: " + err.Error())
		}
		return
	}

	// Point the armed channel at this frame and let the transmit events
	// clock it out; the frame buffer must stay untouched until the block
	// completes.
	frame := strip.Render()
	dma.ConfigureSource(uintptr(unsafe.Pointer(&frame[0])), uint32(len(frame)))
	dma.startBlock()
	for !dma.blockDone() {
	}
}

// wheel maps 0-255 onto a red-green-blue color wheel.
func wheel(pos uint8) color.RGBA {
	switch {
	case pos < 85:
		return color.RGBA{R: 255 - pos*3, G: pos * 3, A: 0xFF}
	case pos < 170:
		pos -= 85
		return color.RGBA{G: 255 - pos*3, B: pos * 3, A: 0xFF}
	default:
		pos -= 170
		return color.RGBA{B: 255 - pos*3, R: pos * 3, A: 0xFF}
	}
}
