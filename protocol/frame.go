// Package protocol implements the framed serial link between the host tool
// and the LED controller firmware.
//
// Wire format of one frame:
//
//	sync (0x7E) | length | command | payload... | crc16 hi | crc16 lo
//
// length counts payload bytes only; the CRC covers length, command and
// payload. The decoder consumes a raw byte stream and resynchronizes on the
// sync byte after line noise or a failed CRC.
package protocol

import "errors"

// SyncByte marks the start of a frame.
const SyncByte = 0x7E

// Link commands.
const (
	CmdPing byte = iota + 1
	CmdAck
	CmdSetPixel   // payload: index, r, g, b
	CmdFill       // payload: r, g, b
	CmdBrightness // payload: level
	CmdShow       // no payload
)

// MaxPayload bounds frame payloads so the firmware side can decode into a
// fixed buffer.
const MaxPayload = 64

// ErrPayloadTooLarge reports an Encode payload over MaxPayload bytes.
var ErrPayloadTooLarge = errors.New("protocol: payload too large")

// Frame is one decoded link message. Payload aliases the decoder's internal
// buffer and is only valid until the next Feed call.
type Frame struct {
	Cmd     byte
	Payload []byte
}

// Encode appends the wire form of one frame to dst and returns the extended
// slice.
func Encode(dst []byte, cmd byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return dst, ErrPayloadTooLarge
	}

	start := len(dst)
	dst = append(dst, SyncByte, byte(len(payload)), cmd)
	dst = append(dst, payload...)

	crc := CRC16(dst[start+1:]) // length, command, payload
	dst = append(dst, byte(crc>>8), byte(crc))
	return dst, nil
}

type decoderState uint8

const (
	stateSync decoderState = iota
	stateLength
	stateCmd
	statePayload
	stateCRCHi
	stateCRCLo
)

// Decoder is a streaming frame parser. Feed it bytes as they arrive from
// the transport; it holds no reference to the input.
type Decoder struct {
	state   decoderState
	length  uint8
	cmd     byte
	payload [MaxPayload]byte
	n       uint8
	crcHi   byte

	// badFrames counts CRC failures and oversized length bytes since
	// construction, for link debugging.
	badFrames uint32
}

// BadFrames returns the number of corrupt frames seen so far.
func (d *Decoder) BadFrames() uint32 {
	return d.badFrames
}

// Feed consumes one byte of the input stream. When the byte completes a
// valid frame, Feed returns it and true.
func (d *Decoder) Feed(b byte) (Frame, bool) {
	switch d.state {
	case stateSync:
		if b == SyncByte {
			d.state = stateLength
		}

	case stateLength:
		if b > MaxPayload {
			// Not a plausible frame start; hunt for the next sync byte.
			d.badFrames++
			d.state = stateSync
			break
		}
		d.length = b
		d.n = 0
		d.state = stateCmd

	case stateCmd:
		d.cmd = b
		if d.length == 0 {
			d.state = stateCRCHi
		} else {
			d.state = statePayload
		}

	case statePayload:
		d.payload[d.n] = b
		d.n++
		if d.n == d.length {
			d.state = stateCRCHi
		}

	case stateCRCHi:
		d.crcHi = b
		d.state = stateCRCLo

	case stateCRCLo:
		d.state = stateSync
		want := uint16(d.crcHi)<<8 | uint16(b)
		if d.frameCRC() != want {
			d.badFrames++
			break
		}
		return Frame{Cmd: d.cmd, Payload: d.payload[:d.length]}, true
	}
	return Frame{}, false
}

func (d *Decoder) frameCRC() uint16 {
	crc := uint16(0xFFFF)
	body := [2]byte{d.length, d.cmd}
	for _, b := range body {
		crc = crcByte(crc, b)
	}
	for _, b := range d.payload[:d.length] {
		crc = crcByte(crc, b)
	}
	return crc
}

func crcByte(crc uint16, b byte) uint16 {
	b = b ^ uint8(crc&0xFF)
	b = b ^ (b << 4)
	b16 := uint16(b)
	return (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
}
