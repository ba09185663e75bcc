package protocol

import (
	"bytes"
	"testing"
)

// feed pushes a byte slice through the decoder and collects completed
// frames, copying payloads so they survive further feeding.
func feed(d *Decoder, data []byte) []Frame {
	var frames []Frame
	for _, b := range data {
		if f, ok := d.Feed(b); ok {
			f.Payload = append([]byte(nil), f.Payload...)
			frames = append(frames, f)
		}
	}
	return frames
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		cmd     byte
		payload []byte
	}{
		{"no payload", CmdShow, nil},
		{"ping", CmdPing, nil},
		{"set pixel", CmdSetPixel, []byte{7, 255, 128, 0}},
		{"max payload", CmdFill, bytes.Repeat([]byte{0xAB}, MaxPayload)},
		{"payload containing sync byte", CmdFill, []byte{SyncByte, SyncByte, 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wire, err := Encode(nil, tc.cmd, tc.payload)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			var d Decoder
			frames := feed(&d, wire)
			if len(frames) != 1 {
				t.Fatalf("decoded %d frames, want 1", len(frames))
			}
			if frames[0].Cmd != tc.cmd {
				t.Errorf("cmd = %d, want %d", frames[0].Cmd, tc.cmd)
			}
			if !bytes.Equal(frames[0].Payload, tc.payload) {
				t.Errorf("payload = %v, want %v", frames[0].Payload, tc.payload)
			}
		})
	}
}

func TestEncodeAppends(t *testing.T) {
	wire, err := Encode(nil, CmdPing, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	wire, err = Encode(wire, CmdShow, nil)
	if err != nil {
		t.Fatalf("second Encode failed: %v", err)
	}

	var d Decoder
	frames := feed(&d, wire)
	if len(frames) != 2 {
		t.Fatalf("decoded %d frames, want 2", len(frames))
	}
	if frames[0].Cmd != CmdPing || frames[1].Cmd != CmdShow {
		t.Errorf("commands = %d,%d, want %d,%d", frames[0].Cmd, frames[1].Cmd, CmdPing, CmdShow)
	}
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	if _, err := Encode(nil, CmdFill, make([]byte, MaxPayload+1)); err != ErrPayloadTooLarge {
		t.Errorf("want ErrPayloadTooLarge, got %v", err)
	}
}

func TestDecoderRejectsBadCRC(t *testing.T) {
	wire, err := Encode(nil, CmdSetPixel, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	wire[len(wire)-1] ^= 0xFF // corrupt CRC low byte

	var d Decoder
	if frames := feed(&d, wire); len(frames) != 0 {
		t.Errorf("decoded %d frames from corrupt input, want 0", len(frames))
	}
	if d.BadFrames() != 1 {
		t.Errorf("BadFrames = %d, want 1", d.BadFrames())
	}

	// The decoder must recover: a following good frame still decodes.
	good, err := Encode(nil, CmdShow, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	frames := feed(&d, good)
	if len(frames) != 1 || frames[0].Cmd != CmdShow {
		t.Errorf("decoder did not recover after CRC failure: %v", frames)
	}
}

func TestDecoderResyncsAfterGarbage(t *testing.T) {
	wire, err := Encode(nil, CmdBrightness, []byte{200})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	input := append([]byte{0x00, 0xFF, 0x13, 0x37}, wire...)
	var d Decoder
	frames := feed(&d, input)
	if len(frames) != 1 || frames[0].Cmd != CmdBrightness {
		t.Fatalf("decoded %v, want single brightness frame", frames)
	}
	if !bytes.Equal(frames[0].Payload, []byte{200}) {
		t.Errorf("payload = %v, want [200]", frames[0].Payload)
	}
}

func TestDecoderRejectsImplausibleLength(t *testing.T) {
	var d Decoder
	// Sync followed by an impossible length byte.
	input := []byte{SyncByte, 0xF0, 0x00, 0x00}
	if frames := feed(&d, input); len(frames) != 0 {
		t.Errorf("decoded %d frames, want 0", len(frames))
	}
	if d.BadFrames() != 1 {
		t.Errorf("BadFrames = %d, want 1", d.BadFrames())
	}
}
