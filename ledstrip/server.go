package ledstrip

import (
	"image/color"

	"ledcon/protocol"
)

// Server is the firmware side of the serial link: it decodes frames from
// the transport byte stream and applies them to a strip.
type Server struct {
	strip *Strip
	dec   protocol.Decoder

	// send transmits reply bytes to the host. May be nil when the
	// transport has no return path.
	send func([]byte) error

	scratch []byte
}

// NewServer returns a server driving strip. send, if non-nil, is used for
// ping acknowledgements.
func NewServer(strip *Strip, send func([]byte) error) *Server {
	return &Server{strip: strip, send: send}
}

// Feed consumes one byte from the transport. Completed commands are applied
// immediately; the returned error is the strip or transport error, if any.
func (s *Server) Feed(b byte) error {
	f, ok := s.dec.Feed(b)
	if !ok {
		return nil
	}
	return s.apply(f)
}

// BadFrames reports corrupt frames seen on the link.
func (s *Server) BadFrames() uint32 {
	return s.dec.BadFrames()
}

func (s *Server) apply(f protocol.Frame) error {
	switch f.Cmd {
	case protocol.CmdPing:
		if s.send == nil {
			return nil
		}
		wire, err := protocol.Encode(s.scratch[:0], protocol.CmdAck, nil)
		if err != nil {
			return err
		}
		s.scratch = wire
		return s.send(wire)

	case protocol.CmdSetPixel:
		if len(f.Payload) != 4 {
			return nil // malformed; drop
		}
		s.strip.SetPixel(int(f.Payload[0]), color.RGBA{
			R: f.Payload[1], G: f.Payload[2], B: f.Payload[3], A: 0xFF,
		})

	case protocol.CmdFill:
		if len(f.Payload) != 3 {
			return nil
		}
		s.strip.Fill(color.RGBA{R: f.Payload[0], G: f.Payload[1], B: f.Payload[2], A: 0xFF})

	case protocol.CmdBrightness:
		if len(f.Payload) != 1 {
			return nil
		}
		s.strip.SetBrightness(f.Payload[0])

	case protocol.CmdShow:
		return s.strip.Show()
	}
	return nil
}
