package ofp

import "fmt"

// Parser accumulates an OpenFlow byte stream and yields complete
// messages as they become available. It exists because TCP delivers a
// byte stream, not a message stream: a single Write on the far end can
// arrive split across reads, or several messages can arrive coalesced
// into one read.
//
// A Parser needs no version at construction: the header carries its
// own version byte, and every registered body type is self-describing
// from Header.Length alone. The zero value is ready to use.
type Parser struct {
	buf []byte
}

// FramingError reports a stream that can no longer be trusted to
// contain message boundaries: a declared Length shorter than a header,
// or a decode failure on a span the buffer already holds in full. Both
// are unrecoverable for this Parser instance — the caller must drop
// the connection.
type FramingError struct {
	Reason string
	Bytes  []byte
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("ofp: framing error: %s (%d bytes offending)", e.Reason, len(e.Bytes))
}

// Feed appends chunk to the internal buffer and extracts every
// complete message now available. It never drops bytes: anything
// short of a full message is retained for the next call.
func (p *Parser) Feed(chunk []byte) ([]*Message, error) {
	p.buf = append(p.buf, chunk...)

	var out []*Message
	for {
		if len(p.buf) < HeaderLen {
			return out, nil
		}

		length := uint16(p.buf[2])<<8 | uint16(p.buf[3])
		if int(length) < HeaderLen {
			offending := p.buf
			p.buf = nil
			return out, &FramingError{
				Reason: fmt.Sprintf("length %d shorter than header", length),
				Bytes:  offending,
			}
		}

		if len(p.buf) < int(length) {
			return out, nil
		}

		msg, rest, err := Decode(p.buf)
		if err != nil {
			offending := p.buf[:length]
			p.buf = nil
			return out, &FramingError{Reason: err.Error(), Bytes: offending}
		}

		out = append(out, msg)
		p.buf = rest
	}
}
