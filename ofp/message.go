package ofp

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/doytsujin/of-protocol/internal/encoding"
)

// Body is a message body: every OpenFlow payload following the header
// knows how to read and write itself.
type Body interface {
	encoding.ReadWriter
}

// EmptyBody is the body of messages that carry nothing beyond the
// header (features_request, barrier_request, barrier_reply,
// get_async_request).
type EmptyBody struct{}

// WriteTo implements io.WriterTo. It writes nothing.
func (EmptyBody) WriteTo(w io.Writer) (int64, error) { return 0, nil }

// ReadFrom implements io.ReaderFrom. It drains and discards any
// trailing bytes, so a peer that (incorrectly) attaches a body to one
// of these types does not desync the parser.
func (b *EmptyBody) ReadFrom(r io.Reader) (int64, error) {
	n, err := io.Copy(ioutil.Discard, r)
	return n, err
}

// RawBody is the fallback body for message types whose layout this
// client does not parse structurally. It preserves the bytes verbatim
// so they still round-trip and can be forwarded upward untouched.
type RawBody struct {
	Bytes []byte
}

// WriteTo implements io.WriterTo.
func (b *RawBody) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

// ReadFrom implements io.ReaderFrom.
func (b *RawBody) ReadFrom(r io.Reader) (int64, error) {
	buf, err := ioutil.ReadAll(r)
	b.Bytes = buf
	return int64(len(buf)), err
}

// bodyMaker constructs the zero value of a message body for a type.
type bodyMaker func() Body

// bodyRegistry maps a message Type to the Go value that represents its
// body. Types absent from this table decode into RawBody.
var bodyRegistry = map[Type]bodyMaker{
	TypeHello:                 func() Body { return &Hello{} },
	TypeError:                 func() Body { return &Error{} },
	TypeEchoRequest:           func() Body { return &EchoRequest{} },
	TypeEchoReply:             func() Body { return &EchoReply{} },
	TypeFeaturesRequest:       func() Body { return &EmptyBody{} },
	TypeFeaturesReply:         func() Body { return &SwitchFeatures{} },
	TypeGetConfigRequest:      func() Body { return &EmptyBody{} },
	TypeGetConfigReply:        func() Body { return &SwitchConfig{} },
	TypeSetConfig:             func() Body { return &SwitchConfig{} },
	TypePacketIn:              func() Body { return &PacketIn{} },
	TypeFlowRemoved:           func() Body { return &FlowRemoved{} },
	TypePortStatus:            func() Body { return &PortStatus{} },
	TypePacketOut:             func() Body { return &PacketOut{} },
	TypeFlowMod:               func() Body { return &FlowMod{} },
	TypeGroupMod:              func() Body { return &GroupMod{} },
	TypePortMod:               func() Body { return &PortMod{} },
	TypeTableMod:              func() Body { return &TableMod{} },
	TypeMeterMod:              func() Body { return &MeterMod{} },
	TypeMultipartRequest:      func() Body { return &MultipartRequest{} },
	TypeMultipartReply:        func() Body { return &MultipartReply{} },
	TypeBarrierRequest:        func() Body { return &EmptyBody{} },
	TypeBarrierReply:          func() Body { return &EmptyBody{} },
	TypeQueueGetConfigRequest: func() Body { return &QueueGetConfigRequest{} },
	TypeQueueGetConfigReply:   func() Body { return &QueueGetConfigReply{} },
	TypeRoleRequest:           func() Body { return &RoleRequest{} },
	TypeRoleReply:             func() Body { return &RoleReply{} },
	TypeGetAsyncRequest:       func() Body { return &EmptyBody{} },
	TypeGetAsyncReply:         func() Body { return &AsyncConfig{} },
	TypeSetAsync:              func() Body { return &AsyncConfig{} },
}

// NewBody allocates the canonical body value for a message type,
// falling back to RawBody for types this client does not parse
// structurally (per the spec's generic header+payload path).
func NewBody(t Type) Body {
	if maker, ok := bodyRegistry[t]; ok {
		return maker()
	}
	return &RawBody{}
}

// Message is a single, fully decoded OpenFlow message.
type Message struct {
	Header Header
	Body   Body
}

// New constructs a message with the given type, version and XID, ready
// to be filled in and encoded.
func New(version Version, t Type, xid uint32, body Body) *Message {
	if body == nil {
		body = NewBody(t)
	}
	return &Message{Header{version, t, 0, xid}, body}
}

// WriteTo implements io.WriterTo. It serializes the header and body,
// recomputing Header.Length from the actual encoded size.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	var body bytes.Buffer
	if m.Body != nil {
		if _, err := m.Body.WriteTo(&body); err != nil {
			return 0, err
		}
	}

	if body.Len() > 0xffff-HeaderLen {
		return 0, fmt.Errorf("ofp: message body too long: %d bytes", body.Len())
	}

	m.Header.Length = uint16(HeaderLen + body.Len())

	var out bytes.Buffer
	if _, err := m.Header.WriteTo(&out); err != nil {
		return 0, err
	}
	if _, err := body.WriteTo(&out); err != nil {
		return 0, err
	}

	return out.WriteTo(w)
}

// ReadFrom implements io.ReaderFrom. The reader must be limited to
// exactly Header.Length-HeaderLen bytes of body for correct framing;
// Parser guarantees this (see parser.go).
func (m *Message) ReadFrom(r io.Reader) (int64, error) {
	n, err := m.Header.ReadFrom(r)
	if err != nil {
		return n, err
	}

	m.Body = NewBody(m.Header.Type)
	nn, err := m.Body.ReadFrom(r)
	return n + nn, err
}

// Decode parses the first complete message out of buf, which must
// contain at least Header.Length bytes (the parser's job, not this
// function's — see §4.1/§4.2 of the design). It returns the decoded
// message and any bytes left over in buf.
func Decode(buf []byte) (*Message, []byte, error) {
	if len(buf) < HeaderLen {
		return nil, buf, ErrShortBuffer
	}

	var h Header
	if _, err := h.ReadFrom(bytes.NewReader(buf[:HeaderLen])); err != nil {
		return nil, buf, &BadMessageError{Kind: "bad header", Err: err}
	}

	if int(h.Length) < HeaderLen {
		return nil, buf, &BadMessageError{Kind: fmt.Sprintf("length %d shorter than header", h.Length)}
	}

	if len(buf) < int(h.Length) {
		return nil, buf, ErrShortBuffer
	}

	body := NewBody(h.Type)
	bodyBuf := buf[HeaderLen:h.Length]

	if _, err := body.ReadFrom(bytes.NewReader(bodyBuf)); err != nil {
		return nil, buf, &BadMessageError{Kind: fmt.Sprintf("bad %s body", h.Type), Err: err}
	}

	return &Message{h, body}, buf[h.Length:], nil
}

// Encode serializes a message to bytes.
func Encode(m *Message) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrShortBuffer indicates the buffer does not yet hold a complete
// message; it is not a decode failure, it is a request for more bytes
// (see Parser).
var ErrShortBuffer = fmt.Errorf("ofp: buffer does not hold a complete message")

// BadMessageError reports a malformed message: an unknown type code, a
// truncated structure, or an inconsistency between a declared length
// and the structure's actual contents.
type BadMessageError struct {
	Kind string
	Err  error
}

func (e *BadMessageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ofp: bad message: %s: %s", e.Kind, e.Err)
	}
	return fmt.Sprintf("ofp: bad message: %s", e.Kind)
}

func (e *BadMessageError) Unwrap() error { return e.Err }
