package ofp

import (
	"fmt"
	"io"

	"github.com/doytsujin/of-protocol/internal/encoding"
)

// Version identifies a revision of the OpenFlow wire protocol. Only the
// versions relevant to this client are named; others still round-trip
// through Header since the field is a plain uint8 on the wire.
type Version uint8

const (
	// Version1 is OpenFlow 1.0.
	Version1 Version = 1

	// Version3 is OpenFlow 1.2.
	Version3 Version = 3

	// Version4 is OpenFlow 1.3.
	Version4 Version = 4
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "1.0"
	case Version3:
		return "1.2"
	case Version4:
		return "1.3"
	default:
		return fmt.Sprintf("Version(%d)", uint8(v))
	}
}

// SupportsVersionBitmap reports whether the HELLO handshake for this
// version carries an optional element list (version 4 and above).
func (v Version) SupportsVersionBitmap() bool {
	return v >= Version4
}

// Type is the symbolic OpenFlow message type, carried on the wire as a
// single byte following the header's version field.
type Type uint8

const (
	// TypeHello is exchanged as the very first message on a connection.
	TypeHello Type = iota
	// TypeError reports a failure to process a previous request.
	TypeError
	// TypeEchoRequest checks liveness and measures latency.
	TypeEchoRequest
	// TypeEchoReply answers TypeEchoRequest.
	TypeEchoReply
	// TypeExperimenter carries vendor-specific extensions.
	TypeExperimenter

	// TypeFeaturesRequest asks the datapath for its capabilities.
	TypeFeaturesRequest
	// TypeFeaturesReply answers TypeFeaturesRequest.
	TypeFeaturesReply
	// TypeGetConfigRequest asks for the current switch configuration.
	TypeGetConfigRequest
	// TypeGetConfigReply answers TypeGetConfigRequest.
	TypeGetConfigReply
	// TypeSetConfig changes switch configuration flags.
	TypeSetConfig

	// TypePacketIn delivers a packet the datapath could not process itself.
	TypePacketIn
	// TypeFlowRemoved reports the eviction of a flow entry.
	TypeFlowRemoved
	// TypePortStatus reports a change to a port's configuration or state.
	TypePortStatus

	// TypePacketOut asks the datapath to emit a packet.
	TypePacketOut
	// TypeFlowMod installs, modifies, or removes a flow entry.
	TypeFlowMod
	// TypeGroupMod installs, modifies, or removes a group entry.
	TypeGroupMod
	// TypePortMod changes a port's configuration.
	TypePortMod
	// TypeTableMod changes flow table configuration.
	TypeTableMod

	// TypeMultipartRequest asks for statistics or descriptive state.
	TypeMultipartRequest
	// TypeMultipartReply answers TypeMultipartRequest, possibly in parts.
	TypeMultipartReply

	// TypeBarrierRequest fences preceding requests from following ones.
	TypeBarrierRequest
	// TypeBarrierReply answers TypeBarrierRequest.
	TypeBarrierReply

	// TypeQueueGetConfigRequest asks for the queue configuration of a port.
	TypeQueueGetConfigRequest
	// TypeQueueGetConfigReply answers TypeQueueGetConfigRequest.
	TypeQueueGetConfigReply

	// TypeRoleRequest asks to change, or query, the controller's role.
	TypeRoleRequest
	// TypeRoleReply answers TypeRoleRequest.
	TypeRoleReply

	// TypeGetAsyncRequest asks for the current asynchronous message filter.
	TypeGetAsyncRequest
	// TypeGetAsyncReply answers TypeGetAsyncRequest.
	TypeGetAsyncReply
	// TypeSetAsync installs a new asynchronous message filter.
	TypeSetAsync

	// TypeMeterMod installs, modifies, or removes a meter entry.
	TypeMeterMod
)

var typeText = map[Type]string{
	TypeHello:                 "OFPT_HELLO",
	TypeError:                 "OFPT_ERROR",
	TypeEchoRequest:           "OFPT_ECHO_REQUEST",
	TypeEchoReply:             "OFPT_ECHO_REPLY",
	TypeExperimenter:          "OFPT_EXPERIMENTER",
	TypeFeaturesRequest:       "OFPT_FEATURES_REQUEST",
	TypeFeaturesReply:         "OFPT_FEATURES_REPLY",
	TypeGetConfigRequest:      "OFPT_GET_CONFIG_REQUEST",
	TypeGetConfigReply:        "OFPT_GET_CONFIG_REPLY",
	TypeSetConfig:             "OFPT_SET_CONFIG",
	TypePacketIn:              "OFPT_PACKET_IN",
	TypeFlowRemoved:           "OFPT_FLOW_REMOVED",
	TypePortStatus:            "OFPT_PORT_STATUS",
	TypePacketOut:             "OFPT_PACKET_OUT",
	TypeFlowMod:               "OFPT_FLOW_MOD",
	TypeGroupMod:              "OFPT_GROUP_MOD",
	TypePortMod:               "OFPT_PORT_MOD",
	TypeTableMod:              "OFPT_TABLE_MOD",
	TypeMultipartRequest:      "OFPT_MULTIPART_REQUEST",
	TypeMultipartReply:        "OFPT_MULTIPART_REPLY",
	TypeBarrierRequest:        "OFPT_BARRIER_REQUEST",
	TypeBarrierReply:          "OFPT_BARRIER_REPLY",
	TypeQueueGetConfigRequest: "OFPT_QUEUE_GET_CONFIG_REQUEST",
	TypeQueueGetConfigReply:   "OFPT_QUEUE_GET_CONFIG_REPLY",
	TypeRoleRequest:           "OFPT_ROLE_REQUEST",
	TypeRoleReply:             "OFPT_ROLE_REPLY",
	TypeGetAsyncRequest:       "OFPT_GET_ASYNC_REQUEST",
	TypeGetAsyncReply:         "OFPT_GET_ASYNC_REPLY",
	TypeSetAsync:              "OFPT_SET_ASYNC",
	TypeMeterMod:              "OFPT_METER_MOD",
}

func (t Type) String() string {
	return enumText(t, typeText, "Type")
}

// HeaderLen is the fixed size of the OpenFlow message header.
const HeaderLen = 8

// Header is the 8-byte preamble of every OpenFlow message.
type Header struct {
	// Version is the protocol version the sender used.
	Version Version

	// Type names the message body that follows the header.
	Type Type

	// Length is the size, in bytes, of the whole message including
	// this header. It is always recomputed by Message.WriteTo; callers
	// do not need to set it.
	Length uint16

	// XID correlates requests with their replies.
	XID uint32
}

// WriteTo implements io.WriterTo. It serializes the header in big-endian
// wire order.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	return encoding.WriteTo(w, h.Version, h.Type, h.Length, h.XID)
}

// ReadFrom implements io.ReaderFrom.
func (h *Header) ReadFrom(r io.Reader) (int64, error) {
	return encoding.ReadFrom(r, &h.Version, &h.Type, &h.Length, &h.XID)
}
