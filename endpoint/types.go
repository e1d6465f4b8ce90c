package endpoint

import (
	"errors"
	"fmt"

	"github.com/doytsujin/of-protocol/ofp"
)

// ErrNotConnected is returned by Send when the endpoint is not in the
// OPEN state.
var ErrNotConnected = errors.New("endpoint: not connected")

// ErrFiltered is returned by Send when the role/async filter (4.6)
// suppresses the message.
var ErrFiltered = errors.New("endpoint: filtered")

// ErrStopped is returned by public operations issued after Stop.
var ErrStopped = errors.New("endpoint: stopped")

// BadMessageError is returned by Send when the message type is not in
// the outbound set.
type BadMessageError struct {
	Type ofp.Type
}

func (e *BadMessageError) Error() string {
	return fmt.Sprintf("endpoint: bad message: type %s is not outbound", e.Type)
}

// EncodeError wraps a failure to serialize an outbound message.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("endpoint: encode error: %s", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// outboundTypes is the set of message types a client may send (3).
var outboundTypes = map[ofp.Type]bool{
	ofp.TypeHello:               true,
	ofp.TypeError:               true,
	ofp.TypeEchoReply:           true,
	ofp.TypeFeaturesReply:       true,
	ofp.TypeGetConfigReply:      true,
	ofp.TypePacketIn:            true,
	ofp.TypeFlowRemoved:         true,
	ofp.TypePortStatus:          true,
	ofp.TypeMultipartReply:      true,
	ofp.TypeBarrierReply:        true,
	ofp.TypeQueueGetConfigReply: true,
	ofp.TypeRoleReply:           true,
	ofp.TypeGetAsyncReply:       true,
}

// forwardableTypes is the set of inbound types delivered to the parent
// as message_received (4.4.2).
var forwardableTypes = map[ofp.Type]bool{
	ofp.TypeEchoRequest:           true,
	ofp.TypeFeaturesRequest:       true,
	ofp.TypeGetConfigRequest:      true,
	ofp.TypeSetConfig:             true,
	ofp.TypePacketOut:             true,
	ofp.TypeFlowMod:               true,
	ofp.TypeGroupMod:              true,
	ofp.TypePortMod:               true,
	ofp.TypeTableMod:              true,
	ofp.TypeMultipartRequest:      true,
	ofp.TypeBarrierRequest:        true,
	ofp.TypeQueueGetConfigRequest: true,
	ofp.TypeMeterMod:              true,
}

// slaveBlockedTypes is the set of inbound types denied while in role
// slave (4.4.1).
var slaveBlockedTypes = map[ofp.Type]bool{
	ofp.TypeFlowMod:  true,
	ofp.TypeGroupMod: true,
	ofp.TypePortMod:  true,
	ofp.TypeTableMod: true,
	ofp.TypeMeterMod: true,
}
