package endpoint

import (
	"fmt"

	"github.com/doytsujin/of-protocol/ofp"
)

// UnsupportedVersionError reports a pre-4 HELLO whose header version is
// not among the versions this client was configured with.
type UnsupportedVersionError struct {
	Version ofp.Version
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("endpoint: unsupported version: %s", e.Version)
}

// NoCommonVersionError reports a version-4+ HELLO whose advertised
// version set shares nothing with this client's configured versions.
type NoCommonVersionError struct {
	Client []ofp.Version
	Server []ofp.Version
}

func (e *NoCommonVersionError) Error() string {
	return fmt.Sprintf("endpoint: no common version: client=%v server=%v", e.Client, e.Server)
}

// BadDataError reports a framing or decode failure on data already
// read from the socket.
type BadDataError struct {
	Bytes []byte
	Err   error
}

func (e *BadDataError) Error() string {
	return fmt.Sprintf("endpoint: bad data (%d bytes): %s", len(e.Bytes), e.Err)
}

func (e *BadDataError) Unwrap() error { return e.Err }

// TCPError wraps a transport-level read/write/dial failure.
type TCPError struct {
	Err error
}

func (e *TCPError) Error() string { return fmt.Sprintf("endpoint: tcp error: %s", e.Err) }
func (e *TCPError) Unwrap() error { return e.Err }

// ErrBadInitialMessage is the reset reason when the first message
// received on a new connection is not HELLO.
var ErrBadInitialMessage = fmt.Errorf("endpoint: first message was not hello")

// ErrTCPClosed is the reset reason when the peer closes the connection
// cleanly.
var ErrTCPClosed = fmt.Errorf("endpoint: connection closed by peer")
