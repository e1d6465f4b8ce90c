package endpoint

import "github.com/doytsujin/of-protocol/ofp"

// Parent receives the three upcall shapes an endpoint ever emits (6.3).
// Implementations must return promptly: upcalls are delivered from the
// endpoint's own event loop goroutine, so a slow or blocking Parent
// method stalls that connection.
type Parent interface {
	// Connected is called once HELLO negotiation succeeds.
	Connected(c *Client, version ofp.Version)

	// MessageReceived is called for every forwardable inbound message
	// (4.4).
	MessageReceived(c *Client, msg *ofp.Message)

	// ConnectionClosed is called on every reset, naming the reason.
	ConnectionClosed(c *Client, reason error)
}

type noopParent struct{}

func (noopParent) Connected(*Client, ofp.Version)     {}
func (noopParent) MessageReceived(*Client, *ofp.Message) {}
func (noopParent) ConnectionClosed(*Client, error)       {}
