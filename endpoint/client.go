// Package endpoint implements the switch-side connection actor: one
// TCP socket, HELLO version negotiation, role-aware dispatch, and
// reconnection on loss.
package endpoint

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doytsujin/of-protocol/ofp"
)

type state int

const (
	stateDisconnected state = iota
	stateConnecting
	stateOpen
)

func (s state) String() string {
	switch s {
	case stateConnecting:
		return "CONNECTING"
	case stateOpen:
		return "OPEN"
	default:
		return "DISCONNECTED"
	}
}

// activeConn bundles everything owned by one TCP connection attempt.
// It is replaced wholesale on every reset so stale goroutines from a
// prior connection can be recognized and ignored by sequence number.
type activeConn struct {
	seq    uint64
	conn   net.Conn
	parser *ofp.Parser
	resume chan struct{}
}

type connEvent struct {
	seq  uint64
	data []byte
	err  error
}

type connectResult struct {
	seq  uint64
	conn net.Conn
	err  error
}

// Client is one switch-side OpenFlow endpoint: a single-threaded
// cooperative actor (5) that owns at most one TCP connection at a
// time. All exported methods are safe to call concurrently; they hand
// their work to the actor's own goroutine and block for its reply.
type Client struct {
	addr   string
	cfg    *config
	logger *logrus.Entry

	cmds      chan func(*Client)
	connectCh chan connectResult
	connEvent chan connEvent
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once

	timer *time.Timer

	// Actor-owned state: touched only from the run() goroutine.
	st      state
	role    Role
	genID   uint64
	filter  Filter
	version ofp.Version
	active  *activeConn
	connSeq uint64
	xid     uint32
}

// Start constructs a Client and immediately begins its first connect
// attempt (6.4). The returned handle is ready to use before
// negotiation completes; Send returns ErrNotConnected until then.
func Start(addr string, opts ...Option) (*Client, error) {
	cfg := newConfig(opts)
	if len(cfg.versions) == 0 {
		return nil, errors.New("endpoint: no versions configured")
	}

	c := &Client{
		addr:      addr,
		cfg:       cfg,
		logger:    cfg.logger.WithField("remote", addr),
		role:      RoleEqual,
		filter:    defaultFilter(),
		cmds:      make(chan func(*Client)),
		connectCh: make(chan connectResult, 1),
		connEvent: make(chan connEvent, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		timer:     time.NewTimer(time.Hour),
	}
	if !c.timer.Stop() {
		<-c.timer.C
	}

	go c.run()
	return c, nil
}

// ControllingProcess rebinds the upcall target (6.4). The previous
// parent is dropped; the endpoint never holds more than one.
func (c *Client) ControllingProcess(p Parent) error {
	return c.do(func(c *Client) error {
		if p == nil {
			p = noopParent{}
		}
		c.cfg.parent = p
		return nil
	})
}

// Send validates, filters, and encodes msg, writing it to the socket
// (4.5). It returns synchronously once the message has been queued to
// the OS socket buffer, not once the peer has processed it.
func (c *Client) Send(msg *ofp.Message) error {
	return c.do(func(c *Client) error { return c.doSend(msg) })
}

// MakeSlave demotes role master to slave; a no-op otherwise (9: the
// asymmetry is intentional, there is no MakeMaster/MakeEqual).
func (c *Client) MakeSlave() error {
	return c.do(func(c *Client) error {
		if c.role == RoleMaster {
			c.role = RoleSlave
		}
		return nil
	})
}

// Stop terminates the actor immediately: the socket is closed and no
// upcall is sent (5).
func (c *Client) Stop() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	<-c.doneCh
	return nil
}

// do submits fn to the actor and waits for it to run, translating a
// stopped actor into ErrStopped.
func (c *Client) do(fn func(*Client) error) error {
	reply := make(chan error, 1)
	select {
	case c.cmds <- func(c *Client) { reply <- fn(c) }:
	case <-c.doneCh:
		return ErrStopped
	}
	select {
	case err := <-reply:
		return err
	case <-c.doneCh:
		return ErrStopped
	}
}

func (c *Client) doSend(msg *ofp.Message) error {
	if !outboundTypes[msg.Header.Type] {
		return &BadMessageError{Type: msg.Header.Type}
	}
	if c.st != stateOpen {
		return ErrNotConnected
	}
	if !c.filter.allows(c.role, msg.Header.Type) {
		return ErrFiltered
	}

	msg.Header.Version = c.version
	buf, err := ofp.Encode(msg)
	if err != nil {
		return &EncodeError{Err: err}
	}

	if _, err := c.active.conn.Write(buf); err != nil {
		c.reset(&TCPError{Err: err})
		return &TCPError{Err: err}
	}
	return nil
}

// run is the actor's event loop. It owns all mutable Client state;
// every other goroutine communicates with it through channels.
func (c *Client) run() {
	defer close(c.doneCh)
	defer c.teardown()

	c.attemptConnect()

	for {
		select {
		case <-c.stopCh:
			return

		case cmd := <-c.cmds:
			cmd(c)

		case res := <-c.connectCh:
			c.handleConnectResult(res)

		case ev := <-c.connEvent:
			c.handleConnEvent(ev)

		case <-c.timer.C:
			c.attemptConnect()
		}
	}
}

// teardown runs once when the actor exits, regardless of cause.
func (c *Client) teardown() {
	c.timer.Stop()
	if c.active != nil {
		c.active.conn.Close()
		close(c.active.resume)
		c.active = nil
	}
}

func (c *Client) attemptConnect() {
	c.connSeq++
	seq := c.connSeq
	addr := c.addr

	go func() {
		conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
		select {
		case c.connectCh <- connectResult{seq: seq, conn: conn, err: err}:
		case <-c.doneCh:
			if conn != nil {
				conn.Close()
			}
		}
	}()
}

func (c *Client) handleConnectResult(res connectResult) {
	if res.seq != c.connSeq {
		if res.conn != nil {
			res.conn.Close()
		}
		return
	}

	if res.err != nil {
		c.logger.WithError(res.err).Warn("endpoint: connect failed")
		c.rearmTimer()
		return
	}

	c.active = &activeConn{
		seq:    res.seq,
		conn:   res.conn,
		parser: &ofp.Parser{},
		resume: make(chan struct{}, 1),
	}
	c.st = stateConnecting
	c.xid++

	hello := buildHello(c.cfg.versions)
	version := sortedDesc(c.cfg.versions)[0]
	buf, err := ofp.Encode(ofp.New(version, ofp.TypeHello, c.xid, hello))
	if err != nil {
		c.logger.WithError(err).Error("endpoint: failed to encode hello")
		c.reset(&EncodeError{Err: err})
		return
	}
	if _, err := res.conn.Write(buf); err != nil {
		c.reset(&TCPError{Err: err})
		return
	}

	c.logger.WithField("version", version).Info("endpoint: hello sent, awaiting peer hello")

	go c.readLoop(c.active)
	c.active.resume <- struct{}{}
}

// readLoop requests exactly one Read per resume signal (5: read-one,
// active-once), so the actor can never be flooded faster than it can
// process. It exits cleanly when active.resume is closed by reset or
// teardown.
func (c *Client) readLoop(active *activeConn) {
	buf := make([]byte, 8192)
	for range active.resume {
		n, err := active.conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case c.connEvent <- connEvent{seq: active.seq, data: chunk}:
			case <-c.doneCh:
				return
			}
		}
		if err != nil {
			select {
			case c.connEvent <- connEvent{seq: active.seq, err: err}:
			case <-c.doneCh:
			}
			return
		}
	}
}

func (c *Client) handleConnEvent(ev connEvent) {
	if c.active == nil || ev.seq != c.active.seq {
		return
	}

	if ev.err != nil {
		if errors.Is(ev.err, io.EOF) {
			c.reset(ErrTCPClosed)
		} else {
			c.reset(&TCPError{Err: ev.err})
		}
		return
	}

	msgs, err := c.active.parser.Feed(ev.data)
	if err != nil {
		var ferr *ofp.FramingError
		bytes := ev.data
		if errors.As(err, &ferr) {
			bytes = ferr.Bytes
		}
		c.reset(&BadDataError{Bytes: bytes, Err: err})
		return
	}

	for _, msg := range msgs {
		if c.st == stateConnecting {
			if !c.completeHandshake(msg) {
				return
			}
			continue
		}
		c.dispatch(msg)
		if c.st != stateOpen {
			return
		}
	}

	if c.active != nil {
		select {
		case c.active.resume <- struct{}{}:
		default:
		}
	}
}

// completeHandshake processes the single expected inbound HELLO in
// CONNECTING (4.3). It returns false if it reset the connection.
func (c *Client) completeHandshake(msg *ofp.Message) bool {
	hello, ok := msg.Body.(*ofp.Hello)
	if msg.Header.Type != ofp.TypeHello || !ok {
		c.reset(ErrBadInitialMessage)
		return false
	}

	version, err := negotiateVersion(c.cfg.versions, msg.Header.Version, hello)
	if err != nil {
		c.logger.WithError(err).Warn("endpoint: version negotiation failed")
		c.reset(err)
		return false
	}

	c.version = version
	c.st = stateOpen
	c.logger.WithField("version", version).Info("endpoint: connected")
	c.cfg.parent.Connected(c, version)
	return true
}

// dispatch implements inbound message dispatch in OPEN (4.4).
func (c *Client) dispatch(msg *ofp.Message) {
	t := msg.Header.Type

	if c.role == RoleSlave && slaveBlockedTypes[t] {
		c.denySlaveWrite(msg.Header.XID)
		return
	}

	if forwardableTypes[t] {
		c.cfg.parent.MessageReceived(c, msg)
		return
	}

	// role_request, get_async_request, set_async, and any other inbound
	// type are reserved (9) and dropped silently.
}

// denySlaveWrite synthesizes a bad_request/is_slave error reply and
// writes it directly to the socket, bypassing the parent entirely.
func (c *Client) denySlaveWrite(xid uint32) {
	reply := ofp.New(c.version, ofp.TypeError, xid, &ofp.Error{
		Type: ofp.ErrTypeBadRequest,
		Code: ofp.ErrCodeBadRequestIsSlave,
	})

	buf, err := ofp.Encode(reply)
	if err != nil {
		c.logger.WithError(err).Error("endpoint: failed to encode is_slave error")
		return
	}
	if _, err := c.active.conn.Write(buf); err != nil {
		c.reset(&TCPError{Err: err})
	}
}

// reset implements 4.3's reset action: close the socket, upcall the
// parent, clear connection state, re-arm the reconnect timer.
func (c *Client) reset(reason error) {
	if c.active != nil {
		c.active.conn.Close()
		close(c.active.resume)
		c.active = nil
	}
	c.st = stateDisconnected

	c.logger.WithError(reason).Warn("endpoint: connection reset")
	c.cfg.parent.ConnectionClosed(c, reason)

	c.rearmTimer()
}

func (c *Client) rearmTimer() {
	if !c.timer.Stop() {
		select {
		case <-c.timer.C:
		default:
		}
	}
	c.timer.Reset(c.cfg.timeout)
}
