// Command ofswitch is a minimal switch-side OpenFlow client: it dials
// a controller, completes version negotiation, answers echo requests,
// and logs everything else it receives.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/doytsujin/of-protocol/endpoint"
	"github.com/doytsujin/of-protocol/ofp"
)

type hub struct {
	log *logrus.Logger
}

func (h *hub) Connected(c *endpoint.Client, version ofp.Version) {
	h.log.WithField("version", version).Info("connected to controller")
}

func (h *hub) MessageReceived(c *endpoint.Client, msg *ofp.Message) {
	switch body := msg.Body.(type) {
	case *ofp.EchoRequest:
		reply := ofp.New(0, ofp.TypeEchoReply, msg.Header.XID, &ofp.EchoReply{Data: body.Data})
		if err := c.Send(reply); err != nil {
			h.log.WithError(err).Warn("failed to answer echo request")
		}
	default:
		h.log.WithField("type", msg.Header.Type).Info("message received")
	}
}

func (h *hub) ConnectionClosed(c *endpoint.Client, reason error) {
	h.log.WithError(reason).Warn("connection closed")
}

func main() {
	addr := flag.String("controller", "127.0.0.1:6633", "controller address")
	flag.Parse()

	log := logrus.StandardLogger()

	c, err := endpoint.Start(*addr,
		endpoint.WithControllingProcess(&hub{log: log}),
		endpoint.WithVersion(ofp.Version4),
		endpoint.WithVersions(ofp.Version1, ofp.Version3),
		endpoint.WithLogger(log),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to start endpoint")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if err := c.Stop(); err != nil {
		log.WithError(err).Warn("failed to stop endpoint cleanly")
	}
}
