package endpoint

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doytsujin/of-protocol/ofp"
)

// defaultTimeout is the default reconnect interval (spec default 5000ms).
const defaultTimeout = 5 * time.Second

// defaultVersion is the version preferred when none is configured.
const defaultVersion = ofp.Version4

type config struct {
	parent   Parent
	versions []ofp.Version
	timeout  time.Duration
	logger   *logrus.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		versions: []ofp.Version{defaultVersion},
		timeout:  defaultTimeout,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.parent == nil {
		cfg.parent = noopParent{}
	}
	return cfg
}

// Option configures a Client at construction.
type Option func(*config)

// WithControllingProcess sets the identity that receives upcalls.
// Defaults to a no-op parent if never set.
func WithControllingProcess(p Parent) Option {
	return func(c *config) { c.parent = p }
}

// WithVersion sets the preferred/default protocol version.
func WithVersion(v ofp.Version) Option {
	return func(c *config) {
		if len(c.versions) == 1 && c.versions[0] == defaultVersion {
			c.versions = []ofp.Version{v}
			return
		}
		c.versions = append(c.versions, v)
	}
}

// WithVersions adds additional supported versions, merged unique-sorted
// with the preferred version at negotiation time.
func WithVersions(versions ...ofp.Version) Option {
	return func(c *config) { c.versions = append(c.versions, versions...) }
}

// WithTimeout sets the reconnect interval.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithLogger overrides the logger used for connection lifecycle events.
// Defaults to logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) { c.logger = l }
}
