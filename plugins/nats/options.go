package nats

import (
	"time"

	"github.com/miladsoleymani/pubmux/logging"
)

// Option configures the NATS publisher.
type Option func(*options)

type options struct {
	// Subject prefix; published subjects are "<prefix>.<routing key>".
	prefix string

	name         string
	maxPending   int
	drainTimeout time.Duration
	logger       logging.Logger
}

func defaults() options {
	return options{
		name:         "pubmux",
		maxPending:   4000,
		drainTimeout: 30 * time.Second,
		logger:       logging.Discard(),
	}
}

// WithSubjectPrefix sets the subject prefix reported as the exchange.
func WithSubjectPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithName sets the connection name shown in server monitoring.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithMaxPending caps the number of unacknowledged async publishes.
func WithMaxPending(n int) Option {
	return func(o *options) { o.maxPending = n }
}

// WithDrainTimeout bounds how long Close waits for outstanding acks, and
// how long the connection drain may take afterwards.
func WithDrainTimeout(d time.Duration) Option {
	return func(o *options) { o.drainTimeout = d }
}

// WithLogger sets the publisher's logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
