package core

import "github.com/miladsoleymani/pubmux/logging"

// Option configures a RoundRobin.
type Option func(*options)

type options struct {
	logger             logging.Logger
	trustFirstExchange bool
}

func defaults() options {
	return options{
		logger: logging.Discard(),
	}
}

// WithLogger sets the logger used for construction and close faults.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTrustFirstExchange skips the check that every backing publisher
// targets the first publisher's exchange.
func WithTrustFirstExchange() Option {
	return func(o *options) { o.trustFirstExchange = true }
}
