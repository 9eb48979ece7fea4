// Package pubmux provides the top-level API for the pubmux publisher pool.
// It re-exports core types for convenience, so users can write:
//
//	rr := pubmux.New([]pubmux.Publisher{a, b, c}, pubmux.WithLogger(logger))
//	err := rr.Publish(ctx, "orders.created", pubmux.Properties{}, body).Wait(ctx)
//	defer rr.Close()
package pubmux

import (
	"github.com/miladsoleymani/pubmux/core"
	"github.com/miladsoleymani/pubmux/logging"
)

// Re-export core types at the package level for ergonomic usage.
type (
	Publisher    = core.Publisher
	Properties   = core.Properties
	DeliveryMode = core.DeliveryMode
	Result       = core.Result
	RoundRobin   = core.RoundRobin
	Option       = core.Option
)

const (
	Transient  = core.Transient
	Persistent = core.Persistent
)

// New creates a RoundRobin over the given publishers. It panics if none are
// given; see core.NewRoundRobin.
func New(publishers []Publisher, opts ...Option) *RoundRobin {
	return core.NewRoundRobin(publishers, opts...)
}

// WithLogger sets the logger used for construction and close faults.
func WithLogger(l logging.Logger) Option {
	return core.WithLogger(l)
}

// WithTrustFirstExchange skips the exchange homogeneity check.
func WithTrustFirstExchange() Option {
	return core.WithTrustFirstExchange()
}
