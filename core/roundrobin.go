package core

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/miladsoleymani/pubmux/logging"
)

// RoundRobin spreads publishes over a fixed set of backing publishers in
// strict rotation. The n-th Publish call (counting from one) goes to the
// publisher at index (n-1) mod Len(), however the calls interleave.
//
// RoundRobin is itself a Publisher, so pools can be nested or handed to
// anything that accepts a single handle.
type RoundRobin struct {
	publishers []Publisher
	next       atomic.Uint64
	logger     logging.Logger
}

// NewRoundRobin builds a dispatcher over publishers, which must already be
// connected. The slice is copied.
//
// An empty slice, a nil element, or publishers targeting different exchanges
// are configuration faults: they are logged and NewRoundRobin panics with an
// error wrapping ErrNoPublishers, ErrNilPublisher or ErrExchangeMismatch.
func NewRoundRobin(publishers []Publisher, fns ...Option) *RoundRobin {
	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}

	if len(publishers) == 0 {
		fail(opts.logger, ErrNoPublishers)
	}
	for i, p := range publishers {
		if p == nil {
			fail(opts.logger, fmt.Errorf("%w: index %d", ErrNilPublisher, i))
		}
	}
	if !opts.trustFirstExchange {
		want := publishers[0].Exchange()
		for i, p := range publishers[1:] {
			if got := p.Exchange(); got != want {
				fail(opts.logger, fmt.Errorf("%w: publisher %d targets %q, publisher 0 targets %q",
					ErrExchangeMismatch, i+1, got, want))
			}
		}
	}

	pubs := make([]Publisher, len(publishers))
	copy(pubs, publishers)
	return &RoundRobin{publishers: pubs, logger: opts.logger}
}

func fail(logger logging.Logger, err error) {
	logger.Error("invalid round-robin publisher configuration", "error", err)
	panic(err)
}

// Exchange returns the exchange of the first backing publisher.
func (r *RoundRobin) Exchange() string {
	return r.publishers[0].Exchange()
}

// Len returns the number of backing publishers.
func (r *RoundRobin) Len() int {
	return len(r.publishers)
}

// Publish forwards the call unchanged to the next publisher in the rotation
// and returns its Result unchanged. Faults are not retried on another
// publisher and a failing publisher keeps its turn in the rotation.
func (r *RoundRobin) Publish(ctx context.Context, routingKey string, props Properties, body []byte) *Result {
	return r.pick().Publish(ctx, routingKey, props, body)
}

func (r *RoundRobin) pick() Publisher {
	n := r.next.Add(1) - 1
	return r.publishers[n%uint64(len(r.publishers))]
}

// Close closes every backing publisher in construction order. A failing
// Close does not stop the remaining ones; all faults are logged and
// returned together, wrapped in ErrClose.
func (r *RoundRobin) Close() error {
	var errs []error
	for i, p := range r.publishers {
		if err := p.Close(); err != nil {
			r.logger.Error("failed to close publisher",
				"index", i,
				"exchange", p.Exchange(),
				"error", err,
			)
			errs = append(errs, fmt.Errorf("publisher %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrClose, errors.Join(errs...))
	}
	return nil
}
