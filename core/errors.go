package core

import "errors"

var (
	// ErrNoPublishers is the fault raised when a RoundRobin is built without
	// any backing publishers.
	ErrNoPublishers = errors.New("pubmux: at least one publisher is required")

	// ErrNilPublisher is the fault raised when a RoundRobin is built with a
	// nil backing publisher.
	ErrNilPublisher = errors.New("pubmux: publisher is nil")

	// ErrExchangeMismatch is the fault raised when the backing publishers of a
	// RoundRobin do not all target the same exchange.
	ErrExchangeMismatch = errors.New("pubmux: publishers target different exchanges")

	// ErrClose wraps the faults collected while closing backing publishers.
	ErrClose = errors.New("pubmux: close publishers")

	// ErrPublisherClosed is returned when publishing on a closed handle.
	ErrPublisherClosed = errors.New("pubmux: publisher is closed")

	// ErrNacked is returned when the broker negatively acknowledges a message.
	ErrNacked = errors.New("pubmux: message nacked by broker")

	// ErrPending is returned by Result.Err before the result settles.
	ErrPending = errors.New("pubmux: result pending")
)
