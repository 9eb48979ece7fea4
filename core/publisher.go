package core

import "context"

// Publisher is one independently connected handle capable of sending
// messages to a broker exchange. Broker plugins provide the implementations;
// RoundRobin distributes calls across several of them.
type Publisher interface {
	// Exchange returns the exchange (or topic, or subject prefix) this handle
	// publishes to.
	Exchange() string

	// Publish hands the message to the broker and returns without waiting for
	// the broker's confirmation. The returned Result settles once the broker
	// acknowledges or rejects the message. Implementations must be safe for
	// concurrent use.
	Publish(ctx context.Context, routingKey string, props Properties, body []byte) *Result

	// Close releases the handle's connection and channel resources.
	Close() error
}
