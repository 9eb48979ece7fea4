package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/miladsoleymani/pubmux/logging"
)

// Option configures the Kafka publisher.
type Option func(*options)

type options struct {
	topic        string
	balancer     kafka.Balancer
	batchSize    int
	batchTimeout time.Duration
	requiredAcks kafka.RequiredAcks
	transport    *kafka.Transport
	logger       logging.Logger
}

func defaults() options {
	return options{
		balancer:     &kafka.Hash{},
		batchSize:    100,
		batchTimeout: 10 * time.Millisecond,
		requiredAcks: kafka.RequireAll,
		logger:       logging.Discard(),
	}
}

// WithTopic sets the topic reported as the exchange.
func WithTopic(topic string) Option {
	return func(o *options) { o.topic = topic }
}

// WithBalancer sets the partition balancer. The default hashes the
// routing key so equal keys land on the same partition.
func WithBalancer(b kafka.Balancer) Option {
	return func(o *options) { o.balancer = b }
}

// WithBatchSize sets the maximum batch size for writes.
func WithBatchSize(n int) Option {
	return func(o *options) { o.batchSize = n }
}

// WithBatchTimeout sets how long the writer waits to fill a batch.
func WithBatchTimeout(d time.Duration) Option {
	return func(o *options) { o.batchTimeout = d }
}

// WithRequiredAcks sets the acknowledgement level a write waits for.
func WithRequiredAcks(acks kafka.RequiredAcks) Option {
	return func(o *options) { o.requiredAcks = acks }
}

// WithTransport sets a custom transport for TLS/SASL connections.
func WithTransport(t *kafka.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sets the publisher's logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
