package kafka

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/miladsoleymani/pubmux/broker"
	"github.com/miladsoleymani/pubmux/core"
)

func init() {
	broker.Register("kafka", func(cfg broker.Config, url string) (core.Publisher, error) {
		opts := append([]Option{WithTopic(cfg.Exchange)}, optsFromConfig(cfg)...)
		return New(strings.Split(url, ","), opts...)
	})
}

// Publisher implements core.Publisher for Apache Kafka using segmentio/kafka-go.
//
// Design decisions:
//   - One kafka.Writer per Publisher, bound to a single topic.
//   - Writes run on their own goroutine; the Result settles once the
//     writer reports the batch as acknowledged.
//   - Close flushes pending batches and closes the writer.
type Publisher struct {
	writer *kafka.Writer
	opts   options

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New creates a Kafka Publisher writing to the configured topic.
func New(brokers []string, fns ...Option) (*Publisher, error) {
	if len(brokers) == 0 || brokers[0] == "" {
		return nil, fmt.Errorf("pubmux/kafka: at least one broker address is required")
	}

	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}
	if opts.topic == "" {
		return nil, fmt.Errorf("pubmux/kafka: topic is required")
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        opts.topic,
		Balancer:     opts.balancer,
		BatchSize:    opts.batchSize,
		BatchTimeout: opts.batchTimeout,
		RequiredAcks: opts.requiredAcks,
	}
	if opts.transport != nil {
		w.Transport = opts.transport
	}

	return &Publisher{writer: w, opts: opts}, nil
}

// Exchange returns the topic.
func (p *Publisher) Exchange() string { return p.opts.topic }

// Publish writes body keyed by routingKey.
func (p *Publisher) Publish(ctx context.Context, routingKey string, props core.Properties, body []byte) *core.Result {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return core.Resolved(core.ErrPublisherClosed)
	}
	p.wg.Add(1)
	p.mu.Unlock()

	msg := toMessage(routingKey, props, body)
	res := core.NewResult()
	go func() {
		defer p.wg.Done()
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			res.Resolve(fmt.Errorf("pubmux/kafka: publish to %q: %w", p.opts.topic, err))
			return
		}
		res.Resolve(nil)
	}()
	return res
}

// Close waits for in-flight writes, then flushes and closes the writer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("pubmux/kafka: close writer: %w", err)
	}
	p.opts.logger.Debug("publisher closed", "topic", p.opts.topic)
	return nil
}

// optsFromConfig extracts options from the broker.Config.Extra map.
func optsFromConfig(cfg broker.Config) []Option {
	if cfg.Extra == nil {
		return nil
	}
	var opts []Option
	if v, ok := cfg.Extra["batch_size"].(int); ok {
		opts = append(opts, WithBatchSize(v))
	}
	if v, ok := cfg.Extra["required_acks"].(int); ok {
		opts = append(opts, WithRequiredAcks(kafka.RequiredAcks(v)))
	}
	return opts
}
