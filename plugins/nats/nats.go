package nats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/miladsoleymani/pubmux/broker"
	"github.com/miladsoleymani/pubmux/core"
)

func init() {
	broker.Register("nats", func(cfg broker.Config, url string) (core.Publisher, error) {
		opts := append([]Option{WithSubjectPrefix(cfg.Exchange)}, optsFromConfig(cfg)...)
		return Dial(url, opts...)
	})
}

// Publisher implements core.Publisher for NATS JetStream.
//
// Design decisions:
//   - One NATS connection per Publisher.
//   - Publishes are JetStream async publishes; a Result settles on the
//     stream's PubAck.
//   - The exchange is a subject prefix; the routing key is appended to it.
//   - Close waits up to the drain timeout for in-flight acks, then drains
//     the connection. Results still unsettled when the connection closes
//     settle with core.ErrPublisherClosed.
type Publisher struct {
	conn *nats.Conn
	js   jetstream.JetStream
	opts options

	// connClosed is closed by the connection's ClosedHandler.
	connClosed chan struct{}

	mu     sync.Mutex
	closed bool
}

// Dial connects to url (nats://host:port) and prepares a JetStream context.
func Dial(url string, fns ...Option) (*Publisher, error) {
	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}

	connClosed := make(chan struct{})
	nc, err := nats.Connect(url,
		nats.Name(opts.name),
		nats.DrainTimeout(opts.drainTimeout),
		nats.ClosedHandler(func(*nats.Conn) { close(connClosed) }),
	)
	if err != nil {
		return nil, fmt.Errorf("pubmux/nats: connect: %w", err)
	}

	js, err := jetstream.New(nc, jetstream.WithPublishAsyncMaxPending(opts.maxPending))
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("pubmux/nats: init jetstream: %w", err)
	}

	opts.logger.Debug("publisher connected", "subject_prefix", opts.prefix)
	return &Publisher{conn: nc, js: js, opts: opts, connClosed: connClosed}, nil
}

// Exchange returns the subject prefix.
func (p *Publisher) Exchange() string { return p.opts.prefix }

// Publish sends body to "<prefix>.<routingKey>" and settles the Result on
// the stream's acknowledgement.
func (p *Publisher) Publish(ctx context.Context, routingKey string, props core.Properties, body []byte) *core.Result {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return core.Resolved(core.ErrPublisherClosed)
	}
	p.mu.Unlock()

	subj := subject(p.opts.prefix, routingKey)
	fut, err := p.js.PublishMsgAsync(&nats.Msg{
		Subject: subj,
		Data:    body,
		Header:  toHeader(props),
	})
	if err != nil {
		return core.Resolved(fmt.Errorf("pubmux/nats: publish to %q: %w", subj, err))
	}

	res := core.NewResult()
	go func() {
		select {
		case <-fut.Ok():
			res.Resolve(nil)
		case err := <-fut.Err():
			res.Resolve(fmt.Errorf("pubmux/nats: publish to %q: %w", subj, err))
		case <-p.connClosed:
			res.Resolve(fmt.Errorf("pubmux/nats: await ack for %q: %w", subj, core.ErrPublisherClosed))
		case <-ctx.Done():
			res.Resolve(fmt.Errorf("pubmux/nats: await ack for %q: %w", subj, ctx.Err()))
		}
	}()
	return res
}

// Close waits up to the drain timeout for outstanding acks, then drains
// the NATS connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	select {
	case <-p.js.PublishAsyncComplete():
	case <-time.After(p.opts.drainTimeout):
		p.opts.logger.Warn("closing with unacknowledged publishes",
			"subject_prefix", p.opts.prefix,
			"pending", p.js.PublishAsyncPending(),
		)
	}

	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("pubmux/nats: drain: %w", err)
	}
	p.opts.logger.Debug("publisher closed", "subject_prefix", p.opts.prefix)
	return nil
}

// optsFromConfig extracts options from broker.Config.Extra.
func optsFromConfig(cfg broker.Config) []Option {
	if cfg.Extra == nil {
		return nil
	}
	var opts []Option
	if v, ok := cfg.Extra["name"].(string); ok {
		opts = append(opts, WithName(v))
	}
	if v, ok := cfg.Extra["max_pending"].(int); ok {
		opts = append(opts, WithMaxPending(v))
	}
	return opts
}
