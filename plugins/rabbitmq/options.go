package rabbitmq

import "github.com/miladsoleymani/pubmux/logging"

// Option configures the RabbitMQ publisher.
type Option func(*options)

type options struct {
	exchange  string
	mandatory bool
	confirms  bool
	logger    logging.Logger
}

func defaults() options {
	return options{
		exchange: "", // default exchange
		confirms: true,
		logger:   logging.Discard(),
	}
}

// WithExchange sets the exchange every message is published to.
func WithExchange(name string) Option {
	return func(o *options) { o.exchange = name }
}

// WithMandatory asks the broker to return unroutable messages.
func WithMandatory(m bool) Option {
	return func(o *options) { o.mandatory = m }
}

// WithConfirms controls publisher confirms. With confirms disabled a Result
// settles as soon as the frame is written.
func WithConfirms(c bool) Option {
	return func(o *options) { o.confirms = c }
}

// WithLogger sets the publisher's logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
