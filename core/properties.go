package core

import "time"

// DeliveryMode tags whether the broker should persist a message.
// The values match the AMQP 0-9-1 delivery-mode codes.
type DeliveryMode uint8

const (
	// Transient messages may be lost on broker restart.
	Transient DeliveryMode = 1
	// Persistent messages are written to disk by the broker.
	Persistent DeliveryMode = 2
)

func (m DeliveryMode) String() string {
	switch m {
	case Transient:
		return "transient"
	case Persistent:
		return "persistent"
	default:
		return "unspecified"
	}
}

// Properties is the broker-agnostic message metadata. Each plugin maps the
// fields its broker understands and ignores the rest.
type Properties struct {
	ContentType     string
	ContentEncoding string
	DeliveryMode    DeliveryMode
	Priority        uint8
	CorrelationID   string
	ReplyTo         string
	Expiration      string
	MessageID       string
	Timestamp       time.Time
	Type            string
	UserID          string
	AppID           string
	Headers         map[string]any
}
