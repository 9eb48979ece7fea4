package nats

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/miladsoleymani/pubmux/core"
)

const (
	headerContentType     = "Content-Type"
	headerContentEncoding = "Content-Encoding"
	headerCorrelationID   = "Correlation-Id"
	headerReplyTo         = "Reply-To"
	headerType            = "Type"
	headerAppID           = "App-Id"
	headerUserID          = "User-Id"
	headerTimestamp       = "Timestamp"
	headerExpiration      = "Expiration"
	headerPriority        = "Priority"
	headerDeliveryMode    = "Delivery-Mode"
)

// subject builds the NATS subject for a routing key.
func subject(prefix, routingKey string) string {
	if prefix == "" {
		return routingKey
	}
	if routingKey == "" {
		return prefix
	}
	return prefix + "." + routingKey
}

// toHeader maps core.Properties onto NATS headers. MessageID becomes the
// JetStream de-duplication id.
func toHeader(props core.Properties) nats.Header {
	h := nats.Header{}
	set := func(k, v string) {
		if v != "" {
			h.Set(k, v)
		}
	}
	set(headerContentType, props.ContentType)
	set(headerContentEncoding, props.ContentEncoding)
	set(headerCorrelationID, props.CorrelationID)
	set(headerReplyTo, props.ReplyTo)
	set(headerType, props.Type)
	set(headerAppID, props.AppID)
	set(headerUserID, props.UserID)
	set(headerExpiration, props.Expiration)
	set(jetstream.MsgIDHeader, props.MessageID)
	if props.Priority != 0 {
		h.Set(headerPriority, strconv.Itoa(int(props.Priority)))
	}
	if props.DeliveryMode != 0 {
		h.Set(headerDeliveryMode, props.DeliveryMode.String())
	}
	if !props.Timestamp.IsZero() {
		h.Set(headerTimestamp, props.Timestamp.UTC().Format(time.RFC3339Nano))
	}

	keys := make([]string, 0, len(props.Headers))
	for k := range props.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := props.Headers[k].(type) {
		case string:
			h.Set(k, v)
		default:
			h.Set(k, fmt.Sprintf("%v", v))
		}
	}
	return h
}
