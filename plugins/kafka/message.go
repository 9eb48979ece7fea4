package kafka

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/miladsoleymani/pubmux/core"
)

// toMessage maps a publish onto a kafka.Message. The routing key becomes
// the message key.
func toMessage(routingKey string, props core.Properties, body []byte) kafka.Message {
	msg := kafka.Message{
		Value:   body,
		Headers: toHeaders(props),
		Time:    props.Timestamp,
	}
	if routingKey != "" {
		msg.Key = []byte(routingKey)
	}
	return msg
}

// toHeaders converts properties to Kafka headers in a stable order.
func toHeaders(props core.Properties) []kafka.Header {
	var headers []kafka.Header
	add := func(k, v string) {
		if v != "" {
			headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
		}
	}
	add("content-type", props.ContentType)
	add("content-encoding", props.ContentEncoding)
	add("correlation-id", props.CorrelationID)
	add("reply-to", props.ReplyTo)
	add("message-id", props.MessageID)
	add("type", props.Type)
	add("app-id", props.AppID)
	add("user-id", props.UserID)
	add("expiration", props.Expiration)
	if props.Priority != 0 {
		add("priority", strconv.Itoa(int(props.Priority)))
	}
	if props.DeliveryMode != 0 {
		add("delivery-mode", props.DeliveryMode.String())
	}
	if !props.Timestamp.IsZero() {
		add("timestamp", props.Timestamp.UTC().Format(time.RFC3339Nano))
	}

	keys := make([]string, 0, len(props.Headers))
	for k := range props.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := props.Headers[k].(type) {
		case []byte:
			headers = append(headers, kafka.Header{Key: k, Value: v})
		case string:
			headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
		default:
			headers = append(headers, kafka.Header{Key: k, Value: []byte(fmt.Sprintf("%v", v))})
		}
	}
	return headers
}
