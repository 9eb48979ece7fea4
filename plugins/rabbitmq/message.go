package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/miladsoleymani/pubmux/core"
)

// toPublishing maps core.Properties onto an amqp.Publishing.
func toPublishing(props core.Properties, body []byte) amqp.Publishing {
	var headers amqp.Table
	if len(props.Headers) > 0 {
		headers = make(amqp.Table, len(props.Headers))
		for k, v := range props.Headers {
			headers[k] = v
		}
	}
	return amqp.Publishing{
		Headers:         headers,
		ContentType:     props.ContentType,
		ContentEncoding: props.ContentEncoding,
		DeliveryMode:    uint8(props.DeliveryMode),
		Priority:        props.Priority,
		CorrelationId:   props.CorrelationID,
		ReplyTo:         props.ReplyTo,
		Expiration:      props.Expiration,
		MessageId:       props.MessageID,
		Timestamp:       props.Timestamp,
		Type:            props.Type,
		UserId:          props.UserID,
		AppId:           props.AppID,
		Body:            body,
	}
}
