package middleware

import (
	"context"
	"time"

	"github.com/miladsoleymani/pubmux/core"
)

// MetricsCollector is the interface that metrics backends must implement.
type MetricsCollector interface {
	// MessagePublished records a settled publish. duration runs from the
	// Publish call to settlement, and err is nil on broker acknowledgement.
	MessagePublished(exchange, routingKey string, duration time.Duration, err error)
}

// Metrics returns middleware that reports publish outcomes to collector.
func Metrics(collector MetricsCollector) Middleware {
	return func(next core.Publisher) core.Publisher {
		return &metricsPublisher{Publisher: next, collector: collector}
	}
}

type metricsPublisher struct {
	core.Publisher
	collector MetricsCollector
}

func (p *metricsPublisher) Publish(ctx context.Context, routingKey string, props core.Properties, body []byte) *core.Result {
	start := time.Now()
	res := p.Publisher.Publish(ctx, routingKey, props, body)
	go func() {
		<-res.Done()
		p.collector.MessagePublished(p.Exchange(), routingKey, time.Since(start), res.Err())
	}()
	return res
}
