package middleware

import (
	"context"
	"time"

	"github.com/miladsoleymani/pubmux/core"
	"github.com/miladsoleymani/pubmux/logging"
)

// Logging returns middleware that logs each publish once it settles:
// debug on success, error on failure. Close is passed through untouched;
// close faults are reported by the dispatcher that owns the handle.
func Logging(logger logging.Logger) Middleware {
	return func(next core.Publisher) core.Publisher {
		return &loggingPublisher{Publisher: next, logger: logger}
	}
}

type loggingPublisher struct {
	core.Publisher
	logger logging.Logger
}

func (p *loggingPublisher) Publish(ctx context.Context, routingKey string, props core.Properties, body []byte) *core.Result {
	start := time.Now()
	res := p.Publisher.Publish(ctx, routingKey, props, body)
	go func() {
		<-res.Done()
		elapsed := time.Since(start)
		if err := res.Err(); err != nil {
			p.logger.Error("publish failed",
				"exchange", p.Exchange(),
				"routing_key", routingKey,
				"size", len(body),
				"elapsed", elapsed,
				"error", err,
			)
			return
		}
		p.logger.Debug("published",
			"exchange", p.Exchange(),
			"routing_key", routingKey,
			"size", len(body),
			"elapsed", elapsed,
		)
	}()
	return res
}
