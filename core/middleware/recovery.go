package middleware

import (
	"context"
	"fmt"
	"runtime"

	"github.com/miladsoleymani/pubmux/core"
	"github.com/miladsoleymani/pubmux/logging"
)

// Recovery returns middleware that recovers from panics in Publish,
// logs the stack trace, and settles the Result with the panic as an error.
func Recovery(logger logging.Logger) Middleware {
	return func(next core.Publisher) core.Publisher {
		return &recoveryPublisher{Publisher: next, logger: logger}
	}
}

type recoveryPublisher struct {
	core.Publisher
	logger logging.Logger
}

func (p *recoveryPublisher) Publish(ctx context.Context, routingKey string, props core.Properties, body []byte) (res *core.Result) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			p.logger.Error("panic recovered in publish",
				"exchange", p.Exchange(),
				"routing_key", routingKey,
				"panic", fmt.Sprint(r),
				"stack", string(buf[:n]),
			)
			res = core.Resolved(fmt.Errorf("pubmux: panic recovered: %v", r))
		}
	}()
	return p.Publisher.Publish(ctx, routingKey, props, body)
}
