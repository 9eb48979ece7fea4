package broker

import (
	"errors"
	"fmt"

	"github.com/miladsoleymani/pubmux/core"
	"github.com/miladsoleymani/pubmux/core/middleware"
)

// ErrNoURLs is returned by NewPool when the config lists no endpoints.
var ErrNoURLs = errors.New("pubmux: at least one broker URL is required")

// PoolOption configures NewPool.
type PoolOption func(*poolOptions)

type poolOptions struct {
	middleware []middleware.Middleware
	dispatcher []core.Option
}

// WithMiddleware wraps every pooled publisher with mws.
func WithMiddleware(mws ...middleware.Middleware) PoolOption {
	return func(o *poolOptions) { o.middleware = append(o.middleware, mws...) }
}

// WithDispatcherOptions passes opts to the round-robin dispatcher.
func WithDispatcherOptions(opts ...core.Option) PoolOption {
	return func(o *poolOptions) { o.dispatcher = append(o.dispatcher, opts...) }
}

// NewPool opens cfg.Connections publishers through the named factory and
// returns a round-robin dispatcher over them. If any publisher fails to
// open, the ones already opened are closed before the error is returned.
func NewPool(name string, cfg Config, fns ...PoolOption) (*core.RoundRobin, error) {
	var opts poolOptions
	for _, fn := range fns {
		fn(&opts)
	}

	if len(cfg.URLs) == 0 {
		return nil, ErrNoURLs
	}
	n := cfg.Connections
	if n <= 0 {
		n = len(cfg.URLs)
	}

	pubs := make([]core.Publisher, 0, n)
	for i := range n {
		p, err := Create(name, cfg, cfg.URLs[i%len(cfg.URLs)])
		if err != nil {
			errs := []error{fmt.Errorf("pubmux: open publisher %d of %d: %w", i+1, n, err)}
			for _, opened := range pubs {
				if cerr := opened.Close(); cerr != nil {
					errs = append(errs, cerr)
				}
			}
			return nil, errors.Join(errs...)
		}
		pubs = append(pubs, p)
	}

	return core.NewRoundRobin(middleware.Apply(pubs, opts.middleware...), opts.dispatcher...), nil
}
