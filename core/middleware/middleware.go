// Package middleware decorates publisher handles with cross-cutting
// behavior. Decorators return the wrapped handle's Result unchanged; they
// observe outcomes, they never alter them.
package middleware

import "github.com/miladsoleymani/pubmux/core"

// Middleware wraps a Publisher.
type Middleware func(core.Publisher) core.Publisher

// Chain wraps p with mws. Given [A, B, C], a publish passes A -> B -> C -> p.
func Chain(p core.Publisher, mws ...Middleware) core.Publisher {
	for i := len(mws) - 1; i >= 0; i-- {
		p = mws[i](p)
	}
	return p
}

// Apply chains mws around every publisher and returns the wrapped slice.
func Apply(pubs []core.Publisher, mws ...Middleware) []core.Publisher {
	out := make([]core.Publisher, len(pubs))
	for i, p := range pubs {
		out[i] = Chain(p, mws...)
	}
	return out
}
