// Package core holds the broker-agnostic publishing contracts and the
// round-robin dispatcher that spreads publishes over several independently
// connected publishers.
//
//	rr := core.NewRoundRobin([]core.Publisher{a, b, c})
//	res := rr.Publish(ctx, "orders.created", core.Properties{}, body)
//	if err := res.Wait(ctx); err != nil {
//	    // broker fault from whichever publisher took the message
//	}
package core
