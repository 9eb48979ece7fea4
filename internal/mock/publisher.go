package mock

import (
	"context"
	"sync"

	"github.com/miladsoleymani/pubmux/core"
)

// Call records one Publish received by a Publisher.
type Call struct {
	Publisher  string
	RoutingKey string
	Props      core.Properties
	Body       []byte
}

// Journal records publishes across several Publishers in arrival order.
type Journal struct {
	mu    sync.Mutex
	calls []Call
}

func (j *Journal) record(c Call) {
	j.mu.Lock()
	j.calls = append(j.calls, c)
	j.mu.Unlock()
}

// Calls returns every recorded publish.
func (j *Journal) Calls() []Call {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Call, len(j.calls))
	copy(out, j.calls)
	return out
}

// Order returns the publisher names in the order they received calls.
func (j *Journal) Order() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.calls))
	for i, c := range j.calls {
		out[i] = c.Publisher
	}
	return out
}

// Publisher is a test double for core.Publisher.
type Publisher struct {
	Name       string
	Exch       string
	PublishErr error
	CloseErr   error
	// Defer leaves results unsettled until ResolvePending is called.
	Defer bool
	// PublishHook, when set, runs inside Publish before the call is recorded.
	PublishHook func()

	journal *Journal

	mu        sync.Mutex
	published []Call
	pending   []*core.Result
	closes    int
}

// NewPublisher returns a Publisher named name targeting exchange. j may be nil.
func NewPublisher(name, exchange string, j *Journal) *Publisher {
	return &Publisher{Name: name, Exch: exchange, journal: j}
}

func (p *Publisher) Exchange() string { return p.Exch }

func (p *Publisher) Publish(_ context.Context, routingKey string, props core.Properties, body []byte) *core.Result {
	if p.PublishHook != nil {
		p.PublishHook()
	}
	c := Call{Publisher: p.Name, RoutingKey: routingKey, Props: props, Body: body}
	if p.journal != nil {
		p.journal.record(c)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, c)
	if p.Defer {
		res := core.NewResult()
		p.pending = append(p.pending, res)
		return res
	}
	return core.Resolved(p.PublishErr)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closes++
	return p.CloseErr
}

// Published returns the calls this publisher received.
func (p *Publisher) Published() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.published))
	copy(out, p.published)
	return out
}

// ResolvePending settles every deferred result with err.
func (p *Publisher) ResolvePending(err error) {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()
	for _, r := range pending {
		r.Resolve(err)
	}
}

// IsClosed reports whether Close was called.
func (p *Publisher) IsClosed() bool {
	return p.CloseCalls() > 0
}

// CloseCalls returns how many times Close was called.
func (p *Publisher) CloseCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closes
}
