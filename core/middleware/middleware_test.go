package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miladsoleymani/pubmux/core"
	"github.com/miladsoleymani/pubmux/core/middleware"
	"github.com/miladsoleymani/pubmux/internal/mock"
	"github.com/miladsoleymani/pubmux/logging"
)

// syncBuffer guards a bytes.Buffer written from settlement goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type panicPublisher struct{ core.Publisher }

func (panicPublisher) Publish(context.Context, string, core.Properties, []byte) *core.Result {
	panic("test panic")
}

type recordingCollector struct {
	mu    sync.Mutex
	calls []error
}

func (c *recordingCollector) MessagePublished(_, _ string, _ time.Duration, err error) {
	c.mu.Lock()
	c.calls = append(c.calls, err)
	c.mu.Unlock()
}

func (c *recordingCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) middleware.Middleware {
		return func(next core.Publisher) core.Publisher {
			return &tracingPublisher{Publisher: next, name: name, order: &order}
		}
	}

	p := middleware.Chain(mock.NewPublisher("A", "orders", nil), mw("outer"), mw("inner"))
	require.NoError(t, p.Publish(context.Background(), "k", core.Properties{}, nil).Err())

	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, "orders", p.Exchange())
}

type tracingPublisher struct {
	core.Publisher
	name  string
	order *[]string
}

func (p *tracingPublisher) Publish(ctx context.Context, rk string, props core.Properties, body []byte) *core.Result {
	*p.order = append(*p.order, p.name)
	return p.Publisher.Publish(ctx, rk, props, body)
}

func TestApply(t *testing.T) {
	j := &mock.Journal{}
	pubs := []core.Publisher{mock.NewPublisher("A", "orders", j), mock.NewPublisher("B", "orders", j)}
	col := &recordingCollector{}

	wrapped := middleware.Apply(pubs, middleware.Metrics(col))
	require.Len(t, wrapped, 2)
	for _, p := range wrapped {
		p.Publish(context.Background(), "k", core.Properties{}, nil)
	}

	assert.Equal(t, []string{"A", "B"}, j.Order())
	assert.Eventually(t, func() bool { return col.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestLogging(t *testing.T) {
	var buf syncBuffer
	logger := logging.New(logging.Options{Name: "test", Level: "debug", Output: &buf})

	p := middleware.Logging(logger)(mock.NewPublisher("A", "orders", nil))
	require.NoError(t, p.Publish(context.Background(), "orders.created", core.Properties{}, []byte("v")).Err())

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "published")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, buf.String(), "routing_key=orders.created")
}

func TestLogging_Error(t *testing.T) {
	var buf syncBuffer
	logger := logging.New(logging.Options{Name: "test", Output: &buf})

	m := mock.NewPublisher("A", "orders", nil)
	boom := errors.New("boom")
	m.PublishErr = boom
	p := middleware.Logging(logger)(m)

	res := p.Publish(context.Background(), "k", core.Properties{}, nil)
	assert.Same(t, boom, res.Err())

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "[ERROR]")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, buf.String(), "publish failed")
}

func TestLogging_CloseLoggedOnceByDispatcher(t *testing.T) {
	var buf syncBuffer
	logger := logging.New(logging.Options{Name: "test", Output: &buf})

	m := mock.NewPublisher("A", "orders", nil)
	boom := errors.New("boom")
	m.CloseErr = boom
	rr := core.NewRoundRobin(
		middleware.Apply([]core.Publisher{m}, middleware.Logging(logger)),
		core.WithLogger(logger),
	)

	err := rr.Close()

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, strings.Count(buf.String(), "boom"), "close fault logged more than once:\n%s", buf.String())
}

func TestRecovery(t *testing.T) {
	var buf syncBuffer
	logger := logging.New(logging.Options{Name: "test", Output: &buf})

	p := middleware.Recovery(logger)(panicPublisher{mock.NewPublisher("A", "orders", nil)})

	var res *core.Result
	require.NotPanics(t, func() {
		res = p.Publish(context.Background(), "k", core.Properties{}, nil)
	})
	err := res.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered")
	assert.Contains(t, buf.String(), "panic recovered in publish")
}

func TestRecovery_NoPanic(t *testing.T) {
	p := middleware.Recovery(logging.Discard())(mock.NewPublisher("A", "orders", nil))

	assert.NoError(t, p.Publish(context.Background(), "k", core.Properties{}, nil).Err())
}

func TestMetrics_WaitsForSettlement(t *testing.T) {
	col := &recordingCollector{}
	m := mock.NewPublisher("A", "orders", nil)
	m.Defer = true

	p := middleware.Metrics(col)(m)
	res := p.Publish(context.Background(), "k", core.Properties{}, nil)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, col.count())

	m.ResolvePending(nil)
	require.NoError(t, res.Wait(context.Background()))
	assert.Eventually(t, func() bool { return col.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	col, err := middleware.NewPrometheusCollector(reg, "pubmux")
	require.NoError(t, err)

	col.MessagePublished("orders", "k", 3*time.Millisecond, nil)
	col.MessagePublished("orders", "k", 5*time.Millisecond, nil)
	col.MessagePublished("orders", "k", time.Millisecond, errors.New("nack"))

	published, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, published, 2)

	_, err = middleware.NewPrometheusCollector(reg, "pubmux")
	assert.Error(t, err, "registering twice must fail")
}

func TestPrometheusCollector_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	col, err := middleware.NewPrometheusCollector(reg, "pubmux")
	require.NoError(t, err)

	col.MessagePublished("orders", "k", time.Millisecond, nil)
	col.MessagePublished("orders", "k", time.Millisecond, errors.New("nack"))
	col.MessagePublished("orders", "k", time.Millisecond, errors.New("nack"))

	families, err := reg.Gather()
	require.NoError(t, err)

	byStatus := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "pubmux_messages_published_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "status" {
					byStatus[lp.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"success": 1, "error": 2}, byStatus)

	series, err := testutil.GatherAndCount(reg, "pubmux_messages_published_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}
