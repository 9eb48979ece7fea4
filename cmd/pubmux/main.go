// Command pubmux publishes a batch of messages through a round-robin pool
// of independently connected publishers and reports the outcome.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/miladsoleymani/pubmux/broker"
	"github.com/miladsoleymani/pubmux/core"
	"github.com/miladsoleymani/pubmux/core/middleware"
	"github.com/miladsoleymani/pubmux/logging"

	// Import plugins to trigger self-registration via init()
	_ "github.com/miladsoleymani/pubmux/plugins/kafka"
	_ "github.com/miladsoleymani/pubmux/plugins/nats"
	_ "github.com/miladsoleymani/pubmux/plugins/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pubmux:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Options{Name: "pubmux", Level: cfg.LogLevel, JSON: cfg.LogJSON})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	collector, err := middleware.NewPrometheusCollector(reg, "pubmux")
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	pool, err := broker.NewPool(cfg.Broker, broker.Config{
		URLs:        cfg.URLs,
		Exchange:    cfg.Exchange,
		Connections: cfg.Connections,
	},
		broker.WithMiddleware(
			middleware.Recovery(logger),
			middleware.Logging(logger.Named(cfg.Broker)),
			middleware.Metrics(collector),
		),
		broker.WithDispatcherOptions(core.WithLogger(logger)),
	)
	if err != nil {
		return fmt.Errorf("open %s pool: %w", cfg.Broker, err)
	}
	logger.Info("publisher pool ready",
		"broker", cfg.Broker,
		"exchange", pool.Exchange(),
		"connections", pool.Len(),
	)

	start := time.Now()
	sent, pubErr := publishAll(ctx, pool, cfg)
	closeErr := pool.Close()

	logger.Info("publishing finished",
		"confirmed", sent,
		"requested", cfg.Messages,
		"elapsed", time.Since(start),
	)
	return errors.Join(pubErr, closeErr)
}

// publishAll publishes cfg.Messages messages with at most cfg.Concurrency
// outstanding confirmations and returns how many were confirmed.
func publishAll(ctx context.Context, pool core.Publisher, cfg *Config) (int, error) {
	props := core.Properties{ContentType: "application/json", AppID: "pubmux"}
	if cfg.Persistent {
		props.DeliveryMode = core.Persistent
	}

	var confirmed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i := range cfg.Messages {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, cfg.PublishTimeout)
			defer cancel()

			p := props
			p.MessageID = fmt.Sprintf("pubmux-%d", i)
			p.Timestamp = time.Now()
			body := fmt.Appendf(nil, `{"seq":%d}`, i)
			if err := pool.Publish(pctx, cfg.RoutingKey, p, body).Wait(pctx); err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			confirmed.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return int(confirmed.Load()), err
}

func serveMetrics(addr string, reg *prometheus.Registry, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "addr", addr, "error", err)
		}
	}()
	return srv
}
