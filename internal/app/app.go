// Package app wires the assistant's components from one Config.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/stor-a-gentic/server/internal/agent/booking"
	"github.com/stor-a-gentic/server/internal/agent/chat"
	"github.com/stor-a-gentic/server/internal/agent/completion"
	"github.com/stor-a-gentic/server/internal/agent/health"
	"github.com/stor-a-gentic/server/internal/agent/inquiry"
	"github.com/stor-a-gentic/server/internal/agent/knowledge"
	"github.com/stor-a-gentic/server/internal/agent/model"
	"github.com/stor-a-gentic/server/internal/agent/resolver"
	"github.com/stor-a-gentic/server/internal/api"
	errx "github.com/stor-a-gentic/server/internal/core/error"
	"github.com/stor-a-gentic/server/internal/metrics"
	"github.com/stor-a-gentic/server/internal/storage"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg       Config
	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
	Store     *storage.Gateway
	Knowledge *knowledge.Base
	Refresher *knowledge.Refresher
	Health    *health.Checker
	Inquiries *inquiry.Logger
	Chat      *chat.Service
	Booking   *booking.Service

	rdb *redis.Client
}

// New builds every component. Missing store, cache or completion
// credentials select degraded behaviour; only invalid configuration fails.
func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{cfg: cfg, Registry: prometheus.NewRegistry()}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.New(a.Registry)

	storeOpts := []storage.Option{storage.WithMetrics(a.Metrics)}
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			logx.Warn().Err(errx.WrapRedis(err)).Msg("redis unavailable, reference data cache disabled")
		} else {
			a.rdb = rdb
			storeOpts = append(storeOpts, storage.WithCache(rdb, cfg.Store.CacheTTL))
		}
	}
	a.Store = storage.New(cfg.Store, storeOpts...)

	client, err := completion.New(ctx, cfg.Completion, cfg.Prompt, completion.WithMetrics(a.Metrics))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Knowledge = knowledge.New(a.Store)
	a.Refresher, err = knowledge.NewRefresher(a.Knowledge, cfg.Knowledge.RefreshSchedule)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Health = health.New(a.Store)
	a.Inquiries = inquiry.New(a.Store, cfg.Inquiry, inquiry.WithMetrics(a.Metrics))
	a.Chat = chat.New(resolver.NewDefault(a.Knowledge, client, resolver.WithMetrics(a.Metrics)), a.Inquiries)
	a.Booking = booking.New(a.Store)
	return a, nil
}

// Start runs the startup probe and the first knowledge base load
// concurrently, then starts the refresher. Neither step can fail startup.
func (a *App) Start(ctx context.Context) model.HealthStatus {
	var status model.HealthStatus
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		status = a.Health.Probe(gctx)
		return nil
	})
	g.Go(func() error {
		a.Knowledge.Load(gctx)
		return nil
	})
	_ = g.Wait()

	a.Refresher.Start()
	return status
}

func (a *App) Handler() http.Handler {
	return api.NewHandler(api.Deps{
		Chat:      a.Chat,
		Data:      a.Store,
		FAQs:      a.Store,
		Knowledge: a.Knowledge,
		Booking:   a.Booking,
		Health:    a.Health,
		Gatherer:  a.Registry,
	})
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully and drains pending inquiry writes.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logx.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logx.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close stops background work and releases connections. Pending inquiry
// writes get a bounded grace period.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.Refresher.Stop(ctx)
	if a.Inquiries != nil {
		if err := a.Inquiries.Wait(ctx); err != nil {
			logx.Warn().Err(err).Msg("pending inquiry writes abandoned")
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			logx.Warn().Err(err).Msg("failed to close store")
		}
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
