// Package storage is the dual-mode persistence gateway. A Gateway talks to
// a live PostgreSQL store or to built-in seed data; the choice is made once
// at construction and every operation is total.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stor-a-gentic/server/internal/agent/model"
	errx "github.com/stor-a-gentic/server/internal/core/error"
	"github.com/stor-a-gentic/server/internal/metrics"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

const (
	ModeLive = "live"
	ModeMock = "mock"
)

const defaultTimeout = 5 * time.Second

// backend is the mode-specific half of the gateway.
type backend interface {
	mode() string
	fetch(ctx context.Context, spec collectionSpec, limit int) ([]json.RawMessage, error)
	insert(ctx context.Context, spec collectionSpec, r row) (string, error)
	probe(ctx context.Context) error
	close() error
}

type Gateway struct {
	backend backend
	cache   *cache
	metrics *metrics.Metrics
	timeout time.Duration
}

type Option func(*Gateway)

// WithCache enables the Redis read-through cache for reference data. It is
// ignored in mock mode.
func WithCache(rdb redis.Cmdable, ttl time.Duration) Option {
	return func(g *Gateway) {
		if rdb != nil {
			g.cache = &cache{rdb: rdb, ttl: ttl}
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// WithTimeout bounds every live call.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// New selects the mode from cfg. A missing credential, or one that cannot be
// turned into a connection, selects mock mode with a warning.
func New(cfg Config, opts ...Option) *Gateway {
	opts = append([]Option{WithTimeout(cfg.Timeout)}, opts...)
	if !cfg.Configured() {
		logx.Warn().Msg("store connection not configured, using mock data")
		return NewMock(cfg.BookingLatency, opts...)
	}
	db, err := cfg.Open()
	if err != nil {
		logx.Warn().Err(errx.WrapStore(err)).Msg("store connection unusable, using mock data")
		return NewMock(cfg.BookingLatency, opts...)
	}
	logx.Info().Str("mode", ModeLive).Msg("store gateway ready")
	return NewLive(db, opts...)
}

// NewLive builds a gateway over an open database handle.
func NewLive(db *sql.DB, opts ...Option) *Gateway {
	return build(&liveBackend{db: db}, opts)
}

// NewMock builds a gateway that never leaves the process.
func NewMock(bookingLatency time.Duration, opts ...Option) *Gateway {
	g := build(&mockBackend{bookingLatency: bookingLatency}, opts)
	g.cache = nil
	return g
}

func build(b backend, opts []Option) *Gateway {
	g := &Gateway{backend: b, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Mode returns ModeLive or ModeMock. It never changes after construction.
func (g *Gateway) Mode() string {
	return g.backend.mode()
}

func (g *Gateway) Close() error {
	return g.backend.close()
}

// Fetch returns the rows of a collection as JSON documents in the
// collection's fetch order. On any live error the seed rows are returned.
func (g *Gateway) Fetch(ctx context.Context, c model.Collection) []json.RawMessage {
	spec, ok := specs[c]
	if !ok {
		logx.Warn().Str("collection", string(c)).Msg("fetch from unknown collection")
		return []json.RawMessage{}
	}

	useCache := g.cache != nil && spec.cacheable
	if useCache {
		if rows, hit := g.cache.get(ctx, c); hit {
			return rows
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	rows, err := g.backend.fetch(callCtx, spec, 0)
	if err != nil {
		logx.Error().Err(err).Str("collection", string(c)).Msg("failed to fetch, using mock data")
		g.metrics.StoreFellBack(string(c), "fetch")
		return seedRows(c)
	}
	if useCache {
		g.cache.set(ctx, c, rows)
	}
	return rows
}

// Insert writes record into c. Live failures answer {Success: false};
// mock mode always acknowledges with a synthesized id.
func (g *Gateway) Insert(ctx context.Context, c model.Collection, record any) model.InsertResult {
	spec, ok := specs[c]
	if !ok {
		logx.Warn().Str("collection", string(c)).Msg("insert into unknown collection")
		return model.InsertResult{}
	}
	r, err := rowOf(c, record)
	if err != nil {
		logx.Error().Err(err).Str("collection", string(c)).Msg("rejected insert")
		return model.InsertResult{}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout+g.latencyBudget(spec))
	defer cancel()

	id, err := g.backend.insert(callCtx, spec, r)
	if err != nil {
		logx.Error().Err(err).Str("collection", string(c)).Msg("failed to insert")
		g.metrics.StoreFellBack(string(c), "insert")
		return model.InsertResult{}
	}
	if g.cache != nil && spec.cacheable {
		g.cache.invalidate(ctx, c)
	}
	logx.Debug().Str("collection", string(c)).Str("id", id).Str("mode", g.Mode()).Msg("record inserted")
	return model.InsertResult{Success: true, ID: id}
}

func (g *Gateway) latencyBudget(spec collectionSpec) time.Duration {
	if mb, ok := g.backend.(*mockBackend); ok && spec.booking {
		return mb.bookingLatency
	}
	return 0
}

// Probe issues a bounded read (one inquiry) against the live store.
func (g *Gateway) Probe(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.backend.probe(callCtx)
}

// fetchAs decodes a collection into T. Undecodable live rows are a
// malformed response and fall back to the seed rows.
func fetchAs[T any](ctx context.Context, g *Gateway, c model.Collection) []T {
	out, err := decodeRows[T](g.Fetch(ctx, c))
	if err != nil {
		logx.Error().Err(errx.Malformed(err)).Str("collection", string(c)).Msg("failed to decode rows, using mock data")
		g.metrics.StoreFellBack(string(c), "decode")
		out, _ = decodeRows[T](seedRows(c))
	}
	return out
}

func decodeRows[T any](rows []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, raw := range rows {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (g *Gateway) FAQs(ctx context.Context) []model.FaqEntry {
	return fetchAs[model.FaqEntry](ctx, g, model.CollectionFAQs)
}

func (g *Gateway) Inquiries(ctx context.Context) []model.Inquiry {
	return fetchAs[model.Inquiry](ctx, g, model.CollectionInquiries)
}

func (g *Gateway) ServiceRequests(ctx context.Context) []model.ServiceRequest {
	return fetchAs[model.ServiceRequest](ctx, g, model.CollectionServiceRequests)
}

func (g *Gateway) Locations(ctx context.Context) []model.Location {
	return fetchAs[model.Location](ctx, g, model.CollectionLocations)
}

func (g *Gateway) CollectionSlots(ctx context.Context) []model.CollectionSlot {
	return fetchAs[model.CollectionSlot](ctx, g, model.CollectionSlots)
}

// CreateFAQ adds a knowledge base entry.
func (g *Gateway) CreateFAQ(ctx context.Context, faq model.FaqEntry) model.InsertResult {
	return g.Insert(ctx, model.CollectionFAQs, faq)
}

var (
	_ model.ReferenceData = (*Gateway)(nil)
	_ model.Inserter      = (*Gateway)(nil)
	_ model.Prober        = (*Gateway)(nil)
)
