// Package inquiry persists resolved exchanges without making the
// conversation wait on the store.
package inquiry

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stor-a-gentic/server/internal/agent/model"
	"github.com/stor-a-gentic/server/internal/metrics"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

const defaultTimeout = 10 * time.Second

type Logger struct {
	store         model.Inserter
	defaultUserID string
	timeout       time.Duration
	metrics       *metrics.Metrics
	log           zerolog.Logger
	wg            sync.WaitGroup
}

type Option func(*Logger)

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Logger) { l.metrics = m }
}

func New(store model.Inserter, cfg model.InquiryConfig, opts ...Option) *Logger {
	l := &Logger{
		store:         store,
		defaultUserID: cfg.UserID,
		timeout:       cfg.Timeout,
		log:           logx.With().Str("component", "inquiry").Logger(),
	}
	if l.defaultUserID == "" {
		l.defaultUserID = "guest"
	}
	if l.timeout <= 0 {
		l.timeout = defaultTimeout
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log dispatches the write and returns immediately. The write is detached
// from any request context so it outlives the reply; failures are only
// logged.
func (l *Logger) Log(message, response, userID string) {
	if userID == "" {
		userID = l.defaultUserID
	}
	record := model.Inquiry{UserID: userID, Message: message, Response: response}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				l.metrics.InquiryWritten(false)
				l.log.Error().Interface("panic", rec).Msg("inquiry write panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		res := l.store.Insert(ctx, model.CollectionInquiries, record)
		l.metrics.InquiryWritten(res.Success)
		if !res.Success {
			l.log.Warn().Str("user_id", userID).Msg("inquiry was not persisted")
			return
		}
		l.log.Debug().Str("id", res.ID).Str("user_id", userID).Msg("inquiry persisted")
	}()
}

// Wait blocks until every dispatched write has finished or ctx is done.
func (l *Logger) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
