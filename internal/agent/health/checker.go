// Package health classifies the live store as reachable or not. The result
// is advisory; nothing is disabled when the store is down.
package health

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stor-a-gentic/server/internal/agent/model"
	errx "github.com/stor-a-gentic/server/internal/core/error"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

const notConfigured = "live store not configured, running on mock data"

type Checker struct {
	store    model.Prober
	last     atomic.Pointer[model.HealthStatus]
	advisory sync.Once
}

func New(store model.Prober) *Checker {
	return &Checker{store: store}
}

// Probe runs the bounded read and records the outcome. The first
// unreachable result logs a warning; later ones stay quiet.
func (c *Checker) Probe(ctx context.Context) model.HealthStatus {
	status := model.HealthStatus{Reachable: true, Mode: c.store.Mode()}
	if err := c.store.Probe(ctx); err != nil {
		status.Reachable = false
		status.Diagnostic = diagnostic(err)
		c.advisory.Do(func() {
			logx.Warn().Err(err).Str("mode", status.Mode).Msg("store unreachable, features continue on mock data")
		})
	} else {
		logx.Info().Str("mode", status.Mode).Msg("store reachable")
	}
	c.last.Store(&status)
	return status
}

// Last returns the most recent probe result and false when no probe ran.
func (c *Checker) Last() (model.HealthStatus, bool) {
	s := c.last.Load()
	if s == nil {
		return model.HealthStatus{}, false
	}
	return *s, true
}

func diagnostic(err error) string {
	if errx.IsKind(err, errx.KindConfigurationAbsent) {
		return notConfigured
	}
	return err.Error()
}
