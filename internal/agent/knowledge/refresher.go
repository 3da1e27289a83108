package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	logx "github.com/stor-a-gentic/server/pkg/logger"
)

const reloadTimeout = 30 * time.Second

// Refresher reloads a Base on a cron schedule.
type Refresher struct {
	cron *cron.Cron
}

// NewRefresher parses schedule (standard cron or "@every 10m"). An empty
// schedule returns a nil Refresher, which is safe to Start and Stop.
func NewRefresher(base *Base, schedule string) (*Refresher, error) {
	if schedule == "" {
		return nil, nil
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		base.Load(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid knowledge refresh schedule %q: %w", schedule, err)
	}
	return &Refresher{cron: c}, nil
}

func (r *Refresher) Start() {
	if r == nil {
		return
	}
	r.cron.Start()
	logx.Debug().Msg("knowledge base refresher started")
}

// Stop waits for a running reload to finish or ctx to expire.
func (r *Refresher) Stop(ctx context.Context) {
	if r == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}
