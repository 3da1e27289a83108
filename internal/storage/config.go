package storage

import (
	"time"

	"github.com/stor-a-gentic/server/pkg/postgres"
)

// Config is read once at startup. Live mode is selected when both STORE_URL
// and STORE_KEY are present.
type Config struct {
	postgres.Config
	Timeout        time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	BookingLatency time.Duration `envconfig:"MOCK_BOOKING_LATENCY" default:"1s"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}
