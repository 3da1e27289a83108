package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	errx "github.com/stor-a-gentic/server/internal/core/error"
)

// mockBackend answers from seed data and acknowledges writes without
// keeping them. Nothing written here survives a restart.
type mockBackend struct {
	bookingLatency time.Duration
}

func (b *mockBackend) mode() string { return ModeMock }

func (b *mockBackend) fetch(_ context.Context, spec collectionSpec, limit int) ([]json.RawMessage, error) {
	rows := seedRows(spec.collection)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (b *mockBackend) insert(ctx context.Context, spec collectionSpec, _ row) (string, error) {
	prefix := "mock-"
	if spec.booking {
		prefix = "booking-"
		b.simulateLatency(ctx)
	}
	return prefix + newMockID(), nil
}

// simulateLatency keeps UI loading states observable without live
// infrastructure. A cancelled context only shortens the wait.
func (b *mockBackend) simulateLatency(ctx context.Context) {
	if b.bookingLatency <= 0 {
		return
	}
	t := time.NewTimer(b.bookingLatency)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (b *mockBackend) probe(context.Context) error {
	return errx.Absent("live store not configured")
}

func (b *mockBackend) close() error { return nil }

// newMockID returns a time-ordered unique id.
func newMockID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
