package knowledge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stor-a-gentic/server/internal/agent/model"
)

func TestNewRefresherEmptyScheduleIsDisabled(t *testing.T) {
	r, err := NewRefresher(New(&stubSource{}), "")
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.NotPanics(t, func() {
		r.Start()
		r.Stop(context.Background())
	})
}

func TestNewRefresherRejectsBadSchedule(t *testing.T) {
	_, err := NewRefresher(New(&stubSource{}), "every now and then")
	assert.Error(t, err)
}

func TestRefresherReloads(t *testing.T) {
	src := &stubSource{faqs: []model.FaqEntry{hoursFAQ}}
	b := New(src)

	r, err := NewRefresher(b, "@every 1s")
	require.NoError(t, err)
	r.Start()
	defer r.Stop(context.Background())

	require.Eventually(t, func() bool { return src.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, 1, b.Len())
}
