package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stor-a-gentic/server/internal/agent/knowledge"
	"github.com/stor-a-gentic/server/internal/agent/model"
	"github.com/stor-a-gentic/server/internal/agent/rules"
	"github.com/stor-a-gentic/server/internal/metrics"
)

type faqList []model.FaqEntry

func (f faqList) FAQs(context.Context) []model.FaqEntry { return f }

type fakeCompleter struct {
	available bool
	reply     string
	err       error
	calls     int
}

func (f *fakeCompleter) Available() bool { return f.available }

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type panicTier struct{}

func (panicTier) Source() model.Source { return model.SourceCompletion }

func (panicTier) Attempt(context.Context, string) (string, bool, error) {
	panic("boom")
}

func loadedBase(t *testing.T, faqs ...model.FaqEntry) *knowledge.Base {
	t.Helper()
	kb := knowledge.New(faqList(faqs))
	kb.Load(context.Background())
	return kb
}

var hoursFAQ = model.FaqEntry{ID: "1", Question: "What are your business hours?", Answer: "Mon-Fri 9-7, weekends 10-5"}

func TestResolveBusinessHoursScenario(t *testing.T) {
	client := &fakeCompleter{available: true, reply: "from the model"}
	r := NewDefault(loadedBase(t, hoursFAQ), client)

	got := r.Resolve(context.Background(), "What are your hours?")
	assert.Equal(t, model.ResolutionResult{Text: "Mon-Fri 9-7, weekends 10-5", Source: model.SourceFAQ}, got)
	assert.Zero(t, client.calls)
}

func TestResolveFAQWinsOverAvailableCompletion(t *testing.T) {
	client := &fakeCompleter{available: true, reply: "from the model"}
	r := NewDefault(loadedBase(t, hoursFAQ), client)

	got := r.Resolve(context.Background(), "business hours")
	assert.Equal(t, model.SourceFAQ, got.Source)
	assert.Zero(t, client.calls)
}

func TestResolveGibberishWithoutCredential(t *testing.T) {
	r := NewDefault(loadedBase(t, hoursFAQ), &fakeCompleter{})

	got := r.Resolve(context.Background(), "asdlkj random gibberish")
	assert.Equal(t, model.ResolutionResult{Text: rules.GenericReply, Source: model.SourceRule}, got)
}

func TestResolveUsesCompletionWhenNoFAQMatches(t *testing.T) {
	client := &fakeCompleter{available: true, reply: "We store boats too."}
	r := NewDefault(loadedBase(t, hoursFAQ), client)

	got := r.Resolve(context.Background(), "Can I store a kayak?")
	assert.Equal(t, model.ResolutionResult{Text: "We store boats too.", Source: model.SourceCompletion}, got)
	assert.Equal(t, 1, client.calls)
}

func TestResolveCompletionFailureFallsBackToRule(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	client := &fakeCompleter{available: true, err: errors.New("connection reset")}
	r := NewDefault(loadedBase(t, hoursFAQ), client, WithMetrics(m))

	got := r.Resolve(context.Background(), "I want to book a secure unit")
	assert.Equal(t, model.SourceRule, got.Source)
	assert.Equal(t, rules.Reply("I want to book a secure unit"), got.Text)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TierFailures.WithLabelValues("completion")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("rule")))
}

func TestResolveEmptyCompletionFallsBackToRule(t *testing.T) {
	r := NewDefault(nil, &fakeCompleter{available: true, reply: "  "})

	got := r.Resolve(context.Background(), "what sizes do you have")
	assert.Equal(t, model.SourceRule, got.Source)
}

func TestResolveSurvivesPanickingTier(t *testing.T) {
	r := New([]Tier{panicTier{}})

	got := r.Resolve(context.Background(), "hello there")
	assert.Equal(t, model.SourceRule, got.Source)
	assert.NotEmpty(t, got.Text)
}

func TestResolveBlankQuerySkipsTiers(t *testing.T) {
	client := &fakeCompleter{available: true, reply: "from the model"}
	r := NewDefault(loadedBase(t, hoursFAQ), client)

	for _, q := range []string{"", "   ", "\n\t"} {
		got := r.Resolve(context.Background(), q)
		assert.Equal(t, model.ResolutionResult{Text: rules.GenericReply, Source: model.SourceRule}, got)
	}
	assert.Zero(t, client.calls)
}

func TestResolveWithNoTiers(t *testing.T) {
	got := New(nil).Resolve(context.Background(), "opening hours")
	assert.Equal(t, model.SourceRule, got.Source)
	assert.Equal(t, rules.Reply("opening hours"), got.Text)
}

func TestResolveIsTotal(t *testing.T) {
	queries := []string{
		"x", "?", "what are your hours", "HUMAN please", "1234567890",
		"¿Dónde está?", "faq", strings.Repeat("storage ", 200), "asdlkj random gibberish",
	}
	clients := []*fakeCompleter{
		{},
		{available: true, reply: "ok"},
		{available: true, err: errors.New("timeout")},
	}
	for _, client := range clients {
		r := NewDefault(loadedBase(t, hoursFAQ), client)
		for _, q := range queries {
			got := r.Resolve(context.Background(), q)
			require.NotEmpty(t, got.Text, q)
			assert.Contains(t, []model.Source{model.SourceFAQ, model.SourceCompletion, model.SourceRule}, got.Source, q)
		}
	}
}

func TestTierSources(t *testing.T) {
	assert.Equal(t, model.SourceFAQ, FAQTier(nil).Source())
	assert.Equal(t, model.SourceCompletion, CompletionTier(nil).Source())
	assert.Equal(t, model.SourceRule, RuleTier().Source())

	_, ok, err := CompletionTier(&fakeCompleter{}).Attempt(context.Background(), "hi")
	assert.NoError(t, err)
	assert.False(t, ok)
}
