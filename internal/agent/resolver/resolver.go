// Package resolver turns a visitor's message into exactly one reply by
// consulting an ordered list of tiers.
package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/stor-a-gentic/server/internal/agent/model"
	"github.com/stor-a-gentic/server/internal/agent/rules"
	"github.com/stor-a-gentic/server/internal/metrics"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

var errTierPanic = errors.New("tier panicked")

type Resolver struct {
	tiers   []Tier
	metrics *metrics.Metrics
}

type Option func(*Resolver)

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// New builds a resolver over tiers, tried in the given order.
func New(tiers []Tier, opts ...Option) *Resolver {
	r := &Resolver{tiers: tiers}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefault wires the standard chain: knowledge base, completion, rules.
func NewDefault(kb Matcher, client Completer, opts ...Option) *Resolver {
	return New([]Tier{FAQTier(kb), CompletionTier(client), RuleTier()}, opts...)
}

// Resolve never fails. Tier errors are logged and the next tier is tried;
// when every tier declines, the rule reply is returned. Blank queries go
// straight to the rule reply.
func (r *Resolver) Resolve(ctx context.Context, query string) model.ResolutionResult {
	if strings.TrimSpace(query) == "" {
		return r.result(query, rules.Reply(query), model.SourceRule)
	}
	for _, tier := range r.tiers {
		text, ok, err := r.attempt(ctx, tier, query)
		if err != nil {
			r.metrics.TierFailed(string(tier.Source()))
			logx.Warn().Err(err).Str("source", string(tier.Source())).Msg("resolution tier failed, falling through")
			continue
		}
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		return r.result(query, text, tier.Source())
	}
	return r.result(query, rules.Reply(query), model.SourceRule)
}

// attempt contains panics so a misbehaving tier cannot break totality.
func (r *Resolver) attempt(ctx context.Context, tier Tier, query string) (text string, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logx.Error().Interface("panic", rec).Str("source", string(tier.Source())).Msg("resolution tier panicked")
			text, ok, err = "", false, errTierPanic
		}
	}()
	return tier.Attempt(ctx, query)
}

func (r *Resolver) result(query, text string, source model.Source) model.ResolutionResult {
	r.metrics.Resolved(string(source))
	event := logx.Debug().Str("source", string(source))
	if source == model.SourceRule {
		event = event.Str("category", string(rules.Classify(query)))
	}
	event.Msg("query resolved")
	return model.ResolutionResult{Text: text, Source: source}
}
