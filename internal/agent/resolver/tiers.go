package resolver

import (
	"context"

	"github.com/stor-a-gentic/server/internal/agent/model"
	"github.com/stor-a-gentic/server/internal/agent/rules"
)

// Tier is one resolution strategy. Attempt reports ok=false when the tier
// has no answer; a non-nil error means the tier failed and the next one is
// consulted.
type Tier interface {
	Source() model.Source
	Attempt(ctx context.Context, query string) (text string, ok bool, err error)
}

// Matcher is the knowledge base lookup.
type Matcher interface {
	Match(query string) (model.FaqEntry, bool)
}

// Completer is the external completion capability.
type Completer interface {
	Available() bool
	Complete(ctx context.Context, query string) (string, error)
}

type faqTier struct {
	kb Matcher
}

// FAQTier answers from the knowledge base.
func FAQTier(kb Matcher) Tier {
	return &faqTier{kb: kb}
}

func (t *faqTier) Source() model.Source { return model.SourceFAQ }

func (t *faqTier) Attempt(_ context.Context, query string) (string, bool, error) {
	if t.kb == nil {
		return "", false, nil
	}
	entry, ok := t.kb.Match(query)
	if !ok || entry.Answer == "" {
		return "", false, nil
	}
	return entry.Answer, true, nil
}

type completionTier struct {
	client Completer
}

// CompletionTier forwards the query to the completion service when a
// credential is configured.
func CompletionTier(client Completer) Tier {
	return &completionTier{client: client}
}

func (t *completionTier) Source() model.Source { return model.SourceCompletion }

func (t *completionTier) Attempt(ctx context.Context, query string) (string, bool, error) {
	if t.client == nil || !t.client.Available() {
		return "", false, nil
	}
	text, err := t.client.Complete(ctx, query)
	if err != nil {
		return "", false, err
	}
	return text, text != "", nil
}

type ruleTier struct{}

// RuleTier is the keyword fallback. It always answers.
func RuleTier() Tier {
	return ruleTier{}
}

func (ruleTier) Source() model.Source { return model.SourceRule }

func (ruleTier) Attempt(_ context.Context, query string) (string, bool, error) {
	return rules.Reply(query), true, nil
}
