// Package knowledge holds the FAQ set the assistant answers from first.
package knowledge

import (
	"context"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/stor-a-gentic/server/internal/agent/model"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

// minSubsequenceWords is the shortest query the word-subsequence pass
// accepts. Shorter queries only match by plain substring.
const minSubsequenceWords = 3

// Base is safe for concurrent use. The entry set is swapped as a whole, so
// readers see either the old set or the new one.
type Base struct {
	source  model.FAQSource
	entries atomic.Pointer[[]entry]
}

type entry struct {
	faq    model.FaqEntry
	folded string
	words  []string
}

func New(source model.FAQSource) *Base {
	b := &Base{source: source}
	b.Replace(nil)
	return b
}

// Load fetches the FAQ collection and replaces the current set.
func (b *Base) Load(ctx context.Context) []model.FaqEntry {
	faqs := b.source.FAQs(ctx)
	b.Replace(faqs)
	logx.Info().Int("entries", len(faqs)).Msg("knowledge base loaded")
	return faqs
}

// Replace installs faqs as the current set, keeping their order.
func (b *Base) Replace(faqs []model.FaqEntry) {
	next := make([]entry, 0, len(faqs))
	for _, f := range faqs {
		folded := fold(f.Question)
		if folded == "" {
			continue
		}
		next = append(next, entry{faq: f, folded: folded, words: words(folded)})
	}
	b.entries.Store(&next)
}

// Entries returns a copy of the current set in load order.
func (b *Base) Entries() []model.FaqEntry {
	cur := *b.entries.Load()
	out := make([]model.FaqEntry, len(cur))
	for i, e := range cur {
		out[i] = e.faq
	}
	return out
}

func (b *Base) Len() int {
	return len(*b.entries.Load())
}

// Match returns the first entry, in load order, whose folded question
// contains the folded query or is contained by it. When no entry matches
// that way, a second pass accepts the first entry whose question words
// contain the query words in order (or the reverse), for queries of at
// least minSubsequenceWords words.
func (b *Base) Match(query string) (model.FaqEntry, bool) {
	q := fold(query)
	if q == "" {
		return model.FaqEntry{}, false
	}
	cur := *b.entries.Load()

	for _, e := range cur {
		if strings.Contains(q, e.folded) || strings.Contains(e.folded, q) {
			return e.faq, true
		}
	}

	qw := words(q)
	if len(qw) < minSubsequenceWords {
		return model.FaqEntry{}, false
	}
	for _, e := range cur {
		if isSubsequence(qw, e.words) || isSubsequence(e.words, qw) {
			return e.faq, true
		}
	}
	return model.FaqEntry{}, false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func words(folded string) []string {
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// isSubsequence reports whether every word of needle appears in haystack in
// the same order.
func isSubsequence(needle, haystack []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	i := 0
	for _, w := range haystack {
		if w == needle[i] {
			i++
			if i == len(needle) {
				return true
			}
		}
	}
	return false
}
