package knowledge

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stor-a-gentic/server/internal/agent/model"
)

type stubSource struct {
	calls atomic.Int32
	faqs  []model.FaqEntry
}

func (s *stubSource) FAQs(context.Context) []model.FaqEntry {
	s.calls.Add(1)
	return s.faqs
}

var hoursFAQ = model.FaqEntry{ID: "4", Question: "What are your business hours?", Answer: "Mon-Fri 9-7, weekends 10-5"}

func newBase(faqs ...model.FaqEntry) *Base {
	b := New(&stubSource{})
	b.Replace(faqs)
	return b
}

func TestMatchQueryContainsQuestion(t *testing.T) {
	b := newBase(model.FaqEntry{ID: "1", Question: "Do you offer climate control", Answer: "Yes."})

	got, ok := b.Match("Hi there, DO YOU OFFER CLIMATE CONTROL for pianos?")
	require.True(t, ok)
	assert.Equal(t, "Yes.", got.Answer)
}

func TestMatchQuestionContainsQuery(t *testing.T) {
	b := newBase(model.FaqEntry{ID: "1", Question: "Are your storage units climate controlled?", Answer: "Yes."})

	got, ok := b.Match("climate controlled")
	require.True(t, ok)
	assert.Equal(t, "1", got.ID)
}

func TestMatchFirstInLoadOrderWins(t *testing.T) {
	b := newBase(
		model.FaqEntry{ID: "a", Question: "What size storage units do you offer?", Answer: "first"},
		model.FaqEntry{ID: "b", Question: "Which unit size fits a sofa?", Answer: "second"},
	)

	got, ok := b.Match("size")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestMatchBusinessHoursScenario(t *testing.T) {
	b := newBase(hoursFAQ)

	got, ok := b.Match("What are your hours?")
	require.True(t, ok)
	assert.Equal(t, "Mon-Fri 9-7, weekends 10-5", got.Answer)
}

func TestSubstringPassRunsBeforeWordPass(t *testing.T) {
	b := newBase(
		model.FaqEntry{ID: "words", Question: "What are your weekend opening hours?", Answer: "w"},
		model.FaqEntry{ID: "substr", Question: "what are your hours", Answer: "s"},
	)

	got, ok := b.Match("What are your hours?")
	require.True(t, ok)
	assert.Equal(t, "substr", got.ID)
}

func TestShortQueriesOnlyMatchBySubstring(t *testing.T) {
	b := newBase(hoursFAQ)

	_, ok := b.Match("your hours")
	assert.False(t, ok)
}

func TestNoMatch(t *testing.T) {
	b := newBase(hoursFAQ)

	_, ok := b.Match("asdlkj random gibberish")
	assert.False(t, ok)
	_, ok = b.Match("   ")
	assert.False(t, ok)
}

func TestBlankQuestionsAreIgnored(t *testing.T) {
	b := newBase(model.FaqEntry{ID: "blank", Question: "  ", Answer: "never"})

	_, ok := b.Match("anything at all")
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestLoadReplacesWholesale(t *testing.T) {
	src := &stubSource{faqs: []model.FaqEntry{hoursFAQ}}
	b := New(src)

	loaded := b.Load(context.Background())
	assert.Len(t, loaded, 1)
	assert.Equal(t, []model.FaqEntry{hoursFAQ}, b.Entries())

	src.faqs = []model.FaqEntry{{ID: "9", Question: "Do you sell boxes?", Answer: "Yes."}}
	b.Load(context.Background())

	_, ok := b.Match("What are your business hours?")
	assert.False(t, ok)
	_, ok = b.Match("do you sell boxes")
	assert.True(t, ok)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestConcurrentReadersDuringReplace(t *testing.T) {
	b := newBase(hoursFAQ)
	other := model.FaqEntry{ID: "x", Question: "What are your business hours?", Answer: "other"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if i%2 == 0 {
					b.Replace([]model.FaqEntry{other})
					b.Replace([]model.FaqEntry{hoursFAQ})
					continue
				}
				got, ok := b.Match("what are your business hours")
				assert.True(t, ok)
				assert.Contains(t, []string{"Mon-Fri 9-7, weekends 10-5", "other"}, got.Answer)
			}
		}(i)
	}
	wg.Wait()
}

func TestIsSubsequence(t *testing.T) {
	assert.True(t, isSubsequence([]string{"a", "c"}, []string{"a", "b", "c"}))
	assert.False(t, isSubsequence([]string{"c", "a"}, []string{"a", "b", "c"}))
	assert.False(t, isSubsequence(nil, []string{"a"}))
	assert.False(t, isSubsequence([]string{"a", "b"}, []string{"a"}))
}
