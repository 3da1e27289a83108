package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  Category
	}{
		{"I want to book a collection service", CategoryBooking},
		{"Can you pick up my COLLECTION of vinyl?", CategoryBooking},
		{"What are your store hours?", CategoryHours},
		{"what time do you close", CategoryHours},
		{"I'd like to speak with a human representative", CategoryHandoff},
		{"How big is the largest unit?", CategorySizing},
		{"what size do I need", CategorySizing},
		{"is it secure?", CategorySecurity},
		{"Security cameras?", CategorySecurity},
		{"show me the faq", CategoryFAQ},
		{"I have a question", CategoryFAQ},
		{"asdlkj random gibberish", CategoryGeneric},
		{"", CategoryGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestFirstCategoryWins(t *testing.T) {
	assert.Equal(t, CategoryBooking, Classify("book a secure unit"))
	assert.Equal(t, CategoryHours, Classify("what time can I speak to someone"))
	assert.Equal(t, CategorySizing, Classify("is the unit secure"))
}

func TestReplyIsNeverEmpty(t *testing.T) {
	for _, q := range []string{"", " ", "book", "hours", "human", "size", "secure", "faq", "zzz", "éè"} {
		assert.NotEmpty(t, Reply(q), q)
	}
	assert.Equal(t, GenericReply, Reply("asdlkj random gibberish"))
}
