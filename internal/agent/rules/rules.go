// Package rules is the last resolution tier: a fixed keyword table that
// always produces a reply.
package rules

import "strings"

type Category string

const (
	CategoryBooking  Category = "booking"
	CategoryHours    Category = "hours"
	CategoryHandoff  Category = "handoff"
	CategorySizing   Category = "sizing"
	CategorySecurity Category = "security"
	CategoryFAQ      Category = "faq"
	CategoryGeneric  Category = "generic"
)

type rule struct {
	category Category
	keywords []string
	reply    string
}

// Order matters: "book a secure unit" is a booking question.
var table = []rule{
	{
		category: CategoryBooking,
		keywords: []string{"book", "collection"},
		reply:    "I'd be happy to help you book a collection! Currently, we have slots available next week. When would you prefer us to come by?",
	},
	{
		category: CategoryHours,
		keywords: []string{"hours", "time"},
		reply:    "Our stores are open Monday to Friday from 9am to 7pm, and on weekends from 10am to 5pm.",
	},
	{
		category: CategoryHandoff,
		keywords: []string{"human", "representative", "speak"},
		reply:    "I'll connect you with one of our customer service representatives. Please wait a moment while I transfer your chat, or call us directly at (555) 123-4567.",
	},
	{
		category: CategorySizing,
		keywords: []string{"size", "unit"},
		reply: "We offer a variety of storage unit sizes:\n" +
			"- Small (5x5): Perfect for small furniture, boxes\n" +
			"- Medium (10x10): Good for a 1-bedroom apartment\n" +
			"- Large (10x20): Fits contents of a 2-3 bedroom house\n" +
			"- Extra Large (10x30): Ideal for business inventory or large household moves",
	},
	{
		category: CategorySecurity,
		keywords: []string{"security", "secure"},
		reply:    "Your items' security is our top priority! Our facilities feature 24/7 video surveillance, electronic gate access, on-site management, and individually alarmed units.",
	},
	{
		category: CategoryFAQ,
		keywords: []string{"faq", "question"},
		reply: "Here are some frequently asked questions:\n" +
			"- What size storage units do you offer?\n" +
			"- Do you offer climate controlled units?\n" +
			"- How secure are your facilities?\n" +
			"- What are your payment options?",
	},
}

// GenericReply answers anything the table does not recognise.
const GenericReply = "Thanks for your message! I'm still learning. For specific inquiries, you might want to check our FAQ section or speak with a human representative."

// Classify returns the first category whose keyword occurs in query.
func Classify(query string) Category {
	return match(query).category
}

// Reply never fails and never returns an empty string.
func Reply(query string) string {
	return match(query).reply
}

func match(query string) rule {
	q := strings.ToLower(query)
	for _, r := range table {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r
			}
		}
	}
	return rule{category: CategoryGeneric, reply: GenericReply}
}
