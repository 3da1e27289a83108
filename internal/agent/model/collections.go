package model

import "context"

// Collection names a record set of the data store.
type Collection string

const (
	CollectionFAQs            Collection = "faqs"
	CollectionInquiries       Collection = "customer_inquiries"
	CollectionServiceRequests Collection = "service_requests"
	CollectionLocations       Collection = "locations"
	CollectionSlots           Collection = "collection_slots"
)

// Collections lists every known collection in a stable order.
var Collections = []Collection{
	CollectionFAQs,
	CollectionInquiries,
	CollectionServiceRequests,
	CollectionLocations,
	CollectionSlots,
}

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

// FAQSource supplies the knowledge base with entries.
type FAQSource interface {
	// FAQs never fails; a degraded store answers with seed data
	FAQs(ctx context.Context) []FaqEntry
}

// Inserter persists records. Insert never returns an error; failures are
// reported through InsertResult.Success.
type Inserter interface {
	Insert(ctx context.Context, collection Collection, record any) InsertResult
}

// Prober performs a bounded read to check that the live store answers.
type Prober interface {
	Probe(ctx context.Context) error
	Mode() string
}

// ReferenceData is the read side consumed by the HTTP layer.
type ReferenceData interface {
	FAQSource
	Inquiries(ctx context.Context) []Inquiry
	ServiceRequests(ctx context.Context) []ServiceRequest
	Locations(ctx context.Context) []Location
	CollectionSlots(ctx context.Context) []CollectionSlot
}
