package storage

import (
	"encoding/json"

	"github.com/stor-a-gentic/server/internal/agent/model"
)

// collectionSpec describes how a collection is read. Table names and order
// clauses are fixed here and never come from callers.
type collectionSpec struct {
	collection model.Collection
	orderBy    string
	cacheable  bool
	// booking collections get simulated latency on mock writes
	booking bool
}

var specs = map[model.Collection]collectionSpec{
	model.CollectionFAQs: {
		collection: model.CollectionFAQs,
		cacheable:  true,
	},
	model.CollectionInquiries: {
		collection: model.CollectionInquiries,
		orderBy:    "created_at DESC",
	},
	model.CollectionServiceRequests: {
		collection: model.CollectionServiceRequests,
		orderBy:    "date ASC",
		booking:    true,
	},
	model.CollectionLocations: {
		collection: model.CollectionLocations,
		cacheable:  true,
	},
	model.CollectionSlots: {
		collection: model.CollectionSlots,
		orderBy:    "date ASC",
		cacheable:  true,
	},
}

func (s collectionSpec) table() string {
	return string(s.collection)
}

// seedRows returns the built-in rows of a collection, already in fetch order.
func seedRows(c model.Collection) []json.RawMessage {
	switch c {
	case model.CollectionFAQs:
		return mustRaw(seedFAQs)
	case model.CollectionLocations:
		return mustRaw(seedLocations)
	case model.CollectionSlots:
		return mustRaw(seedCollectionSlots)
	default:
		return []json.RawMessage{}
	}
}

func mustRaw[T any](rows []T) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		b, err := json.Marshal(r)
		if err != nil {
			panic(err)
		}
		out = append(out, b)
	}
	return out
}
