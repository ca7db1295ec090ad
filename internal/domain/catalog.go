package domain

import "context"

// AllValues is the wildcard for EventQuery.Category and EventQuery.Location.
const AllValues = "all"

// Categories is the fixed set of event categories, in display order.
var Categories = []string{
	"Environment",
	"Education",
	"Hunger Relief",
	"Healthcare",
	"Animal Welfare",
	"Community Development",
	"Arts & Culture",
	"Senior Care",
	"Youth Programs",
	"Disaster Relief",
}

// LocationPresets are the area names offered by the listing location filter.
var LocationPresets = []string{
	"Downtown",
	"North Side",
	"South Side",
	"East Side",
	"West Side",
}

// IsCategory reports whether c is one of Categories (case-sensitive).
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// EventQuery selects events from the catalog. Category and Location accept
// AllValues as a wildcard.
type EventQuery struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Location string `json:"location"`
}

// MatchAll returns a query that selects every event.
func MatchAll() EventQuery {
	return EventQuery{Category: AllValues, Location: AllValues}
}

// EventCatalogService searches the persisted collection.
type EventCatalogService interface {
	Search(ctx context.Context, q EventQuery) ([]Event, error)
}
