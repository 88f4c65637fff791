package domain

import (
	"strings"
	"time"
)

const savedSearchDateLayout = "2006-01-02"

// SavedSearch is a named Criteria owned by the remote store.
type SavedSearch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Criteria  Criteria  `json:"criteria"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeSearchName trims a user-supplied saved-search name. An empty result
// means the name is invalid.
func NormalizeSearchName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// ParseSavedSearchDate accepts the store's plain date and RFC 3339 timestamps.
func ParseSavedSearchDate(raw string) time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}
	}
	for _, layout := range []string{savedSearchDateLayout, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// PrependSavedSearch returns a new slice with entry first and any previous
// entry with the same ID removed.
func PrependSavedSearch(list []SavedSearch, entry SavedSearch) []SavedSearch {
	out := make([]SavedSearch, 0, len(list)+1)
	out = append(out, entry)
	for _, existing := range list {
		if existing.ID == entry.ID {
			continue
		}
		out = append(out, existing)
	}
	return out
}

// RemoveSavedSearch returns a copy of list without the entry identified by id.
func RemoveSavedSearch(list []SavedSearch, id string) []SavedSearch {
	out := make([]SavedSearch, 0, len(list))
	for _, existing := range list {
		if existing.ID == id {
			continue
		}
		out = append(out, existing)
	}
	return out
}
