package domain

import (
	"sort"
	"strings"
)

// DefaultShortlistCategory is the category that exists in every workspace.
const DefaultShortlistCategory = "General Shortlist"

// Shortlists maps a category name to the set of player identifiers in it.
// Values are always the last mapping the remote store confirmed.
type Shortlists map[string]map[string]struct{}

// ShortlistsFromLists builds the set representation from the store's
// category -> [ids] payload. Blank names and ids are dropped.
func ShortlistsFromLists(raw map[string][]string) Shortlists {
	out := make(Shortlists, len(raw))
	for category, ids := range raw {
		name := NormalizeCategory(category)
		if name == "" {
			continue
		}
		set, ok := out[name]
		if !ok {
			set = make(map[string]struct{}, len(ids))
			out[name] = set
		}
		for _, id := range ids {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				set[trimmed] = struct{}{}
			}
		}
	}
	return out
}

// NormalizeCategory trims a category name.
func NormalizeCategory(raw string) string {
	return strings.TrimSpace(raw)
}

// WithDefault returns a copy that is guaranteed to contain category.
func (s Shortlists) WithDefault(category string) Shortlists {
	out := s.Clone()
	if _, ok := out[category]; !ok && category != "" {
		out[category] = map[string]struct{}{}
	}
	return out
}

func (s Shortlists) Contains(category, playerID string) bool {
	set, ok := s[category]
	if !ok {
		return false
	}
	_, ok = set[playerID]
	return ok
}

// IsInAnyCategory reports whether playerID appears in at least one category.
func (s Shortlists) IsInAnyCategory(playerID string) bool {
	for _, set := range s {
		if _, ok := set[playerID]; ok {
			return true
		}
	}
	return false
}

// Flatten returns every shortlisted id once, sorted.
func (s Shortlists) Flatten() []string {
	seen := make(map[string]struct{})
	for _, set := range s {
		for id := range set {
			seen[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Categories returns the category names sorted.
func (s Shortlists) Categories() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lists converts back to the category -> sorted ids form used on the wire.
func (s Shortlists) Lists() map[string][]string {
	out := make(map[string][]string, len(s))
	for name, set := range s {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[name] = ids
	}
	return out
}

// Clone deep-copies the mapping.
func (s Shortlists) Clone() Shortlists {
	out := make(Shortlists, len(s))
	for name, set := range s {
		copied := make(map[string]struct{}, len(set))
		for id := range set {
			copied[id] = struct{}{}
		}
		out[name] = copied
	}
	return out
}
