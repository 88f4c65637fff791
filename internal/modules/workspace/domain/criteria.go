package domain

import (
	"encoding/json"
	"math"
	"strings"

	"scoutWorkspace/internal/shared/normalization"
)

const (
	// AnyOption is the "no restriction" value for position and league.
	AnyOption = normalization.AnyOption

	MinAge          = 16
	MaxAgeCeiling   = 40
	MaxValueCeiling = 200.0
	DefaultPageSize = 20
)

// Listing names the remote endpoint family a query is served from.
type Listing string

const (
	ListingTopProspects Listing = "top_prospects"
	ListingFiltered     Listing = "filtered"
)

// Criteria is a catalog filter. Values are in millions of currency units.
// The json tags are the saved-search wire format.
type Criteria struct {
	Query    string  `json:"q" schema:"q,omitempty"`
	Position string  `json:"pos" schema:"pos,omitempty"`
	League   string  `json:"league" schema:"league,omitempty"`
	Club     string  `json:"club" schema:"club,omitempty"`
	MaxAge   int     `json:"max_age" schema:"max_age,omitempty"`
	MinValue float64 `json:"min_val" schema:"min_val,omitempty"`
	MaxValue float64 `json:"max_val" schema:"max_val,omitempty"`
}

// DefaultCriteria returns the criteria a fresh workspace starts with.
func DefaultCriteria() Criteria {
	return Criteria{
		Position: AnyOption,
		League:   AnyOption,
		MaxAge:   MaxAgeCeiling,
		MinValue: 0,
		MaxValue: MaxValueCeiling,
	}
}

func clamp[T int | float64](value, lower, upper T) T {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}

// Normalize returns a sanitized copy: text trimmed, sentinels canonicalised,
// non-positive ceilings treated as unset and numbers clamped to their ranges.
// Normalize(Normalize(c)) == Normalize(c).
func (c Criteria) Normalize() Criteria {
	n := Criteria{
		Query:    strings.Join(strings.Fields(c.Query), " "),
		Position: normalization.NormalizePosition(c.Position),
		League:   normalization.NormalizeLeague(c.League),
		Club:     strings.TrimSpace(c.Club),
		MaxAge:   c.MaxAge,
		MinValue: c.MinValue,
		MaxValue: c.MaxValue,
	}

	if n.MaxAge <= 0 {
		n.MaxAge = MaxAgeCeiling
	}
	n.MaxAge = clamp(n.MaxAge, MinAge, MaxAgeCeiling)

	if math.IsNaN(n.MinValue) {
		n.MinValue = 0
	}
	// A zero ceiling is indistinguishable from an omitted field, so it means unset.
	if math.IsNaN(n.MaxValue) || n.MaxValue <= 0 {
		n.MaxValue = MaxValueCeiling
	}
	n.MinValue = clamp(n.MinValue, 0, MaxValueCeiling)
	n.MaxValue = clamp(n.MaxValue, 0, MaxValueCeiling)
	if n.MinValue > n.MaxValue {
		n.MinValue = n.MaxValue
	}
	return n
}

// IsEmpty reports whether every field holds its unset sentinel.
func (c Criteria) IsEmpty() bool {
	return c.Normalize() == DefaultCriteria()
}

// Equal compares the normalized forms of both criteria.
func (c Criteria) Equal(other Criteria) bool {
	return c.Normalize() == other.Normalize()
}

// Listing selects the unfiltered top-prospects listing for empty criteria.
func (c Criteria) Listing() Listing {
	if c.IsEmpty() {
		return ListingTopProspects
	}
	return ListingFiltered
}

// UnmarshalJSON accepts numbers encoded as strings and missing fields, which
// older saved searches contain.
func (c *Criteria) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded := Criteria{
		Query:    normalization.AsString(raw["q"]),
		Position: normalization.AsString(raw["pos"]),
		League:   normalization.AsString(raw["league"]),
		Club:     normalization.AsString(raw["club"]),
		MaxAge:   normalization.AsInt(raw["max_age"]),
		MinValue: normalization.AsFloat64(raw["min_val"]),
		MaxValue: normalization.AsFloat64(raw["max_val"]),
	}
	*c = decoded.Normalize()
	return nil
}
