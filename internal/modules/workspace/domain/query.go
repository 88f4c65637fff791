package domain

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

var queryEncoder = newQueryEncoder()

func newQueryEncoder() *schema.Encoder {
	encoder := schema.NewEncoder()
	encoder.RegisterEncoder(float64(0), func(v reflect.Value) string {
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	})
	return encoder
}

// CatalogQuery is a single page request against the remote catalog.
type CatalogQuery struct {
	Criteria Criteria
	Cursor   Cursor
}

// CatalogPage is one page of catalog rows. Returned counts every row the
// server sent, including rows dropped while decoding; paging is decided on it.
type CatalogPage struct {
	Players  []Player `json:"players"`
	Returned int      `json:"returned"`
}

// NewCatalogPage builds a page where every returned row decoded.
func NewCatalogPage(players []Player) CatalogPage {
	return CatalogPage{Players: players, Returned: len(players)}
}

// NewCatalogQuery normalizes criteria and pairs them with cursor.
func NewCatalogQuery(criteria Criteria, cursor Cursor) CatalogQuery {
	if cursor.Limit <= 0 {
		cursor.Limit = DefaultPageSize
	}
	if cursor.Offset < 0 {
		cursor.Offset = 0
	}
	return CatalogQuery{Criteria: criteria.Normalize(), Cursor: cursor}
}

// Listing reports which remote listing serves the query.
func (q CatalogQuery) Listing() Listing {
	return q.Criteria.Listing()
}

// Values returns the encoded parameter set for the query.
func (q CatalogQuery) Values() url.Values {
	return ToQueryParams(q.Criteria, q.Cursor)
}

// CanonicalKey builds a stable cache key for the query.
func (q CatalogQuery) CanonicalKey() string {
	var builder strings.Builder
	builder.WriteString(string(q.Listing()))
	builder.WriteString("?")
	builder.WriteString(q.Values().Encode())
	return builder.String()
}

// ToQueryParams encodes criteria and cursor for the remote catalog. Fields at
// their unset sentinel are omitted so the remote applies its own defaults;
// limit and offset are always present.
func ToQueryParams(criteria Criteria, cursor Cursor) url.Values {
	wire := criteria.Normalize()
	if wire.Position == AnyOption {
		wire.Position = ""
	}
	if wire.League == AnyOption {
		wire.League = ""
	}
	if wire.MaxAge == MaxAgeCeiling {
		wire.MaxAge = 0
	}
	if wire.MaxValue == MaxValueCeiling {
		wire.MaxValue = 0
	}

	values := url.Values{}
	// Criteria only holds scalar fields, so encoding cannot fail.
	_ = queryEncoder.Encode(wire, values)

	limit := cursor.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	offset := cursor.Offset
	if offset < 0 {
		offset = 0
	}
	values.Set("limit", strconv.Itoa(limit))
	values.Set("offset", strconv.Itoa(offset))
	return values
}
