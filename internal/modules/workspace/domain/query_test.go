package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToQueryParamsOmitsSentinels(t *testing.T) {
	t.Parallel()

	got := ToQueryParams(DefaultCriteria(), NewCursor(DefaultPageSize))
	if got.Encode() != "limit=20&offset=0" {
		t.Fatalf("unexpected params: %s", got.Encode())
	}
}

func TestToQueryParamsEncodesFilters(t *testing.T) {
	t.Parallel()

	criteria := Criteria{Query: "de jong", Position: "Winger", League: "all", Club: "PSV", MaxAge: 23, MinValue: 12.5, MaxValue: 80}
	got := ToQueryParams(criteria, NewCursor(20).Advance(20))

	want := map[string][]string{
		"q":       {"de jong"},
		"pos":     {"Winger"},
		"club":    {"PSV"},
		"max_age": {"23"},
		"min_val": {"12.5"},
		"max_val": {"80"},
		"limit":   {"20"},
		"offset":  {"20"},
	}
	if diff := cmp.Diff(want, map[string][]string(got)); diff != "" {
		t.Fatalf("unexpected params (-want +got):\n%s", diff)
	}
}

func TestIsEmptyMatchesEncodedFields(t *testing.T) {
	t.Parallel()

	samples := []Criteria{
		{},
		DefaultCriteria(),
		{Position: "*", League: "-", MaxAge: 40, MaxValue: 200},
		{Query: "x"},
		{Position: "gk"},
		{League: "epl"},
		{Club: "Benfica"},
		{MaxAge: 39},
		{MinValue: 0.5},
		{MaxValue: 199},
		{MinValue: 200, MaxValue: 200},
	}
	for _, criteria := range samples {
		params := ToQueryParams(criteria, NewCursor(10))
		params.Del("limit")
		params.Del("offset")
		if criteria.IsEmpty() != (len(params) == 0) {
			t.Fatalf("criteria %+v: IsEmpty=%v but extra params %v", criteria, criteria.IsEmpty(), params)
		}
	}
}

func TestCatalogQueryCanonicalKey(t *testing.T) {
	t.Parallel()

	a := NewCatalogQuery(Criteria{Position: "rw", MaxAge: 23}, NewCursor(20))
	b := NewCatalogQuery(Criteria{Position: "Winger", League: "any", MaxAge: 23}, NewCursor(20))
	if a.CanonicalKey() != b.CanonicalKey() {
		t.Fatalf("expected equal keys, got %q and %q", a.CanonicalKey(), b.CanonicalKey())
	}
	if a.CanonicalKey() != "filtered?limit=20&max_age=23&offset=0&pos=Winger" {
		t.Fatalf("unexpected key %q", a.CanonicalKey())
	}

	top := NewCatalogQuery(Criteria{}, NewCursor(0))
	if top.CanonicalKey() != "top_prospects?limit=20&offset=0" {
		t.Fatalf("unexpected key %q", top.CanonicalKey())
	}
}
