package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShortlistsFromLists(t *testing.T) {
	t.Parallel()

	lists := ShortlistsFromLists(map[string][]string{
		"General Shortlist": {"p1", "p2", " p2 "},
		"Targets":           {"p3", "p1", ""},
		"  ":                {"p9"},
	})

	if diff := cmp.Diff([]string{"General Shortlist", "Targets"}, lists.Categories()); diff != "" {
		t.Fatalf("categories (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p1", "p2", "p3"}, lists.Flatten()); diff != "" {
		t.Fatalf("flatten (-want +got):\n%s", diff)
	}
	if !lists.Contains("Targets", "p3") || lists.Contains("Targets", "p2") {
		t.Fatal("unexpected membership")
	}
	if !lists.IsInAnyCategory("p3") || lists.IsInAnyCategory("p9") {
		t.Fatal("unexpected IsInAnyCategory result")
	}
	want := map[string][]string{
		"General Shortlist": {"p1", "p2"},
		"Targets":           {"p1", "p3"},
	}
	if diff := cmp.Diff(want, lists.Lists()); diff != "" {
		t.Fatalf("lists (-want +got):\n%s", diff)
	}
}

func TestShortlistsWithDefaultAndClone(t *testing.T) {
	t.Parallel()

	lists := ShortlistsFromLists(map[string][]string{"Targets": {"p1"}})
	withDefault := lists.WithDefault(DefaultShortlistCategory)
	if _, ok := withDefault[DefaultShortlistCategory]; !ok {
		t.Fatal("default category missing")
	}
	if _, ok := lists[DefaultShortlistCategory]; ok {
		t.Fatal("WithDefault must not mutate the receiver")
	}

	clone := lists.Clone()
	clone["Targets"]["p2"] = struct{}{}
	if lists.Contains("Targets", "p2") {
		t.Fatal("Clone must deep copy")
	}
}
