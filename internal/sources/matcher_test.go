package sources

import (
	"testing"

	"github.com/magnusgp/fermatter/internal/model"
)

func TestMatch_FirstAppearanceOrder(t *testing.T) {
	registry := NewRegistry([]string{"S1", "S3", "S5"}, nil)
	observations := []model.Observation{
		{ID: "a", SourceIDs: []string{"S3"}},
		{ID: "b", SourceIDs: []string{"S1", "S3"}},
		{ID: "c", SourceIDs: []string{"S5"}},
	}

	used := Match(observations, registry)
	if len(used) != 3 {
		t.Fatalf("Expected 3 sources, got %d", len(used))
	}
	for i, want := range []string{"S3", "S1", "S5"} {
		if used[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, used[i].ID)
		}
	}
}

func TestMatch_UnknownIDsOmitted(t *testing.T) {
	registry := NewRegistry([]string{"S1"}, nil)
	observations := []model.Observation{
		{ID: "a", SourceIDs: []string{"S1", "S999", "bogus"}},
	}

	used := Match(observations, registry)
	if len(used) != 1 || used[0].ID != "S1" {
		t.Errorf("Expected only S1, got %v", used)
	}
}

func TestMatch_NoCitations(t *testing.T) {
	registry := NewRegistry([]string{"S1"}, nil)
	used := Match([]model.Observation{{ID: "a"}}, registry)
	if len(used) != 0 {
		t.Errorf("Expected no sources used, got %v", used)
	}
}

func TestNewRegistry_UserSources(t *testing.T) {
	registry := NewRegistry(nil, []string{"Smith 2024, Journal of Examples", "https://example.com/post"})

	first, ok := registry.Lookup("U1")
	if !ok || first.Title != "Smith 2024, Journal of Examples" {
		t.Errorf("Expected U1 to carry the first user source, got %+v ok=%v", first, ok)
	}
	if _, ok := registry.Lookup("U3"); ok {
		t.Error("Expected no U3 entry")
	}
}

func TestSuggest_RestrictedToDeclared(t *testing.T) {
	ids := Suggest(model.TypeCitationNeeded, []string{"S3", "S8"})
	if len(ids) != 1 || ids[0] != "S3" {
		t.Errorf("Expected [S3], got %v", ids)
	}

	if got := Suggest(model.TypeCitationNeeded, nil); got != nil {
		t.Errorf("Expected no suggestions without declared sources, got %v", got)
	}
	if got := Suggest(model.TypeInstability, []string{"S1"}); got != nil {
		t.Errorf("Expected no suggestions for instability, got %v", got)
	}
}

func TestLibraryIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Library {
		if seen[s.ID] {
			t.Errorf("Duplicate library id %s", s.ID)
		}
		seen[s.ID] = true
		if s.Title == "" || s.URL == "" {
			t.Errorf("Library entry %s missing metadata", s.ID)
		}
	}
}
