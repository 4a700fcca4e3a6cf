package sources

import (
	"fmt"

	"github.com/magnusgp/fermatter/internal/model"
)

// Registry is the per-request lookup the matcher resolves against:
// the declared subset of the library plus the caller's own sources
// under generated U# ids.
type Registry struct {
	entries map[string]model.LibrarySource
}

// NewRegistry builds a registry from the declared library ids and the
// caller's free-form user sources. Unknown library ids are skipped.
// User sources get sequential ids U1, U2, ... in input order.
func NewRegistry(libraryIDs []string, userSources []string) *Registry {
	entries := make(map[string]model.LibrarySource)

	for _, id := range libraryIDs {
		if s, ok := LibrarySourceByID(id); ok {
			entries[id] = s
		}
	}
	for i, raw := range userSources {
		id := fmt.Sprintf("U%d", i+1)
		entries[id] = model.LibrarySource{ID: id, Title: raw}
	}

	return &Registry{entries: entries}
}

// Lookup returns the registry entry for an id.
func (r *Registry) Lookup(id string) (model.LibrarySource, bool) {
	s, ok := r.entries[id]
	return s, ok
}

// Match projects the distinct source ids cited across the observations
// through the registry, preserving first-appearance order. Ids with no
// registry entry are silently omitted: sources are never invented.
func Match(observations []model.Observation, registry *Registry) []model.SourceUsed {
	seen := make(map[string]bool)
	var used []model.SourceUsed

	for _, obs := range observations {
		for _, id := range obs.SourceIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			if s, ok := registry.Lookup(id); ok {
				used = append(used, model.SourceUsed{ID: s.ID, Title: s.Title, URL: s.URL})
			}
		}
	}
	return used
}
