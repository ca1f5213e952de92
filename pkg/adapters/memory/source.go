package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/navfocus/pkg/scenario"
)

// Source implements scenario.Source over an in-memory map, for tests and
// embedded use.
type Source struct {
	docs map[string]string
}

var _ scenario.Source = (*Source)(nil)

// NewSource creates a source from raw YAML documents keyed by ID.
func NewSource(docs map[string]string) *Source {
	copied := make(map[string]string, len(docs))
	for k, v := range docs {
		copied[k] = v
	}
	return &Source{docs: copied}
}

// List returns the metadata of every document, sorted by ID.
func (s *Source) List(ctx context.Context) ([]scenario.Metadata, error) {
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order

	out := make([]scenario.Metadata, 0, len(ids))
	for _, id := range ids {
		meta := scenario.Metadata{ID: id, Title: id}
		if sc, err := scenario.Parse([]byte(s.docs[id])); err == nil {
			meta.Title = firstNonEmpty(sc.Name, id)
			meta.Description = sc.Description
		}
		out = append(out, meta)
	}
	return out, nil
}

// Get parses the document stored under id.
func (s *Source) Get(ctx context.Context, id string) (*scenario.Scenario, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", scenario.ErrNotFound, id)
	}
	sc, err := scenario.Parse([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	if sc.Name == "" {
		sc.Name = id
	}
	return sc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
