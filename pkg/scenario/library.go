package scenario

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
)

// ErrNotFound is returned when the library has no scenario with the given ID.
var ErrNotFound = errors.New("scenario not found")

// Metadata is the frontmatter of a scenario document.
type Metadata struct {
	ID          string   `json:"id" mapstructure:"id"`
	Title       string   `json:"title" mapstructure:"title"`
	Description string   `json:"description" mapstructure:"description"`
	Tags        []string `json:"tags" mapstructure:"tags"`
}

// Library reads scenario documents from a Loam repository.
type Library struct {
	repo *loam.TypedRepository[Metadata]
}

// OpenLibrary opens dir read-only. Strict mode keeps numeric frontmatter
// values consistent across formats.
func OpenLibrary(dir string) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return NewLibrary(repo), nil
}

// NewLibrary wraps an initialized repository.
func NewLibrary(repo core.Repository) *Library {
	return &Library{repo: loam.NewTypedRepository[Metadata](repo)}
}

// List returns the metadata of every document, sorted by ID. Metadata IDs
// default to the file name without extension.
func (l *Library) List(ctx context.Context) ([]Metadata, error) {
	docs, err := l.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	out := make([]Metadata, 0, len(docs))
	for _, doc := range docs {
		meta := doc.Data
		meta.ID = normalizeID(meta.ID, doc.ID)
		if existing, ok := seen[meta.ID]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", meta.ID, existing, doc.ID)
		}
		seen[meta.ID] = doc.ID
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get loads and parses the scenario stored under id.
func (l *Library) Get(ctx context.Context, id string) (*Scenario, error) {
	doc, err := l.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, id, err)
	}

	sc, err := Parse([]byte(doc.Content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	if sc.Name == "" {
		sc.Name = doc.Data.Title
	}
	if sc.Name == "" {
		sc.Name = normalizeID(doc.Data.ID, doc.ID)
	}
	if sc.Description == "" {
		sc.Description = doc.Data.Description
	}
	return sc, nil
}

func normalizeID(metaID, docID string) string {
	id := metaID
	if id == "" {
		id = docID
	}
	if ext := filepath.Ext(id); ext != "" {
		id = strings.TrimSuffix(id, ext)
	}
	return filepath.ToSlash(id)
}
