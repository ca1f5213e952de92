package scenario

import "context"

// Source provides scenarios by ID. Library is the Loam-backed implementation.
type Source interface {
	List(ctx context.Context) ([]Metadata, error)
	Get(ctx context.Context, id string) (*Scenario, error)
}

var _ Source = (*Library)(nil)
