package graph

import "context"

// Source loads a victory graph from a backing store.
type Source interface {
	Load(ctx context.Context) (*Graph, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*Graph, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) (*Graph, error) {
	return f(ctx)
}
