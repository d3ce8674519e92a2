// Package explain generates a natural-language rationale for why one team
// would beat another when no verified chain of victories exists.
package explain

import (
	"context"
	"errors"
)

// ErrRateLimited is returned when the explainer is called more often than
// its configured rate allows.
var ErrRateLimited = errors.New("explanation rate limit exceeded")

// Explainer produces a short explanation of why victor would beat loser.
type Explainer interface {
	Explain(ctx context.Context, victor, loser string) (string, error)
}

// Func adapts a function to the Explainer interface.
type Func func(ctx context.Context, victor, loser string) (string, error)

// Explain calls f.
func (f Func) Explain(ctx context.Context, victor, loser string) (string, error) {
	return f(ctx, victor, loser)
}
