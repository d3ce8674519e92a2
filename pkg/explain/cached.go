package explain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/papercomputeco/beatpath/pkg/explain/cache"
	"github.com/papercomputeco/beatpath/pkg/utils"
)

// previewLen bounds the explanation text written to debug logs.
const previewLen = 60

const defaultCallTimeout = 30 * time.Second

// CachedConfig configures a Cached explainer.
type CachedConfig struct {
	// Next is the explainer that actually generates text.
	Next Explainer

	// Store caches generated text. Required.
	Store cache.Store

	// Limiter bounds calls to Next. Nil means unlimited.
	Limiter *rate.Limiter

	// Timeout bounds one shared call to Next (defaults to 30s). The call
	// does not follow any single caller's cancellation.
	Timeout time.Duration

	// Logger is the configured slog logger
	Logger *slog.Logger
}

// Cached serves explanations from a cache, collapses concurrent requests for
// the same matchup into one upstream call and rate limits the rest.
type Cached struct {
	config CachedConfig
	group  singleflight.Group
}

// NewCached wraps c.Next.
func NewCached(c CachedConfig) (*Cached, error) {
	if c.Next == nil {
		return nil, fmt.Errorf("next explainer is required")
	}
	if c.Store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if c.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultCallTimeout
	}
	return &Cached{config: c}, nil
}

// Explain implements Explainer.
func (c *Cached) Explain(ctx context.Context, victor, loser string) (string, error) {
	key := cache.Key(victor, loser)

	text, ok, err := c.config.Store.Get(ctx, key)
	if err != nil {
		c.config.Logger.Warn("explanation cache read failed", "error", err)
	} else if ok {
		c.config.Logger.Debug("explanation cache hit", "victor", victor, "loser", loser)
		return text, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		if c.config.Limiter != nil && !c.config.Limiter.Allow() {
			return "", ErrRateLimited
		}

		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.config.Timeout)
		defer cancel()

		text, err := c.config.Next.Explain(callCtx, victor, loser)
		if err != nil {
			return "", err
		}

		if err := c.config.Store.Set(callCtx, key, text); err != nil {
			c.config.Logger.Warn("explanation cache write failed", "error", err)
		}
		return text, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return "", res.Err
	}

	text = res.Val.(string)
	c.config.Logger.Debug("explanation generated",
		"victor", victor,
		"loser", loser,
		"shared", res.Shared,
		"preview", utils.Truncate(text, previewLen),
	)
	return text, nil
}
