package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/papercomputeco/beatpath/pkg/eventstream"
	"github.com/papercomputeco/beatpath/pkg/eventstream/kafka"
	"github.com/papercomputeco/beatpath/pkg/eventstream/nop"
	"github.com/papercomputeco/beatpath/pkg/explain"
	"github.com/papercomputeco/beatpath/pkg/explain/cache"
	"github.com/papercomputeco/beatpath/pkg/explain/gemini"
	"github.com/papercomputeco/beatpath/pkg/graph"
	"github.com/papercomputeco/beatpath/pkg/graph/gexf"
	"github.com/papercomputeco/beatpath/pkg/graph/neo4jgraph"
	"github.com/papercomputeco/beatpath/pkg/teams"
	"github.com/papercomputeco/beatpath/pkg/teams/file"
	"github.com/papercomputeco/beatpath/pkg/teams/postgres"
	"github.com/papercomputeco/beatpath/pkg/teams/sqlite"
)

// geminiKeyEnv is read when llm.api_key is unset.
const geminiKeyEnv = "GEMINI_API_KEY"

const explanationCachePrefix = "beatpath:explain:"

// closer releases a resource on shutdown.
type closer func() error

func newGraphSource(ctx context.Context, v *viper.Viper) (graph.Source, closer, error) {
	switch source := v.GetString("graph.source"); source {
	case "gexf":
		return gexf.NewSource(v.GetString("graph.path")), nil, nil

	case "neo4j":
		src, err := neo4jgraph.NewSource(neo4jgraph.Config{
			URI:      v.GetString("neo4j.uri"),
			Username: v.GetString("neo4j.username"),
			Password: v.GetString("neo4j.password"),
			Database: v.GetString("neo4j.database"),
		})
		if err != nil {
			return nil, nil, err
		}
		return src, func() error { return src.Close(ctx) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown graph source: %q (expected gexf or neo4j)", source)
	}
}

// newTeamsLoader returns nil for source "none".
func newTeamsLoader(v *viper.Viper) (teams.Loader, error) {
	switch source := v.GetString("teams.source"); source {
	case "file":
		return file.NewLoader(v.GetString("teams.path")), nil
	case "sqlite":
		return sqlite.NewLoader(v.GetString("teams.path")), nil
	case "postgres":
		dsn := v.GetString("teams.dsn")
		if dsn == "" {
			return nil, fmt.Errorf("teams.dsn is required for the postgres teams source")
		}
		return postgres.NewLoader(dsn), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown teams source: %q (expected file, sqlite, postgres or none)", source)
	}
}

// newExplainer builds the fallback explainer. A nil explainer with a nil
// error means explanations are unavailable; the path service reports that
// to clients.
func newExplainer(ctx context.Context, v *viper.Viper, logger *slog.Logger) (explain.Explainer, closer, error) {
	switch provider := v.GetString("llm.provider"); provider {
	case "none":
		return nil, nil, nil

	case "gemini":
		apiKey := v.GetString("llm.api_key")
		if apiKey == "" {
			apiKey = os.Getenv(geminiKeyEnv)
		}
		if apiKey == "" {
			logger.Warn("no gemini API key configured, explanations unavailable",
				"hint", "set llm.api_key or "+geminiKeyEnv,
			)
			return nil, nil, nil
		}

		next, err := gemini.New(ctx, apiKey, v.GetString("llm.model"))
		if err != nil {
			return nil, nil, err
		}

		store, err := newCacheStore(v)
		if err != nil {
			return nil, nil, err
		}
		if store == nil {
			return next, nil, nil
		}

		var limiter *rate.Limiter
		if r := v.GetFloat64("llm.rate"); r > 0 {
			limiter = rate.NewLimiter(rate.Limit(r), max(v.GetInt("llm.burst"), 1))
		}

		cached, err := explain.NewCached(explain.CachedConfig{
			Next:    next,
			Store:   store,
			Limiter: limiter,
			Logger:  logger,
		})
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return cached, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown llm provider: %q (expected gemini or none)", provider)
	}
}

// newCacheStore returns nil for provider "none".
func newCacheStore(v *viper.Viper) (cache.Store, error) {
	ttl, err := time.ParseDuration(v.GetString("cache.ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid cache.ttl: %w", err)
	}

	switch provider := v.GetString("cache.provider"); provider {
	case "memory":
		return cache.NewMemory(ttl), nil
	case "redis":
		return cache.NewRedis(v.GetString("cache.redis_addr"), explanationCachePrefix, ttl), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache provider: %q (expected memory, redis or none)", provider)
	}
}

func newPublisher(v *viper.Viper) (eventstream.Publisher, error) {
	switch provider := v.GetString("events.provider"); provider {
	case "nop", "":
		return nop.NewPublisher(), nil
	case "kafka":
		pub, err := kafka.NewPublisher(splitList(v.GetString("events.brokers")), v.GetString("events.topic"))
		if err != nil {
			return nil, err
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("unknown events provider: %q (expected nop or kafka)", provider)
	}
}

// watchFiles lists the local data files a reload should follow.
func watchFiles(v *viper.Viper) []string {
	var files []string
	if v.GetString("graph.source") == "gexf" {
		files = append(files, v.GetString("graph.path"))
	}
	switch v.GetString("teams.source") {
	case "file", "sqlite":
		files = append(files, v.GetString("teams.path"))
	}
	return files
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
