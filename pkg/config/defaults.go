package config

const (
	defaultListen = ":5000"

	defaultGraphSource = "gexf"
	defaultGraphPath   = "data/graph.gexf"

	defaultTeamsSource = "file"
	defaultTeamsPath   = "data/teams.yaml"

	defaultNeo4jURI      = "neo4j://localhost:7687"
	defaultNeo4jUsername = "neo4j"

	defaultLLMProvider = "gemini"
	defaultLLMModel    = "gemini-2.5-flash-lite"
	defaultLLMRate     = 1.0
	defaultLLMBurst    = 5

	defaultCacheProvider = "memory"
	defaultRedisAddr     = "localhost:6379"
	defaultCacheTTL      = "24h"

	defaultEventsProvider = "nop"
	defaultEventsBrokers  = "localhost:9092"
	defaultEventsTopic    = "beatpath.searches"
	defaultEventsWorkers  = 3

	defaultClientAPITarget = "http://localhost:5000"
	defaultClientTimeout   = "30s"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Server: ServerConfig{
			Listen: defaultListen,
		},
		Graph: GraphConfig{
			Source: defaultGraphSource,
			Path:   defaultGraphPath,
		},
		Teams: TeamsConfig{
			Source: defaultTeamsSource,
			Path:   defaultTeamsPath,
		},
		Neo4j: Neo4jConfig{
			URI:      defaultNeo4jURI,
			Username: defaultNeo4jUsername,
		},
		LLM: LLMConfig{
			Provider: defaultLLMProvider,
			Model:    defaultLLMModel,
			Rate:     defaultLLMRate,
			Burst:    defaultLLMBurst,
		},
		Cache: CacheConfig{
			Provider:  defaultCacheProvider,
			RedisAddr: defaultRedisAddr,
			TTL:       defaultCacheTTL,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Brokers:  defaultEventsBrokers,
			Topic:    defaultEventsTopic,
			Workers:  defaultEventsWorkers,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
			Timeout:   defaultClientTimeout,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
