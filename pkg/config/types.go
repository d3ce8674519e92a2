package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config represents the persistent beatpath configuration stored as
// config.toml in the .beatpath/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Server  ServerConfig  `toml:"server"`
	Graph   GraphConfig   `toml:"graph"`
	Teams   TeamsConfig   `toml:"teams"`
	Neo4j   Neo4jConfig   `toml:"neo4j"`
	LLM     LLMConfig     `toml:"llm"`
	Cache   CacheConfig   `toml:"cache"`
	Events  EventsConfig  `toml:"events"`
	Client  ClientConfig  `toml:"client"`
	MCP     MCPConfig     `toml:"mcp"`
	Metrics MetricsConfig `toml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// GraphConfig selects where the victory graph is loaded from.
// Source is "gexf" or "neo4j".
type GraphConfig struct {
	Source string `toml:"source,omitempty"`
	Path   string `toml:"path,omitempty"`
	Watch  bool   `toml:"watch"`
}

// TeamsConfig selects where team logos and details are loaded from.
// Source is "file", "sqlite", "postgres" or "none".
type TeamsConfig struct {
	Source string `toml:"source,omitempty"`
	Path   string `toml:"path,omitempty"`
	DSN    string `toml:"dsn,omitempty"`
}

// Neo4jConfig holds connection settings for the neo4j graph source.
type Neo4jConfig struct {
	URI      string `toml:"uri,omitempty"`
	Username string `toml:"username,omitempty"`
	Password string `toml:"password,omitempty"`
	Database string `toml:"database,omitempty"`
}

// LLMConfig holds settings for generated explanations when no chain exists.
// Provider "none" turns the fallback off.
type LLMConfig struct {
	Provider string  `toml:"provider,omitempty"`
	APIKey   string  `toml:"api_key,omitempty"`
	Model    string  `toml:"model,omitempty"`
	Rate     float64 `toml:"rate,omitempty"`
	Burst    int     `toml:"burst,omitempty"`
}

// CacheConfig holds explanation cache settings.
// Provider is "memory", "redis" or "none".
type CacheConfig struct {
	Provider  string `toml:"provider,omitempty"`
	RedisAddr string `toml:"redis_addr,omitempty"`
	TTL       string `toml:"ttl,omitempty"`
}

// EventsConfig holds search event publishing settings.
// Provider is "nop" or "kafka"; Brokers is a comma separated list.
type EventsConfig struct {
	Provider string `toml:"provider,omitempty"`
	Brokers  string `toml:"brokers,omitempty"`
	Topic    string `toml:"topic,omitempty"`
	Workers  uint   `toml:"workers,omitempty"`
}

// ClientConfig holds settings for CLI commands that talk to a running server
// (beatpath find, beatpath teams). APITarget is a full URL.
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
	Timeout   string `toml:"timeout,omitempty"`
}

// MCPConfig toggles the MCP endpoint.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func durationKey(name string, field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = v
			return nil
		},
	}
}

func boolKey(name string, field func(c *Config) *bool) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = b
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"server.listen": stringKey(func(c *Config) *string { return &c.Server.Listen }),

	"graph.source": stringKey(func(c *Config) *string { return &c.Graph.Source }),
	"graph.path":   stringKey(func(c *Config) *string { return &c.Graph.Path }),
	"graph.watch":  boolKey("graph.watch", func(c *Config) *bool { return &c.Graph.Watch }),

	"teams.source": stringKey(func(c *Config) *string { return &c.Teams.Source }),
	"teams.path":   stringKey(func(c *Config) *string { return &c.Teams.Path }),
	"teams.dsn":    stringKey(func(c *Config) *string { return &c.Teams.DSN }),

	"neo4j.uri":      stringKey(func(c *Config) *string { return &c.Neo4j.URI }),
	"neo4j.username": stringKey(func(c *Config) *string { return &c.Neo4j.Username }),
	"neo4j.password": stringKey(func(c *Config) *string { return &c.Neo4j.Password }),
	"neo4j.database": stringKey(func(c *Config) *string { return &c.Neo4j.Database }),

	"llm.provider": stringKey(func(c *Config) *string { return &c.LLM.Provider }),
	"llm.api_key":  stringKey(func(c *Config) *string { return &c.LLM.APIKey }),
	"llm.model":    stringKey(func(c *Config) *string { return &c.LLM.Model }),
	"llm.rate": {
		get: func(c *Config) string {
			if c.LLM.Rate == 0 {
				return ""
			}
			return strconv.FormatFloat(c.LLM.Rate, 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid value for llm.rate: %q", v)
			}
			c.LLM.Rate = f
			return nil
		},
	},
	"llm.burst": {
		get: func(c *Config) string {
			if c.LLM.Burst == 0 {
				return ""
			}
			return strconv.Itoa(c.LLM.Burst)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid value for llm.burst: %q", v)
			}
			c.LLM.Burst = n
			return nil
		},
	},

	"cache.provider":   stringKey(func(c *Config) *string { return &c.Cache.Provider }),
	"cache.redis_addr": stringKey(func(c *Config) *string { return &c.Cache.RedisAddr }),
	"cache.ttl":        durationKey("cache.ttl", func(c *Config) *string { return &c.Cache.TTL }),

	"events.provider": stringKey(func(c *Config) *string { return &c.Events.Provider }),
	"events.brokers":  stringKey(func(c *Config) *string { return &c.Events.Brokers }),
	"events.topic":    stringKey(func(c *Config) *string { return &c.Events.Topic }),
	"events.workers": {
		get: func(c *Config) string {
			if c.Events.Workers == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Events.Workers), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for events.workers: %w", err)
			}
			c.Events.Workers = uint(n)
			return nil
		},
	},

	"client.api_target": stringKey(func(c *Config) *string { return &c.Client.APITarget }),
	"client.timeout":    durationKey("client.timeout", func(c *Config) *string { return &c.Client.Timeout }),

	"mcp.enabled":     boolKey("mcp.enabled", func(c *Config) *bool { return &c.MCP.Enabled }),
	"metrics.enabled": boolKey("metrics.enabled", func(c *Config) *bool { return &c.Metrics.Enabled }),
}
