package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --api-target
// on both "beatpath find" and "beatpath teams").
type Flag struct {
	// Name is the long flag name (e.g. "graph").
	Name string

	// Shorthand is the one-letter short flag (e.g. "g"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "graph.path").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag, AddBoolFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagListen        = "listen"
	FlagGraphSource   = "graph-source"
	FlagGraphPath     = "graph"
	FlagWatch         = "watch"
	FlagTeamsSource   = "teams-source"
	FlagTeamsPath     = "teams"
	FlagTeamsDSN      = "teams-dsn"
	FlagNeo4jURI      = "neo4j-uri"
	FlagLLMProvider   = "llm-provider"
	FlagLLMModel      = "llm-model"
	FlagCacheProvider = "cache-provider"
	FlagRedisAddr     = "redis-addr"
	FlagEventsProv    = "events-provider"
	FlagEventsBrokers = "events-brokers"
	FlagEventsTopic   = "events-topic"
	FlagEventsWorkers = "events-workers"
	FlagAPITarget     = "api-target"
	FlagTimeout       = "timeout"
)

// Registry holds the definitions shared by all beatpath commands.
var Registry = FlagSet{
	FlagListen:        {Name: "listen", Shorthand: "l", ViperKey: "server.listen", Description: "Address for the server to listen on"},
	FlagGraphSource:   {Name: "graph-source", ViperKey: "graph.source", Description: "Graph source (gexf, neo4j)"},
	FlagGraphPath:     {Name: "graph", Shorthand: "g", ViperKey: "graph.path", Description: "Path to the GEXF victory graph"},
	FlagWatch:         {Name: "watch", Shorthand: "w", ViperKey: "graph.watch", Description: "Reload data files when they change"},
	FlagTeamsSource:   {Name: "teams-source", ViperKey: "teams.source", Description: "Team directory source (file, sqlite, postgres, none)"},
	FlagTeamsPath:     {Name: "teams", Shorthand: "t", ViperKey: "teams.path", Description: "Path to the teams file or SQLite database"},
	FlagTeamsDSN:      {Name: "teams-dsn", ViperKey: "teams.dsn", Description: "PostgreSQL connection string for teams"},
	FlagNeo4jURI:      {Name: "neo4j-uri", ViperKey: "neo4j.uri", Description: "Neo4j connection URI"},
	FlagLLMProvider:   {Name: "llm-provider", ViperKey: "llm.provider", Description: "Explanation provider (gemini, none)"},
	FlagLLMModel:      {Name: "llm-model", ViperKey: "llm.model", Description: "Explanation model"},
	FlagCacheProvider: {Name: "cache-provider", ViperKey: "cache.provider", Description: "Explanation cache (memory, redis, none)"},
	FlagRedisAddr:     {Name: "redis-addr", ViperKey: "cache.redis_addr", Description: "Redis address for the explanation cache"},
	FlagEventsProv:    {Name: "events-provider", ViperKey: "events.provider", Description: "Search event publisher (nop, kafka)"},
	FlagEventsBrokers: {Name: "events-brokers", ViperKey: "events.brokers", Description: "Comma separated Kafka brokers"},
	FlagEventsTopic:   {Name: "events-topic", ViperKey: "events.topic", Description: "Kafka topic for search events"},
	FlagEventsWorkers: {Name: "events-workers", ViperKey: "events.workers", Description: "Number of event publishing workers"},
	FlagAPITarget:     {Name: "api-target", Shorthand: "a", ViperKey: "client.api_target", Description: "beatpath server URL"},
	FlagTimeout:       {Name: "timeout", ViperKey: "client.timeout", Description: "Request timeout (e.g. 30s)"},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

func defaultsViper() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	return defaultsViper().GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	return defaultsViper().GetUint(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	return defaultsViper().GetBool(viperKey)
}
