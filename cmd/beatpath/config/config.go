// Package configcmder provides the config command for managing persistent
// beatpath configuration stored in the .beatpath/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/beatpath/pkg/cliui"
	"github.com/papercomputeco/beatpath/pkg/config"
)

const configLongDesc string = `Manage persistent beatpath configuration.

Configuration is stored as config.toml in the .beatpath/ directory and provides
default values for command flags. CLI flags and BEATPATH_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  server.listen,
  graph.source, graph.path, graph.watch,
  teams.source, teams.path, teams.dsn,
  neo4j.uri, neo4j.username, neo4j.password, neo4j.database,
  llm.provider, llm.api_key, llm.model, llm.rate, llm.burst,
  cache.provider, cache.redis_addr, cache.ttl,
  events.provider, events.brokers, events.topic, events.workers,
  client.api_target, client.timeout,
  mcp.enabled, metrics.enabled

Use subcommands to get, set, or list configuration values:
  beatpath config set <key> <value>    Set a configuration value
  beatpath config get <key>            Get a configuration value
  beatpath config list                 List all configuration values

Examples:
  beatpath config set graph.path data/2025.gexf
  beatpath config set llm.provider none
  beatpath config get client.api_target
  beatpath config list`

const configShortDesc string = "Manage persistent beatpath configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func validateKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func printTarget(w io.Writer, target string) {
	if target != "" {
		fmt.Fprintf(w, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
		return
	}
	fmt.Fprintf(w, "\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
}

// display masks secret keys.
func display(key, value string) string {
	if config.IsSecretKey(key) {
		return cliui.Mask(value)
	}
	return value
}
