// Package initcmder provides the init command for initializing a local
// .beatpath directory in the current working directory.
package initcmder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/beatpath/pkg/cliui"
	"github.com/papercomputeco/beatpath/pkg/config"
	"github.com/papercomputeco/beatpath/pkg/dotdir"
)

const configFile = "config.toml"

const initLongDesc string = `Initialize a new .beatpath/ directory in the current working directory.

Creates a local .beatpath/ directory that takes precedence over the default
~/.beatpath/ directory, and writes a config.toml with default values.
An existing config.toml is kept unless --preset is given.

Presets:
  local      GEXF and YAML files from ./data, reloaded when they change
  neo4j      Graph from Neo4j, teams from PostgreSQL, Redis cache, Kafka events
  offline    No generated explanations, no MCP or metrics endpoints

--preset also accepts an http(s) URL to a config.toml.

Examples:
  beatpath init
  beatpath init --preset neo4j
  beatpath init --preset https://example.com/beatpath/config.toml`

const initShortDesc string = "Initialize a local .beatpath/ directory"

type initCommander struct {
	preset string
}

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "", "Preset name ("+strings.Join(config.ValidPresetNames(), ", ")+") or URL to a config.toml")

	return cmd
}

func (c *initCommander) run(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir, created, err := dotdir.NewManager().Init(cwd)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "  %s Initialized .beatpath directory: %s\n", cliui.SuccessMark, dir)
	} else {
		fmt.Fprintf(w, "  %s Already initialized: %s\n", cliui.SuccessMark, dir)
	}

	path := filepath.Join(dir, configFile)
	if c.preset == "" {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	data, err := c.configBytes(ctx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "  %s Wrote %s\n", cliui.SuccessMark, cliui.DimStyle.Render(path))
	return nil
}

// configBytes returns the TOML to write: a remote file, a named preset, or
// the defaults.
func (c *initCommander) configBytes(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(c.preset, "http://") || strings.HasPrefix(c.preset, "https://") {
		return fetchRemoteConfig(ctx, c.preset)
	}

	cfg := config.NewDefaultConfig()
	if c.preset != "" {
		var err error
		cfg, err = config.PresetConfig(c.preset)
		if err != nil {
			return nil, err
		}
	}

	return config.EncodeConfig(cfg)
}

func fetchRemoteConfig(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching remote config: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}

	if _, err := config.ParseConfigTOML(data); err != nil {
		return nil, fmt.Errorf("parsing remote config: %w", err)
	}

	return data, nil
}
