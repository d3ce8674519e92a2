// Package teamscmder provides the teams command for listing the teams a
// running beatpath server knows about.
package teamscmder

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/beatpath/pkg/cliui"
	"github.com/papercomputeco/beatpath/pkg/client"
	"github.com/papercomputeco/beatpath/pkg/config"
)

type teamsCommander struct {
	apiTarget string
	timeout   string
	filter    string
	quiet     bool
}

const teamsLongDesc string = `List the teams known to a running beatpath server.

Use --filter to show only names containing a substring (case-insensitive),
and --quiet to print bare names, one per line.

Examples:
  beatpath teams
  beatpath teams --filter state
  beatpath teams --quiet --api-target http://localhost:5000`

const teamsShortDesc string = "List known teams"

func NewTeamsCmd() *cobra.Command {
	cmder := &teamsCommander{}

	cmd := &cobra.Command{
		Use:   "teams",
		Short: teamsShortDesc,
		Long:  teamsLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed(config.Registry[config.FlagAPITarget].Name) {
				cmder.apiTarget = cfg.Client.APITarget
			}
			if !cmd.Flags().Changed(config.Registry[config.FlagTimeout].Name) {
				cmder.timeout = cfg.Client.Timeout
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	config.AddStringFlag(cmd, config.Registry, config.FlagAPITarget, &cmder.apiTarget)
	config.AddStringFlag(cmd, config.Registry, config.FlagTimeout, &cmder.timeout)
	cmd.Flags().StringVarP(&cmder.filter, "filter", "f", "", "Only show names containing this text")
	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Print bare names, one per line")

	return cmd
}

func (c *teamsCommander) run(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	timeout, err := time.ParseDuration(c.timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.timeout, err)
	}

	cl, err := client.New(c.apiTarget, timeout)
	if err != nil {
		return err
	}

	resp, err := cl.Teams(ctx)
	if err != nil {
		return err
	}

	names := filterNames(resp.Teams, c.filter)

	if c.quiet {
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
		return nil
	}

	if len(names) == 0 {
		fmt.Fprintln(w, cliui.DimStyle.Render("No teams found."))
		return nil
	}

	fmt.Fprintf(w, "\n  %s %s\n\n",
		cliui.KeyStyle.Render("Teams:"),
		cliui.DimStyle.Render(fmt.Sprintf("%d of %d", len(names), resp.Count)),
	)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", cliui.ValueStyle.Render(name))
	}
	fmt.Fprintln(w)

	return nil
}

func filterNames(names []string, filter string) []string {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return names
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), filter) {
			out = append(out, name)
		}
	}
	return out
}
