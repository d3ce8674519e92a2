// Package findcmder provides the find command: an interactive chain of
// victories lookup against a running beatpath server, with a plain output
// mode for scripts and pipes.
package findcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/beatpath/pkg/cliui"
	"github.com/papercomputeco/beatpath/pkg/client"
	"github.com/papercomputeco/beatpath/pkg/config"
	"github.com/papercomputeco/beatpath/pkg/logger"
	"github.com/papercomputeco/beatpath/pkg/result"
)

// errLookupFailed is returned in plain mode when the lookup ends in an error
// status. The status line has already been printed.
var errLookupFailed = errors.New("lookup failed")

type findCommander struct {
	apiTarget string
	timeout   string
	plain     bool
	noColor   bool
	debug     bool
}

const findLongDesc string = `Find the shortest chain of victories from one team to another.

When run in a terminal, find opens an interactive form: type two teams,
press enter to search, ctrl+s to swap them. With both teams given as
arguments the search starts right away.

With --plain, or when stdout is not a terminal, find performs a single
lookup for the two arguments and prints the result. The exit status is
non-zero when no chain or explanation could be shown.

Examples:
  beatpath find
  beatpath find Alabama Vanderbilt
  beatpath find "Ohio State" Michigan --plain
  beatpath find Tufts Alabama --api-target http://localhost:5000`

const findShortDesc string = "Find a chain of victories"

func NewFindCmd() *cobra.Command {
	cmder := &findCommander{}

	cmd := &cobra.Command{
		Use:   "find [from] [to]",
		Short: findShortDesc,
		Long:  findLongDesc,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 || len(args) > 2 {
				return fmt.Errorf("expected zero or two team names, got %d", len(args))
			}
			return nil
		},
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
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")

			var from, to string
			if len(args) == 2 {
				from, to = args[0], args[1]
			}

			err := cmder.run(cmd.Context(), cmd.OutOrStdout(), from, to)
			if errors.Is(err, errLookupFailed) {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	config.AddStringFlag(cmd, config.Registry, config.FlagAPITarget, &cmder.apiTarget)
	config.AddStringFlag(cmd, config.Registry, config.FlagTimeout, &cmder.timeout)
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Print a single result instead of the interactive form")
	cmd.Flags().BoolVar(&cmder.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (c *findCommander) run(ctx context.Context, w io.Writer, from, to string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if c.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	timeout, err := time.ParseDuration(c.timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.timeout, err)
	}

	cl, err := client.New(c.apiTarget, timeout)
	if err != nil {
		return err
	}

	if c.plain || !isTerminal(os.Stdout) {
		log := logger.New(
			logger.WithDebug(c.debug),
			logger.WithPretty(true),
			logger.WithWriter(os.Stderr),
			logger.WithComponent("find"),
		)
		return runPlain(ctx, w, cl, log, from, to, isTerminal(os.Stderr))
	}

	// Log lines would tear the full-screen form.
	return runFindTUI(ctx, cl, logger.Nop(), from, to)
}

// runPlain performs one lookup and prints the status line and rows. spin
// shows a progress indicator on stderr while the request runs.
func runPlain(ctx context.Context, w io.Writer, transport result.Transport, log *slog.Logger, from, to string, spin bool) error {
	if from == "" || to == "" {
		return errors.New("two team names are required when not running interactively")
	}

	view := newFindView(from, to)
	ctrl, err := result.NewController(view.elements(), transport, log)
	if err != nil {
		return err
	}

	lookup := func() error {
		ctrl.Submit(ctx)
		if ctrl.State() == result.StateShowingError {
			return errLookupFailed
		}
		return nil
	}

	if spin {
		err = cliui.Step(os.Stderr, "Searching for a path", lookup)
	} else {
		err = lookup()
	}

	if view.hasStatus {
		fmt.Fprintln(w, toneStyle(view.status.Tone).Render(view.status.Message))
	}
	if panel := view.renderPanel(); panel != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, panel)
	}

	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
