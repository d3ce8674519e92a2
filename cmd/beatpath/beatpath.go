// Package beatpathcmder
package beatpathcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/beatpath/cmd/beatpath/config"
	findcmder "github.com/papercomputeco/beatpath/cmd/beatpath/find"
	initcmder "github.com/papercomputeco/beatpath/cmd/beatpath/init"
	servecmder "github.com/papercomputeco/beatpath/cmd/beatpath/serve"
	teamscmder "github.com/papercomputeco/beatpath/cmd/beatpath/teams"
	versioncmder "github.com/papercomputeco/beatpath/cmd/version"
)

const beatpathLongDesc string = `beatpath finds the shortest chain of victories between two college
football teams: A beat B, B beat C, so A "beat" C.

Run the server and query it:
  beatpath serve                    Run the API server and web page
  beatpath find Alabama Vanderbilt  Find a chain of victories
  beatpath teams                    List known teams`

const beatpathShortDesc string = "beatpath - Chains of Victories"

func NewBeatpathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beatpath",
		Short: beatpathShortDesc,
		Long:  beatpathLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to the .beatpath/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(findcmder.NewFindCmd())
	cmd.AddCommand(teamscmder.NewTeamsCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
