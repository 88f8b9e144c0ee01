// Package cli implements the aio-report command line: fetch SERP results, then analyze them offline.
package cli

import (
	"fmt"
	"io"
	"os"

	"AIOverview_Analysis/internal/app"
	"AIOverview_Analysis/internal/config"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// deps holds what the commands need from outside; tests replace it
type deps struct {
	loadConfig func() *config.Config
	build      func(*config.Config) (*app.Components, error)
	stdout     io.Writer
	stderr     io.Writer
}

func defaultDeps() *deps {
	return &deps{
		loadConfig: config.Load,
		build:      app.Build,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// Execute runs the root command
func Execute() error {
	return newRootCmd(defaultDeps()).Execute()
}

func newRootCmd(d *deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aio-report",
		Short: "AI Overview citation and mention analysis",
		Long: `aio-report fetches Google SERP results for a keyword list and measures how a
target brand is cited and mentioned inside AI Overviews compared with every
competitor that appears alongside it.

Typical flow:
  aio-report fetch -k "best crm" -k "crm pricing"
  aio-report analyze --brand HubSpot --domain hubspot.com`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(d.stdout)
	rootCmd.SetErr(d.stderr)

	rootCmd.AddCommand(
		newFetchCmd(d),
		newAnalyzeCmd(d),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "aio-report v%s\n", version)
			},
		},
	)

	return rootCmd
}
