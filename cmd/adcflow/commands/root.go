package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	settingsPath string
	jsonOutput   bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "adcflow",
		Short: "adcflow - declarative virtual-service configuration for ADC devices",
		Long: `adcflow applies declarative virtual-service definitions to a
tree-structured ADC configuration API.

A definition is a YAML mapping that mirrors the device's configuration
tree. adcflow schedules the individual writes in dependency order: the
node is named first, disabled early, its attributes and child nodes are
applied next, and it is administratively enabled only once everything
else is in place.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "s", "adcflow.yaml", "settings file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newCreateCommand(version))
	rootCmd.AddCommand(newApplyCommand(version))
	rootCmd.AddCommand(newGetCommand(version))
	rootCmd.AddCommand(newDeleteCommand(version))
	rootCmd.AddCommand(newRunsCommand(version))
	rootCmd.AddCommand(newWatchCommand(version))

	return rootCmd
}
