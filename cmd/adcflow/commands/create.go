package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adcflow/adcflow/pkg/config"
)

func newCreateCommand(version string) *cobra.Command {
	var definitionFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a virtual service if it does not already exist",
		Long: `Create a virtual service from a definition file.

The target must not already exist on the device: the command reads the
service's identity path first and refuses to touch an existing service.
On confirmed absence the definition is applied in phase order.`,
		Example: `  # Create a virtual service
  adcflow create --file svc1.yaml

  # Machine-readable confirmation
  adcflow create --file svc1.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, version)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			desired, err := config.LoadService(definitionFile)
			if err != nil {
				return err
			}

			confirmation, err := app.orchestrator.CreateIfAbsent(ctx, desired)
			if err != nil {
				return err
			}

			if jsonOutput {
				out, err := json.MarshalIndent(confirmation, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("Created %s at %s (run %s, %s)\n",
				confirmation.Name, confirmation.Path, confirmation.RunID, confirmation.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&definitionFile, "file", "f", "", "virtual-service definition file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
