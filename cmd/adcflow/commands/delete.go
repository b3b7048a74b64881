package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a virtual service if it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, version)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			deleted, err := app.orchestrator.DeleteIfPresent(ctx, args[0])
			if err != nil {
				return err
			}

			if deleted {
				fmt.Printf("Deleted %s\n", args[0])
			} else {
				fmt.Printf("%s does not exist, nothing to delete\n", args[0])
			}
			return nil
		},
	}

	return cmd
}
