package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adcflow/adcflow/pkg/conftree"
	"github.com/adcflow/adcflow/pkg/engine"
)

func newGetCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Read a virtual service's current configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, version)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			root := engine.DefaultRootPath
			if app.settings.RootPath != "" {
				root = conftree.Path(app.settings.RootPath)
			}
			path := root.Child(args[0])

			snap, err := app.client.Read(ctx, path)
			if err != nil {
				return err
			}
			if !snap.Exists {
				return fmt.Errorf("virtual service %q not found", args[0])
			}

			if jsonOutput {
				out, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("%s\n%s\n", snap.Path, string(snap.Value))
			return nil
		},
	}

	return cmd
}
