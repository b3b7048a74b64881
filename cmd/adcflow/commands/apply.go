package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adcflow/adcflow/pkg/config"
	"github.com/adcflow/adcflow/pkg/conftree"
	"github.com/adcflow/adcflow/pkg/engine"
)

func newApplyCommand(version string) *cobra.Command {
	var (
		definitionFile string
		basePath       string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a definition without an existence precondition",
		Long: `Apply a definition file against a base path in the configuration
tree, creating or updating the addressed node.

Unlike create, apply does not check whether the target exists: it
schedules the writes unconditionally. Use it to push attribute changes
to a service that is already configured.`,
		Example: `  # Update a service in place
  adcflow apply --file svc1.yaml

  # Apply a fragment against an explicit subtree
  adcflow apply --file http.yaml --path config/slb/virtualServers/svc1/serviceHttp`,
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

			base := conftree.Path(basePath)
			if base == "" {
				base = engine.DefaultRootPath
				if root := app.settings.RootPath; root != "" {
					base = conftree.Path(root)
				}
			}

			if err := app.scheduler.Apply(ctx, base, desired); err != nil {
				return err
			}

			fmt.Printf("Applied %s against %s\n", definitionFile, base)
			return nil
		},
	}

	cmd.Flags().StringVarP(&definitionFile, "file", "f", "", "definition file to apply")
	cmd.Flags().StringVarP(&basePath, "path", "p", "", "base configuration path (default: virtual-server root)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
