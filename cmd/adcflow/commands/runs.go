package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newRunsCommand(version string) *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded apply runs",
		Long: `List apply runs from the local run-history store, most recent
first. With --id, show the individual writes of one run instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, version)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			if app.store == nil {
				return fmt.Errorf("run history is disabled: no store path configured")
			}

			if runID != "" {
				writes, err := app.store.ListWritesByRun(ctx, runID)
				if err != nil {
					return err
				}
				if jsonOutput {
					out, err := json.MarshalIndent(writes, "", "  ")
					if err != nil {
						return err
					}
					fmt.Println(string(out))
					return nil
				}
				for _, w := range writes {
					fmt.Printf("%-8s %-10s %-20s %s (%dms)\n",
						w.Phase, w.Status, w.Field, w.Path, w.DurationMS)
				}
				return nil
			}

			runs, err := app.store.ListRuns(ctx, limit, 0)
			if err != nil {
				return err
			}
			if jsonOutput {
				out, err := json.MarshalIndent(runs, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%s  %-10s %-20s %s\n",
					r.StartedAt.Format("2006-01-02 15:04:05"), r.Status, r.Target, r.ID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&runID, "id", "", "show the writes of one run")

	return cmd
}
