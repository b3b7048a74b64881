package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/adcflow/adcflow/pkg/config"
	"github.com/adcflow/adcflow/pkg/conftree"
	"github.com/adcflow/adcflow/pkg/engine"
)

func newWatchCommand(version string) *cobra.Command {
	var (
		definitionFile string
		basePath       string
		debounce       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-apply a definition file whenever it changes",
		Long: `Watch a definition file and re-apply it on every change.

Editors often replace files instead of writing in place, so the parent
directory is watched and events are filtered to the definition file.
Rapid successive events are coalesced within the debounce window.`,
		Example: `  # Keep a service in sync with its definition
  adcflow watch --file svc1.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, version)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			abs, err := filepath.Abs(definitionFile)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", definitionFile, err)
			}

			base := conftree.Path(basePath)
			if base == "" {
				base = engine.DefaultRootPath
				if root := app.settings.RootPath; root != "" {
					base = conftree.Path(root)
				}
			}

			applyOnce := func() {
				desired, err := config.LoadService(abs)
				if err != nil {
					app.tel.Logger.WithError(err).Error("failed to load definition")
					return
				}
				if err := app.scheduler.Apply(ctx, base, desired); err != nil {
					app.tel.Logger.WithError(err).Error("apply failed")
					return
				}
				app.tel.Logger.WithField("file", abs).Info("definition applied")
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(filepath.Dir(abs)); err != nil {
				return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
			}

			applyOnce()
			app.tel.Logger.WithField("file", abs).Info("watching definition")

			var timer *time.Timer
			pending := make(chan struct{}, 1)

			for {
				select {
				case <-ctx.Done():
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != abs {
						continue
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
						continue
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(debounce, func() {
						select {
						case pending <- struct{}{}:
						default:
						}
					})

				case <-pending:
					applyOnce()

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					app.tel.Logger.WithError(err).Warn("watch error")
				}
			}
		},
	}

	cmd.Flags().StringVarP(&definitionFile, "file", "f", "", "definition file to watch")
	cmd.Flags().StringVarP(&basePath, "path", "p", "", "base configuration path (default: virtual-server root)")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "delay before re-applying after a change")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
