package commands

import (
	"context"
	"fmt"

	"github.com/adcflow/adcflow/pkg/config"
	"github.com/adcflow/adcflow/pkg/conftree"
	"github.com/adcflow/adcflow/pkg/engine"
	"github.com/adcflow/adcflow/pkg/stores"
	"github.com/adcflow/adcflow/pkg/telemetry"
	"github.com/adcflow/adcflow/pkg/transports/rest"
)

// app wires the collaborators every command needs: settings, telemetry,
// the device client, the optional run-history store, and the engine.
type app struct {
	settings     *config.Settings
	tel          *telemetry.Telemetry
	client       *rest.Client
	store        stores.Store
	scheduler    *engine.Scheduler
	orchestrator *engine.Orchestrator
}

func newApp(ctx context.Context, version string) (*app, error) {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.NewTelemetry(settings.TelemetryConfig(version))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	if err := tel.StartMetricsServer(); err != nil {
		return nil, fmt.Errorf("failed to start metrics server: %w", err)
	}

	client, err := rest.NewClient(&settings.Device, tel.Logger)
	if err != nil {
		return nil, err
	}

	var store stores.Store
	var recorder engine.RunRecorder
	if settings.Store.Path != "" {
		sqlStore, err := stores.NewSQLiteStore(stores.Config{Path: settings.Store.Path})
		if err != nil {
			return nil, err
		}
		if err := sqlStore.Init(ctx); err != nil {
			return nil, err
		}
		if err := sqlStore.Migrate(ctx); err != nil {
			_ = sqlStore.Close()
			return nil, err
		}
		store = sqlStore
		recorder = stores.NewRecorder(sqlStore)
	}

	scheduler := engine.NewScheduler(client, recorder, tel, settings.MaxParallel)
	orchestrator := engine.NewOrchestrator(client, scheduler, recorder, tel,
		conftree.Path(settings.RootPath))

	return &app{
		settings:     settings,
		tel:          tel,
		client:       client,
		store:        store,
		scheduler:    scheduler,
		orchestrator: orchestrator,
	}, nil
}

// close releases the app's resources. Safe to call once, always.
func (a *app) close(ctx context.Context) {
	_ = a.client.Close(ctx)
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = a.tel.Shutdown(ctx)
}
