package app

import (
	"database/sql"

	"github.com/Q07K/event-calplot/internal/config"
	"github.com/Q07K/event-calplot/internal/event_bus"
	"github.com/Q07K/event-calplot/pkg/dataset"
	"github.com/Q07K/event-calplot/pkg/gcal"
	"github.com/Q07K/event-calplot/pkg/heatmap"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	DatasetRepo    dataset.Repository
	DatasetService dataset.Service
	DatasetHandler *dataset.Handler

	HeatmapHandler *heatmap.Handler

	GoogleAuth    *gcal.GoogleAuth
	GcalService   gcal.Service
	GcalHandler   *gcal.Handler
	ImportHandler *gcal.ImportHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	subscribeAuditLog(deps.Bus)

	deps.DatasetRepo = dataset.NewRepository(db)
	deps.DatasetService = dataset.NewService(deps.DatasetRepo, deps.Bus)
	deps.DatasetHandler = dataset.NewHandler(deps.DatasetService, cfg.Heatmap)

	deps.HeatmapHandler = heatmap.NewHandler(cfg.Heatmap)

	deps.GoogleAuth = gcal.NewGoogleAuth(db, cfg)
	deps.GcalService = gcal.NewService(deps.GoogleAuth)
	deps.GcalHandler = gcal.NewHandler(deps.GcalService)
	deps.ImportHandler = gcal.NewImportHandler(deps.GcalService, deps.DatasetService)

	return deps
}

// subscribeAuditLog logs dataset lifecycle events published on the bus.
func subscribeAuditLog(bus *event_bus.EventBus) {
	bus.Subscribe(event_bus.DatasetCreatedType, func(e event_bus.Event) error {
		if created, ok := e.Data.(event_bus.DatasetCreated); ok {
			log.Infof("dataset created: %s (%q, %d observations)", created.Uid, created.Name, created.Observations)
		}
		return nil
	})
	bus.Subscribe(event_bus.DatasetDeletedType, func(e event_bus.Event) error {
		if deleted, ok := e.Data.(event_bus.DatasetDeleted); ok {
			log.Infof("dataset deleted: %s", deleted.Uid)
		}
		return nil
	})
	bus.Subscribe(event_bus.EventDatesReplacedType, func(e event_bus.Event) error {
		if replaced, ok := e.Data.(event_bus.EventDatesReplaced); ok {
			log.Infof("event dates replaced on dataset %s: %d dates from %s", replaced.Uid, len(replaced.Dates), replaced.Source)
		}
		return nil
	})
}
