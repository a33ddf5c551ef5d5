package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/Q07K/event-calplot/internal/event_bus"
	"github.com/Q07K/event-calplot/internal/utils"
	"github.com/Q07K/event-calplot/pkg/grid"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, name string, observations []grid.Observation, eventDates []time.Time) (Dataset, error)
	Get(ctx context.Context, uid string) (*Dataset, error)
	List(ctx context.Context) ([]Dataset, error)
	Delete(ctx context.Context, uid string) error
	ReplaceEventDates(ctx context.Context, uid string, dates []time.Time, source string) error
	Years(ctx context.Context, uid string) ([]int, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:  repo,
		bus:   bus,
		clock: utils.SystemClock{},
	}
}

func (s *ServiceImpl) Create(ctx context.Context, name string, observations []grid.Observation, eventDates []time.Time) (Dataset, error) {
	dataset := Dataset{
		Uid:          uuid.NewString(),
		Name:         name,
		CreatedAt:    s.clock.Now().Truncate(time.Second),
		Observations: normalizeObservations(observations),
		EventDates:   normalizeDates(eventDates),
	}

	id, err := s.repo.Store(ctx, dataset)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to store dataset: %w", err)
	}
	dataset.Id = id
	log.Infof("created dataset %s (%q) with %d observations", dataset.Uid, dataset.Name, len(dataset.Observations))

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.DatasetCreatedType, event_bus.DatasetCreated{
		Uid:          dataset.Uid,
		Name:         dataset.Name,
		Observations: len(dataset.Observations),
	})); err != nil {
		log.Warnf("failed to publish dataset created event: %v", err)
	}

	return dataset, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (*Dataset, error) {
	return s.repo.FindByUid(ctx, uid)
}

func (s *ServiceImpl) List(ctx context.Context) ([]Dataset, error) {
	return s.repo.FindAll(ctx)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) error {
	if err := s.repo.DeleteByUid(ctx, uid); err != nil {
		return err
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.DatasetDeletedType, event_bus.DatasetDeleted{Uid: uid})); err != nil {
		log.Warnf("failed to publish dataset deleted event: %v", err)
	}
	return nil
}

// ReplaceEventDates swaps the dataset's highlighted dates. Source records
// where the dates came from ("api" or "google") for the audit trail.
func (s *ServiceImpl) ReplaceEventDates(ctx context.Context, uid string, dates []time.Time, source string) error {
	normalized := normalizeDates(dates)
	if err := s.repo.ReplaceEventDates(ctx, uid, normalized); err != nil {
		return err
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.EventDatesReplacedType, event_bus.EventDatesReplaced{
		Uid:    uid,
		Dates:  normalized,
		Source: source,
	})); err != nil {
		log.Warnf("failed to publish event dates replaced event: %v", err)
	}
	return nil
}

// Years lists the calendar years renderable from the dataset's observations.
func (s *ServiceImpl) Years(ctx context.Context, uid string) ([]int, error) {
	dataset, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return nil, err
	}
	return grid.Years(grid.Preprocess(dataset.Observations)), nil
}

func normalizeObservations(observations []grid.Observation) []grid.Observation {
	normalized := make([]grid.Observation, len(observations))
	for i, obs := range observations {
		normalized[i] = grid.Observation{Date: grid.Normalize(obs.Date), Value: obs.Value}
	}
	return normalized
}

func normalizeDates(dates []time.Time) []time.Time {
	normalized := make([]time.Time, len(dates))
	for i, date := range dates {
		normalized[i] = grid.Normalize(date)
	}
	return normalized
}
