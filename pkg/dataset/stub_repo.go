package dataset

import (
	"context"
	"time"
)

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	datasets []Dataset
	nextId   int
}

func (s *StubRepository) Store(_ context.Context, dataset Dataset) (int, error) {
	s.nextId++
	dataset.Id = s.nextId
	s.datasets = append(s.datasets, dataset)
	return dataset.Id, nil
}

func (s *StubRepository) FindByUid(_ context.Context, uid string) (*Dataset, error) {
	for _, dataset := range s.datasets {
		if dataset.Uid == uid {
			found := dataset
			return &found, nil
		}
	}
	return nil, ErrDatasetNotFound
}

func (s *StubRepository) FindAll(_ context.Context) ([]Dataset, error) {
	return append([]Dataset(nil), s.datasets...), nil
}

func (s *StubRepository) DeleteByUid(_ context.Context, uid string) error {
	for i, dataset := range s.datasets {
		if dataset.Uid == uid {
			s.datasets = append(s.datasets[:i], s.datasets[i+1:]...)
			return nil
		}
	}
	return ErrDatasetNotFound
}

func (s *StubRepository) ReplaceEventDates(_ context.Context, uid string, dates []time.Time) error {
	for i := range s.datasets {
		if s.datasets[i].Uid == uid {
			s.datasets[i].EventDates = append([]time.Time(nil), dates...)
			return nil
		}
	}
	return ErrDatasetNotFound
}
