package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Q07K/event-calplot/pkg/grid"
	log "github.com/sirupsen/logrus"
)

var ErrDatasetNotFound = errors.New("dataset not found")

type Repository interface {
	Store(ctx context.Context, dataset Dataset) (int, error)
	FindByUid(ctx context.Context, uid string) (*Dataset, error)
	FindAll(ctx context.Context) ([]Dataset, error)
	DeleteByUid(ctx context.Context, uid string) error
	ReplaceEventDates(ctx context.Context, uid string, dates []time.Time) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// Store inserts the dataset with all its observations and event dates in a
// single transaction and returns the generated id.
func (r *RepositoryImpl) Store(ctx context.Context, dataset Dataset) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	defer tx.Rollback()

	var datasetId int
	err = tx.QueryRowContext(ctx,
		"INSERT INTO dataset (uid, name, created_at) VALUES ($1, $2, $3) RETURNING id",
		dataset.Uid, dataset.Name, dataset.CreatedAt.Unix(),
	).Scan(&datasetId)
	if err != nil {
		err := fmt.Errorf("could not insert dataset: %w", err)
		log.Error(err)
		return 0, err
	}

	for _, obs := range dataset.Observations {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO observation (dataset_id, date, value) VALUES ($1, $2, $3)",
			datasetId, obs.Date.Format("2006-01-02"), obs.Value,
		)
		if err != nil {
			err := fmt.Errorf("could not insert observation: %w", err)
			log.Error(err)
			return 0, err
		}
	}

	for _, date := range dataset.EventDates {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO dataset_event (dataset_id, date) VALUES ($1, $2)",
			datasetId, date.Format("2006-01-02"),
		)
		if err != nil {
			err := fmt.Errorf("could not insert event date: %w", err)
			log.Error(err)
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	return datasetId, nil
}

func (r *RepositoryImpl) FindByUid(ctx context.Context, uid string) (*Dataset, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, uid, name, created_at FROM dataset WHERE uid = $1", uid)

	var dataset Dataset
	var createdAtUnix int64
	if err := row.Scan(&dataset.Id, &dataset.Uid, &dataset.Name, &createdAtUnix); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDatasetNotFound
		}
		err := fmt.Errorf("failed to find dataset %s: %w", uid, err)
		log.Error(err)
		return nil, err
	}
	dataset.CreatedAt = time.Unix(createdAtUnix, 0).UTC()

	observations, err := r.findObservations(ctx, dataset.Id)
	if err != nil {
		return nil, err
	}
	dataset.Observations = observations

	eventDates, err := r.findEventDates(ctx, dataset.Id)
	if err != nil {
		return nil, err
	}
	dataset.EventDates = eventDates

	return &dataset, nil
}

// FindAll lists dataset metadata only; observations are not loaded.
func (r *RepositoryImpl) FindAll(ctx context.Context) ([]Dataset, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, uid, name, created_at FROM dataset ORDER BY created_at")
	if err != nil {
		err := fmt.Errorf("failed to list datasets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		var dataset Dataset
		var createdAtUnix int64
		if err := rows.Scan(&dataset.Id, &dataset.Uid, &dataset.Name, &createdAtUnix); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		dataset.CreatedAt = time.Unix(createdAtUnix, 0).UTC()
		datasets = append(datasets, dataset)
	}
	return datasets, rows.Err()
}

func (r *RepositoryImpl) DeleteByUid(ctx context.Context, uid string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM dataset WHERE uid = $1", uid)
	if err != nil {
		err := fmt.Errorf("could not delete dataset %s: %w", uid, err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrDatasetNotFound
	}
	return nil
}

// ReplaceEventDates swaps the dataset's event dates for the given set.
func (r *RepositoryImpl) ReplaceEventDates(ctx context.Context, uid string, dates []time.Time) error {
	dataset, err := r.FindByUid(ctx, uid)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM dataset_event WHERE dataset_id = $1", dataset.Id); err != nil {
		err := fmt.Errorf("could not clear event dates: %w", err)
		log.Error(err)
		return err
	}
	for _, date := range dates {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO dataset_event (dataset_id, date) VALUES ($1, $2)",
			dataset.Id, date.Format("2006-01-02"),
		); err != nil {
			err := fmt.Errorf("could not insert event date: %w", err)
			log.Error(err)
			return err
		}
	}

	return tx.Commit()
}

func (r *RepositoryImpl) findObservations(ctx context.Context, datasetId int) ([]grid.Observation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT date, value FROM observation WHERE dataset_id = $1 ORDER BY date", datasetId)
	if err != nil {
		err := fmt.Errorf("failed to load observations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var observations []grid.Observation
	for rows.Next() {
		var dateString string
		var obs grid.Observation
		if err := rows.Scan(&dateString, &obs.Value); err != nil {
			return nil, fmt.Errorf("failed to scan observation row: %w", err)
		}
		obs.Date, err = time.Parse("2006-01-02", dateString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", dateString, err)
		}
		observations = append(observations, obs)
	}
	return observations, rows.Err()
}

func (r *RepositoryImpl) findEventDates(ctx context.Context, datasetId int) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT date FROM dataset_event WHERE dataset_id = $1 ORDER BY date", datasetId)
	if err != nil {
		err := fmt.Errorf("failed to load event dates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var dateString string
		if err := rows.Scan(&dateString); err != nil {
			return nil, fmt.Errorf("failed to scan event date row: %w", err)
		}
		date, err := time.Parse("2006-01-02", dateString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", dateString, err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}
