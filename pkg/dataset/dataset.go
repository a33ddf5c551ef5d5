package dataset

import (
	"time"

	"github.com/Q07K/event-calplot/pkg/grid"
)

// Dataset is a stored observation series with optional highlighted event
// dates. Uid is the public identifier; Id is internal to the database.
type Dataset struct {
	Id           int
	Uid          string
	Name         string
	CreatedAt    time.Time
	Observations []grid.Observation
	EventDates   []time.Time
}
