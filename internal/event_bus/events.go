package event_bus

import "time"

const (
	DatasetCreatedType     EventType = "dataset.created"
	DatasetDeletedType     EventType = "dataset.deleted"
	EventDatesReplacedType EventType = "dataset.events.replaced"
)

type DatasetCreated struct {
	Uid          string
	Name         string
	Observations int
}

type DatasetDeleted struct {
	Uid string
}

type EventDatesReplaced struct {
	Uid    string
	Dates  []time.Time
	Source string // "api" or "google"
}
