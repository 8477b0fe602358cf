package domain

import (
	"context"
	"time"
)

// Event represents a scheduled activity with a capacity limit and a time window.
// StartTime and EndTime are stored in UTC.
// swagger:model Event
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	MaxCapacity int       `json:"max_capacity"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name, location string, startTime, endTime time.Time, maxCapacity int) *Event {
	return &Event{
		Name:        name,
		Location:    location,
		StartTime:   startTime,
		EndTime:     endTime,
		MaxCapacity: maxCapacity,
	}
}

// In returns a copy of the event with both timestamps expressed in loc.
// The instants are unchanged; only the display zone differs.
func (e *Event) In(loc *time.Location) *Event {
	out := *e
	out.StartTime = e.StartTime.In(loc)
	out.EndTime = e.EndTime.In(loc)
	return &out
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// GetByIDForUpdate reads the event and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id int64) (*Event, error)
	ListUpcoming(ctx context.Context, now time.Time, offset, limit int) ([]*Event, error)
	CountAttendees(ctx context.Context, eventID int64) (int, error)
}

// EventService defines the business logic for creating and reading events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListUpcomingEvents(ctx context.Context, offset, limit int) ([]*Event, error)
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	CountAttendees(ctx context.Context, eventID int64) (int, error)
}
