package domain

import (
	"context"
)

// Attendee represents a person registered for exactly one event, identified
// within that event by email.
// swagger:model Attendee
type Attendee struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	EventID int64  `json:"event_id"`
}

// NewAttendee creates a new Attendee. ID is set by the repository on create.
func NewAttendee(eventID int64, name, email string) *Attendee {
	return &Attendee{
		Name:    name,
		Email:   email,
		EventID: eventID,
	}
}

// AttendeePage is one page of an event's attendee list.
// swagger:model AttendeePage
type AttendeePage struct {
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
	Pages int         `json:"pages"`
	Items []*Attendee `json:"items"`
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	// Create inserts the attendee. It returns ErrDuplicateRegistration when the
	// (event_id, email) pair already exists and ErrNotFound when the event does not.
	Create(ctx context.Context, attendee *Attendee) error
	GetByEventAndEmail(ctx context.Context, eventID int64, email string) (*Attendee, error)
	// ListByEventID returns attendees ordered by id ascending.
	ListByEventID(ctx context.Context, eventID int64, offset, limit int) ([]*Attendee, error)
}

// TxManager runs fn inside a single storage transaction. The context passed to
// fn carries the transaction; repositories called with it join the transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AttendeeService defines attendee-facing operations: registration and listing.
type AttendeeService interface {
	RegisterAttendee(ctx context.Context, eventID int64, name, email string) (*Attendee, error)
	ListAttendees(ctx context.Context, eventID int64, page, pageSize int) (*AttendeePage, error)
}
