package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventregistration/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (name, email, event_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, a.Name, a.Email, a.EventID).Scan(&a.ID)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicateRegistration
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	default:
		return err
	}
}

func (r *attendeeRepository) GetByEventAndEmail(ctx context.Context, eventID int64, email string) (*domain.Attendee, error) {
	query := `
		SELECT id, name, email, event_id
		FROM attendees
		WHERE event_id = $1 AND email = $2
	`
	a := &domain.Attendee{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, email).
		Scan(&a.ID, &a.Name, &a.Email, &a.EventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID int64, offset, limit int) ([]*domain.Attendee, error) {
	query := `
		SELECT id, name, email, event_id
		FROM attendees
		WHERE event_id = $1
		ORDER BY id ASC
		OFFSET $2 LIMIT $3
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*domain.Attendee
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.EventID); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}
