package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventregistration/internal/domain"
)

const eventColumns = `id, name, location, start_time, end_time, max_capacity`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, location, start_time, end_time, max_capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.Name, e.Location, e.StartTime.UTC(), e.EndTime.UTC(), e.MaxCapacity,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *eventRepository) getOne(ctx context.Context, query string, id int64) (*domain.Event, error) {
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, now time.Time, offset, limit int) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE end_time > $1
		ORDER BY start_time ASC, id ASC
		OFFSET $2 LIMIT $3
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, now.UTC(), offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) CountAttendees(ctx context.Context, eventID int64) (int, error) {
	query := `SELECT COUNT(*) FROM attendees WHERE event_id = $1`
	var n int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent reads one events row. lib/pq returns timestamptz values in the
// session zone, so both timestamps are normalized back to UTC.
func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	if err := row.Scan(&e.ID, &e.Name, &e.Location, &e.StartTime, &e.EndTime, &e.MaxCapacity); err != nil {
		return nil, err
	}
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	return e, nil
}
