package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventregistration/internal/clock"
	"eventregistration/internal/domain"
)

// DefaultListLimit is the number of events returned when no limit is given.
const DefaultListLimit = 10

type eventService struct {
	eventRepo      domain.EventRepository
	clock          clock.Clock
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, clk clock.Clock, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		clock:          clk,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Name = strings.TrimSpace(event.Name)
	event.Location = strings.TrimSpace(event.Location)
	// TIMESTAMPTZ keeps microseconds; truncate first so validation and the
	// returned event see the stored instant.
	event.StartTime = event.StartTime.UTC().Truncate(time.Microsecond)
	event.EndTime = event.EndTime.UTC().Truncate(time.Microsecond)
	if err := validateEvent(event); err != nil {
		return err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func validateEvent(event *domain.Event) error {
	switch {
	case event.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	case event.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	case event.MaxCapacity <= 0:
		return fmt.Errorf("%w: max_capacity must be greater than 0", domain.ErrInvalidInput)
	case event.StartTime.IsZero() || event.EndTime.IsZero():
		return fmt.Errorf("%w: start_time and end_time are required", domain.ErrInvalidInput)
	case !event.EndTime.After(event.StartTime):
		return fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) ListUpcomingEvents(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = DefaultListLimit
	}

	events, err := s.eventRepo.ListUpcoming(ctx, s.clock.Now(), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) CountAttendees(ctx context.Context, eventID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.eventRepo.CountAttendees(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	return n, nil
}
