package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"eventregistration/internal/domain"
)

type attendeeService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	txManager      domain.TxManager
	emailService   domain.EmailService
	logger         *slog.Logger
	validate       *validator.Validate
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService with the given repositories.
// emailService may be nil, in which case no confirmation emails are sent.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	txManager domain.TxManager,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		txManager:      txManager,
		emailService:   emailService,
		logger:         logger,
		validate:       validator.New(),
		contextTimeout: timeout,
	}
}

// RegisterAttendee registers name/email for the event. The event row is locked
// for the duration of the transaction so the capacity check and the insert
// cannot interleave with another registration for the same event.
func (s *attendeeService) RegisterAttendee(ctx context.Context, eventID int64, name, email string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid email address", domain.ErrInvalidInput)
	}

	var (
		event    *domain.Event
		attendee *domain.Attendee
	)
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		ev, err := s.eventRepo.GetByIDForUpdate(txCtx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}

		count, err := s.eventRepo.CountAttendees(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("count attendees: %w", err)
		}
		if count >= ev.MaxCapacity {
			return domain.ErrCapacityExceeded
		}

		if _, err := s.attendeeRepo.GetByEventAndEmail(txCtx, eventID, email); err == nil {
			return domain.ErrDuplicateRegistration
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get attendee: %w", err)
		}

		a := domain.NewAttendee(eventID, name, email)
		if err := s.attendeeRepo.Create(txCtx, a); err != nil {
			// The store's unique and foreign key constraints are authoritative.
			if errors.Is(err, domain.ErrDuplicateRegistration) || errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return fmt.Errorf("create attendee: %w", err)
		}
		event, attendee = ev, a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, event, attendee)
	return attendee, nil
}

func (s *attendeeService) sendConfirmation(ctx context.Context, event *domain.Event, attendee *domain.Attendee) {
	if s.emailService == nil {
		return
	}
	data := &domain.RegistrationEmailData{
		Email:         attendee.Email,
		AttendeeName:  attendee.Name,
		EventName:     event.Name,
		EventLocation: event.Location,
		StartTime:     event.StartTime.UTC(),
		EndTime:       event.EndTime.UTC(),
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "registration confirmation not sent",
			"event_id", event.ID,
			"attendee_id", attendee.ID,
			"err", err,
		)
	}
}

func (s *attendeeService) ListAttendees(ctx context.Context, eventID int64, page, pageSize int) (*domain.AttendeePage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	params := domain.PaginationParams{Page: page, PageSize: pageSize}.Normalize()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	total, err := s.eventRepo.CountAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}

	pages := params.TotalPages(total)
	items := []*domain.Attendee{}
	if params.Page <= pages {
		items, err = s.attendeeRepo.ListByEventID(ctx, eventID, params.Offset(), params.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list attendees: %w", err)
		}
		if items == nil {
			items = []*domain.Attendee{}
		}
	}

	return &domain.AttendeePage{
		Total: total,
		Page:  params.Page,
		Size:  params.PageSize,
		Pages: pages,
		Items: items,
	}, nil
}
