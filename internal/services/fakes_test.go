package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"eventregistration/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventRepo is an in-memory EventRepository for tests. Attendee counts are
// read from the linked fakeAttendeeRepo when set.
type fakeEventRepo struct {
	byID           map[int64]*domain.Event
	nextID         int64
	attendees      *fakeAttendeeRepo
	err            error // if set, Create returns this error
	getErr         error // if set, GetByID/GetByIDForUpdate return this error
	countErr       error
	forUpdateCalls int
	createCalls    int
	lastNow        time.Time
	lastOffset     int
	lastLimit      int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[int64]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.createCalls++
	if f.err != nil {
		return f.err
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	f.forUpdateCalls++
	return f.GetByID(ctx, id)
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, now time.Time, offset, limit int) ([]*domain.Event, error) {
	f.lastNow, f.lastOffset, f.lastLimit = now, offset, limit
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.EndTime.After(now) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEventRepo) CountAttendees(ctx context.Context, eventID int64) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	if f.attendees == nil {
		return 0, nil
	}
	n := 0
	for _, a := range f.attendees.items {
		if a.EventID == eventID {
			n++
		}
	}
	return n, nil
}

// fakeAttendeeRepo is an in-memory AttendeeRepository. Create enforces the
// (event_id, email) uniqueness like the database constraint does.
type fakeAttendeeRepo struct {
	items     []*domain.Attendee
	nextID    int64
	createErr error
	listErr   error
	listCalls int
	// blindLookup makes GetByEventAndEmail always miss, simulating a concurrent
	// insert that lands between the pre-check and the insert.
	blindLookup bool
}

func newFakeAttendeeRepo() *fakeAttendeeRepo {
	return &fakeAttendeeRepo{nextID: 1}
}

func (f *fakeAttendeeRepo) Create(ctx context.Context, a *domain.Attendee) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.items {
		if existing.EventID == a.EventID && existing.Email == a.Email {
			return domain.ErrDuplicateRegistration
		}
	}
	a.ID = f.nextID
	f.nextID++
	f.items = append(f.items, a)
	return nil
}

func (f *fakeAttendeeRepo) GetByEventAndEmail(ctx context.Context, eventID int64, email string) (*domain.Attendee, error) {
	if f.blindLookup {
		return nil, domain.ErrNotFound
	}
	for _, a := range f.items {
		if a.EventID == eventID && a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendeeRepo) ListByEventID(ctx context.Context, eventID int64, offset, limit int) ([]*domain.Attendee, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if offset < 0 {
		return nil, fmt.Errorf("OFFSET must not be negative: %d", offset)
	}
	var out []*domain.Attendee
	for _, a := range f.items {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// fakeTxManager runs fn directly and counts invocations.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeEmailService struct {
	sent []*domain.RegistrationEmailData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
