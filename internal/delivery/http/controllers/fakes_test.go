package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr     error
	listErr       error
	getErr        error
	events        []*domain.Event
	byID          map[int64]*domain.Event
	lastCreate    *domain.Event
	lastOffset    int
	lastLimit     int
	lastGetID     int64
	createdNextID int64
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreate = event
	if f.createErr != nil {
		return f.createErr
	}
	f.createdNextID++
	event.ID = f.createdNextID
	event.StartTime = event.StartTime.UTC()
	event.EndTime = event.EndTime.UTC()
	return nil
}

func (f *fakeEventService) ListUpcomingEvents(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	f.lastOffset, f.lastLimit = offset, limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	f.lastGetID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) CountAttendees(ctx context.Context, eventID int64) (int, error) {
	return 0, nil
}

// fakeAttendeeService implements domain.AttendeeService for handler tests.
type fakeAttendeeService struct {
	registerErr  error
	listErr      error
	page         *domain.AttendeePage
	lastEventID  int64
	lastName     string
	lastEmail    string
	lastPage     int
	lastPageSize int
	registerCall int
}

func (f *fakeAttendeeService) RegisterAttendee(ctx context.Context, eventID int64, name, email string) (*domain.Attendee, error) {
	f.registerCall++
	f.lastEventID, f.lastName, f.lastEmail = eventID, name, email
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	a := domain.NewAttendee(eventID, name, email)
	a.ID = int64(f.registerCall)
	return a, nil
}

func (f *fakeAttendeeService) ListAttendees(ctx context.Context, eventID int64, page, pageSize int) (*domain.AttendeePage, error) {
	f.lastEventID, f.lastPage, f.lastPageSize = eventID, page, pageSize
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.page, nil
}

// decodeError unmarshals an error envelope and returns its error object.
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *helpers.APIError {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	return resp.Error
}

// decodeData unmarshals the data field of a success envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var resp struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, dest))
}
