package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
	"eventregistration/internal/metrics"
)

// CreateEventRequest is the request body for POST /events. Timestamps must be
// RFC 3339 with an explicit offset (for example 2025-07-01T10:00:00+05:30).
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,max=255" example:"Go Meetup"`
	Location    string `json:"location" validate:"required,max=255" example:"Bangalore"`
	StartTime   string `json:"start_time" validate:"required" example:"2025-07-01T10:00:00+05:30"`
	EndTime     string `json:"end_time" validate:"required" example:"2025-07-01T12:00:00+05:30"`
	MaxCapacity int    `json:"max_capacity" validate:"gt=0" example:"100"`

	start, end time.Time
}

// Validate implements helpers.Validator. It parses both timestamps and checks
// that the event ends after it starts.
func (c *CreateEventRequest) Validate() []string {
	var errs []string
	var startOK, endOK bool
	var err error
	if c.start, err = time.Parse(time.RFC3339Nano, c.StartTime); err != nil {
		errs = append(errs, "start_time must be an RFC 3339 timestamp with a timezone offset")
	} else {
		startOK = true
	}
	if c.end, err = time.Parse(time.RFC3339Nano, c.EndTime); err != nil {
		errs = append(errs, "end_time must be an RFC 3339 timestamp with a timezone offset")
	} else {
		endOK = true
	}
	if startOK && endOK && !c.end.After(c.start) {
		errs = append(errs, "End time must be after start time")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event with a capacity limit and a time window. Timestamps must carry a timezone offset and are stored in UTC.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Name, req.Location, req.start, req.end, req.MaxCapacity)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	metrics.EventsCreatedTotal.Inc()
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List upcoming events
// @Description Returns events that have not ended yet, ordered by start time. Timestamps are converted to the zone named by X-Timezone (default UTC).
// @Tags events
// @Produce json
// @Param X-Timezone header string false "IANA timezone, e.g. America/New_York"
// @Param skip query int false "Number of events to skip (default 0)"
// @Param limit query int false "Maximum number of events (default 10, max 100)"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_timezone"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	loc, ok := c.timezone(w, r)
	if !ok {
		return
	}
	skip, limit := helpers.ParseSkipLimit(r)
	events, err := c.Service.ListUpcomingEvents(r.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, e.In(loc))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns a single event with timestamps converted to the zone named by X-Timezone (default UTC).
// @Tags events
// @Produce json
// @Param eventID path int true "Event ID"
// @Param X-Timezone header string false "IANA timezone, e.g. Asia/Kolkata"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_timezone"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	loc, ok := c.timezone(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event.In(loc))
}

func (c *EventController) timezone(w http.ResponseWriter, r *http.Request) (*time.Location, bool) {
	loc, err := helpers.ParseTimezone(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidTimezone, "Invalid X-Timezone header value.")
		return nil, false
	}
	return loc, true
}
