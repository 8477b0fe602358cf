package controllers

import (
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
	"eventregistration/internal/metrics"
)

// RegisterAttendeeRequest is the request body for POST /events/{eventID}/register.
type RegisterAttendeeRequest struct {
	Name  string `json:"name" validate:"required,max=255" example:"Ada Lovelace"`
	Email string `json:"email" validate:"required,email,max=320" example:"ada@example.com"`
}

// AttendeeSuccessResponse is the success response envelope for a registration (201).
type AttendeeSuccessResponse struct {
	Data  *domain.Attendee  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AttendeePageSuccessResponse is the success response envelope for GET /events/{eventID}/attendees.
type AttendeePageSuccessResponse struct {
	Data  *domain.AttendeePage `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterAttendee godoc
// @Summary Register an attendee for an event
// @Description Registers an attendee by name and email. Fails when the event is full or the email is already registered for it.
// @Tags attendees
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param attendee body RegisterAttendeeRequest true "Attendee data"
// @Success 201 {object} controllers.AttendeeSuccessResponse "data contains the created attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: capacity_exceeded, duplicate_registration or bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [post]
func (c *AttendeeController) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req RegisterAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		metrics.ObserveRegistration(domain.ErrInvalidInput)
		return
	}
	attendee, err := c.Service.RegisterAttendee(r.Context(), eventID, req.Name, req.Email)
	metrics.ObserveRegistration(err)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// ListAttendees godoc
// @Summary List attendees of an event
// @Description Returns one page of the event's attendees in registration order.
// @Tags attendees
// @Produce json
// @Param eventID path int true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.AttendeePageSuccessResponse "data contains total, page, size, pages and items"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *AttendeeController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	page, err := c.Service.ListAttendees(r.Context(), eventID, params.Page, params.PageSize)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}
