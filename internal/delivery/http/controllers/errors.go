package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// Client-facing messages for the registration rule violations.
const (
	msgEventNotFound         = "Event not found"
	msgCapacityExceeded      = "Event is at full capacity"
	msgDuplicateRegistration = "Attendee with this email already registered for this event"
	msgInternalError         = "internal server error"
)

// writeServiceError maps a service error onto the response envelope. Errors
// that match no sentinel are logged and answered with 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, msgEventNotFound)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeValidationFailed, err.Error())
	case errors.Is(err, domain.ErrCapacityExceeded):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeCapacityExceeded, msgCapacityExceeded)
	case errors.Is(err, domain.ErrDuplicateRegistration):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeDuplicateRegistration, msgDuplicateRegistration)
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, msgInternalError)
	}
}

// eventIDFromPath reads the {eventID} wildcard, writing a 400 and returning
// false when it is not a positive integer.
func eventIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := helpers.PathInt64(r, "eventID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return 0, false
	}
	return id, true
}
