package helpers

import (
	"net/http"
	"strconv"

	"eventregistration/internal/domain"
)

// Offset/limit defaults for list endpoints that page by skip and limit.
const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParsePagination reads page and size from the request query string,
// clamps them to valid ranges, and returns domain.PaginationParams.
// Invalid or missing values fall back to defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     queryInt(q.Get("page"), domain.DefaultPage),
		PageSize: queryInt(q.Get("size"), domain.DefaultPageSize),
	}.Normalize()
}

// ParseSkipLimit reads skip and limit from the request query string.
// A negative skip becomes 0; a limit below 1 falls back to DefaultLimit and
// one above MaxLimit is capped.
func ParseSkipLimit(r *http.Request) (skip, limit int) {
	q := r.URL.Query()
	skip = queryInt(q.Get("skip"), DefaultSkip)
	if skip < 0 {
		skip = DefaultSkip
	}
	limit = queryInt(q.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}

func queryInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
