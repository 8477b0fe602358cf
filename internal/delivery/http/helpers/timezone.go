package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TimezoneHeader names the request header carrying the IANA zone used to
// present event timestamps.
const TimezoneHeader = "X-Timezone"

// ParseTimezone returns the location named by the X-Timezone header, or UTC
// when the header is absent or blank. Unknown zone names are an error.
func ParseTimezone(r *http.Request) (*time.Location, error) {
	name := strings.TrimSpace(r.Header.Get(TimezoneHeader))
	if name == "" {
		return time.UTC, nil
	}
	// time.LoadLocation treats "Local" as the server zone; clients cannot ask for it.
	if name == "Local" {
		return nil, fmt.Errorf("unknown timezone %q", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", name)
	}
	return loc, nil
}

// PathInt64 parses the named path wildcard as a positive int64 id.
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
