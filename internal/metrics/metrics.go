package metrics

import (
	"database/sql"
	"errors"
	"net/http"

	"eventregistration/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventregistration"

// Registry holds every metric the service exports. It is separate from the
// default registry so tests and multiple servers in one process stay isolated.
var Registry = prometheus.NewRegistry()

// Registration outcomes used as the "outcome" label of RegistrationsTotal.
const (
	OutcomeCreated          = "created"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeDuplicate        = "duplicate"
	OutcomeNotFound         = "not_found"
	OutcomeInvalid          = "invalid"
	OutcomeError            = "error"
)

// RegistrationsTotal counts registration attempts by outcome.
var RegistrationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of attendee registration attempts by outcome",
	},
	[]string{"outcome"},
)

// EventsCreatedTotal counts successfully created events.
var EventsCreatedTotal = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created",
	},
)

// Init registers the Go runtime and process collectors.
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RegisterDB exports connection pool statistics for db under the given name.
func RegisterDB(db *sql.DB, name string) error {
	return Registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// RegistrationOutcome maps the error returned by a registration attempt to an outcome label.
func RegistrationOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case errors.Is(err, domain.ErrCapacityExceeded):
		return OutcomeCapacityExceeded
	case errors.Is(err, domain.ErrDuplicateRegistration):
		return OutcomeDuplicate
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// ObserveRegistration increments RegistrationsTotal for the outcome of err.
func ObserveRegistration(err error) {
	RegistrationsTotal.WithLabelValues(RegistrationOutcome(err)).Inc()
}
