// Package metrics exposes Prometheus counters for hydration activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hydrosync_registrations_total",
		Help: "Number of accounts registered.",
	})
	DrinksLogged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hydrosync_drinks_logged_total",
		Help: "Number of drink events appended to the log.",
	})
	MillilitersConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hydrosync_milliliters_consumed_total",
		Help: "Total milliliters recorded across all users.",
	})
	RemindersFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hydrosync_reminders_fired_total",
		Help: "Number of inactivity reminders emitted.",
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
