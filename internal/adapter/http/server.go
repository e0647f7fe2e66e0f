// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"hydrosync/internal/app"
	"hydrosync/internal/metrics"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	accounts  *app.AccountService
	hydration *app.HydrationService
	reminders *app.ReminderManager
	validate  *validator.Validate
	jwtSecret []byte
	log       zerolog.Logger
}

// New creates a Server wired to the given application services.
func New(accounts *app.AccountService, hydration *app.HydrationService, reminders *app.ReminderManager, jwtSecret string, log zerolog.Logger) *Server {
	return &Server{
		accounts:  accounts,
		hydration: hydration,
		reminders: reminders,
		validate:  validator.New(),
		jwtSecret: []byte(jwtSecret),
		log:       log,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)

	// The tag-scan / deep-link trigger carries only (userId, amountMl) and
	// no session, so it stays outside the auth middleware.
	api.HandleFunc("/drink/scan", s.handleScan)

	authed := http.NewServeMux()
	authed.HandleFunc("/goal", s.handleGoal)
	authed.HandleFunc("/drink", s.handleDrink)
	authed.HandleFunc("/refill", s.handleRefill)
	authed.HandleFunc("/tumbler", s.handleTumbler)
	authed.HandleFunc("/progress/today", s.handleProgressToday)
	authed.HandleFunc("/progress/week", s.handleProgressWeek)
	authed.HandleFunc("/history", s.handleHistory)
	api.Handle("/", s.requireAuth(authed))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/metrics", metrics.Handler())

	return s.withLogging(root)
}
