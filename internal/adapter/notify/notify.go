// Package notify provides notification sinks for hydration reminders.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink writes reminders to the structured log. It stands in for a real
// push channel; the scheduler does not care which is wired.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a sink logging at info level.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Notify logs the reminder.
func (s *LogSink) Notify(ctx context.Context, userID, message string) error {
	s.log.Info().Str("user", userID).Msg(message)
	return nil
}

// NopSink discards every reminder, modeling a declined notification
// permission.
type NopSink struct{}

// Notify drops the reminder.
func (NopSink) Notify(ctx context.Context, userID, message string) error {
	return nil
}
