package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hydrosync/internal/clock"
	"hydrosync/internal/metrics"
)

// NotificationSink receives reminder messages. A sink may be unavailable
// (e.g. permission declined); its error drops the reminder silently.
type NotificationSink interface {
	Notify(ctx context.Context, userID, message string) error
}

const reminderMessage = "Time to hydrate! You haven't taken a sip from your tumbler in a while."

// ReminderConfig tunes the inactivity watcher.
type ReminderConfig struct {
	// CheckInterval is how often the watcher wakes.
	CheckInterval time.Duration
	// Threshold is how long without a drink triggers a reminder.
	Threshold time.Duration
}

// ReminderWatcher watches one user's time-of-last-drink and emits a
// reminder when inactivity exceeds the threshold. Each wake is a fast
// non-blocking check; Stop is synchronous and guarantees no wake fires
// after it returns.
type ReminderWatcher struct {
	userID string
	cfg    ReminderConfig
	clock  clock.Clock
	sink   NotificationSink
	log    zerolog.Logger

	mu        sync.Mutex
	lastDrink time.Time

	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewReminderWatcher creates a watcher with lastDrink initialized to now,
// so tracking starts when the session does.
func NewReminderWatcher(userID string, cfg ReminderConfig, clk clock.Clock, sink NotificationSink, log zerolog.Logger) *ReminderWatcher {
	return &ReminderWatcher{
		userID:    userID,
		cfg:       cfg,
		clock:     clk,
		sink:      sink,
		log:       log,
		lastDrink: clk.Now(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the periodic check loop.
func (w *ReminderWatcher) Start() {
	if w.started {
		return
	}
	w.started = true
	go w.run()
}

func (w *ReminderWatcher) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.cfg.CheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.tick(context.Background())
		}
	}
}

// Stop halts the watcher and releases its timer. It does not return until
// the check loop has exited; calling it again is a no-op.
func (w *ReminderWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	if w.started {
		<-w.done
	}
}

// Activity records a drink (or any other activity the caller treats as
// such), deferring the next reminder.
func (w *ReminderWatcher) Activity(at time.Time) {
	w.mu.Lock()
	if at.After(w.lastDrink) {
		w.lastDrink = at
	}
	w.mu.Unlock()
}

// tick runs one inactivity check and reports whether a reminder fired.
// Firing resets lastDrink so the watcher does not repeat every wake.
func (w *ReminderWatcher) tick(ctx context.Context) bool {
	now := w.clock.Now()

	w.mu.Lock()
	due := now.Sub(w.lastDrink) >= w.cfg.Threshold
	if due {
		w.lastDrink = now
	}
	w.mu.Unlock()

	if !due {
		return false
	}
	if err := w.sink.Notify(ctx, w.userID, reminderMessage); err != nil {
		// Sink unavailable: the reminder is dropped, not an error.
		w.log.Debug().Err(err).Str("user", w.userID).Msg("reminder dropped")
	}
	metrics.RemindersFired.Inc()
	return true
}

// ReminderManager owns one watcher per active session: a watcher exists
// only while an authenticated user with a configured goal is present.
type ReminderManager struct {
	cfg   ReminderConfig
	clock clock.Clock
	sink  NotificationSink
	log   zerolog.Logger

	mu       sync.Mutex
	watchers map[string]*ReminderWatcher
}

// NewReminderManager creates an empty manager.
func NewReminderManager(cfg ReminderConfig, clk clock.Clock, sink NotificationSink, log zerolog.Logger) *ReminderManager {
	return &ReminderManager{
		cfg:      cfg,
		clock:    clk,
		sink:     sink,
		log:      log,
		watchers: make(map[string]*ReminderWatcher),
	}
}

// StartFor starts a watcher for the user if none is running.
func (m *ReminderManager) StartFor(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.watchers[userID]; ok {
		return
	}
	w := NewReminderWatcher(userID, m.cfg, m.clock, m.sink, m.log)
	m.watchers[userID] = w
	w.Start()
}

// StopFor stops and removes the user's watcher, if any. Returns after the
// watcher has fully stopped.
func (m *ReminderManager) StopFor(userID string) {
	m.mu.Lock()
	w, ok := m.watchers[userID]
	delete(m.watchers, userID)
	m.mu.Unlock()
	if ok {
		w.Stop()
	}
}

// Activity forwards a drink signal to the user's watcher. No watcher (no
// active session) is a no-op.
func (m *ReminderManager) Activity(userID string, at time.Time) {
	m.mu.Lock()
	w, ok := m.watchers[userID]
	m.mu.Unlock()
	if ok {
		w.Activity(at)
	}
}

// StopAll stops every watcher; no timers survive it.
func (m *ReminderManager) StopAll() {
	m.mu.Lock()
	ws := make([]*ReminderWatcher, 0, len(m.watchers))
	for id, w := range m.watchers {
		ws = append(ws, w)
		delete(m.watchers, id)
	}
	m.mu.Unlock()
	for _, w := range ws {
		w.Stop()
	}
}
