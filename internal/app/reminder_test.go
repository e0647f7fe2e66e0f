package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"hydrosync/internal/clock"
)

type recordingSink struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *recordingSink) Notify(ctx context.Context, userID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, userID)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func testConfig() ReminderConfig {
	return ReminderConfig{CheckInterval: 5 * time.Second, Threshold: 30 * time.Second}
}

func TestReminderTick_FiresOnceAfterThreshold(t *testing.T) {
	// 35s of simulated inactivity with a 30s threshold and 5s checks:
	// exactly one reminder, then lastDrink resets so the next wake is quiet.
	start := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	sink := &recordingSink{}
	w := NewReminderWatcher("USR-1", testConfig(), clk, sink, zerolog.Nop())

	for i := 0; i < 7; i++ {
		clk.Advance(5 * time.Second)
		w.tick(context.Background())
	}
	if sink.count() != 1 {
		t.Fatalf("expected exactly one reminder after 35s, got %d", sink.count())
	}

	// Not yet 30s since the reset: still quiet.
	clk.Advance(10 * time.Second)
	if w.tick(context.Background()) {
		t.Fatal("reminder fired before threshold elapsed again")
	}

	// Full threshold after the reset: fires again.
	clk.Advance(20 * time.Second)
	if !w.tick(context.Background()) {
		t.Fatal("expected reminder after another 30s of inactivity")
	}
	if sink.count() != 2 {
		t.Fatalf("expected 2 reminders, got %d", sink.count())
	}
}

func TestReminderTick_ActivityDefers(t *testing.T) {
	start := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	sink := &recordingSink{}
	w := NewReminderWatcher("USR-1", testConfig(), clk, sink, zerolog.Nop())

	clk.Advance(25 * time.Second)
	w.Activity(clk.Now())

	clk.Advance(10 * time.Second)
	if w.tick(context.Background()) {
		t.Fatal("activity 10s ago must defer the reminder")
	}

	clk.Advance(20 * time.Second)
	if !w.tick(context.Background()) {
		t.Fatal("expected reminder 30s after last activity")
	}
}

func TestReminderTick_SinkErrorDropsReminderSilently(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC))
	sink := &recordingSink{err: errors.New("permission declined")}
	w := NewReminderWatcher("USR-1", testConfig(), clk, sink, zerolog.Nop())

	clk.Advance(time.Minute)
	if !w.tick(context.Background()) {
		t.Fatal("tick should still count as fired when the sink declines")
	}
}

func TestReminderWatcher_StopIsSynchronousAndIdempotent(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	w := NewReminderWatcher("USR-1", ReminderConfig{CheckInterval: time.Millisecond, Threshold: time.Hour}, clk, &recordingSink{}, zerolog.Nop())

	w.Start()
	w.Stop()
	w.Stop()

	select {
	case <-w.done:
	default:
		t.Fatal("Stop returned before the check loop exited")
	}
}

func TestReminderWatcher_StopWithoutStart(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	w := NewReminderWatcher("USR-1", testConfig(), clk, &recordingSink{}, zerolog.Nop())
	w.Stop() // must not block or panic
}

func TestReminderManager_Lifecycle(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC))
	sink := &recordingSink{}
	m := NewReminderManager(ReminderConfig{CheckInterval: time.Hour, Threshold: 30 * time.Second}, clk, sink, zerolog.Nop())

	m.StartFor("USR-1")
	m.StartFor("USR-1") // idempotent

	m.mu.Lock()
	if len(m.watchers) != 1 {
		m.mu.Unlock()
		t.Fatalf("expected one watcher, got %d", len(m.watchers))
	}
	w := m.watchers["USR-1"]
	m.mu.Unlock()

	// Activity flows through the manager to the watcher.
	clk.Advance(25 * time.Second)
	m.Activity("USR-1", clk.Now())
	clk.Advance(10 * time.Second)
	if w.tick(context.Background()) {
		t.Fatal("activity must defer the reminder")
	}

	// Logout releases the timer.
	m.StopFor("USR-1")
	select {
	case <-w.done:
	default:
		t.Fatal("StopFor returned before the watcher stopped")
	}

	// Signals for inactive sessions are a no-op.
	m.Activity("USR-1", clk.Now())
	m.StopFor("USR-1")
}

func TestReminderManager_StopAll(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	m := NewReminderManager(ReminderConfig{CheckInterval: time.Hour, Threshold: time.Hour}, clk, &recordingSink{}, zerolog.Nop())

	m.StartFor("USR-1")
	m.StartFor("USR-2")
	m.StopAll()

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.watchers) != 0 {
		t.Fatalf("expected no watchers after StopAll, got %d", len(m.watchers))
	}
}
