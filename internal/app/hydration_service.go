package app

import (
	"context"
	"time"

	"hydrosync/internal/clock"
	"hydrosync/internal/domain"
	"hydrosync/internal/metrics"
)

// ActivitySignal receives "the user drank" events, resetting the
// inactivity watcher for that user. A nil signal disables it.
type ActivitySignal interface {
	Activity(userID string, at time.Time)
}

// HydrationService coordinates the tumbler state machine, the drink log
// and the progress views.
type HydrationService struct {
	accounts   domain.AccountRepository
	drinks     domain.DrinkLogRepository
	clock      clock.Clock
	loc        *time.Location
	capacityMl int
	activity   ActivitySignal
}

// NewHydrationService creates a HydrationService. capacityMl is the
// device-level tumbler capacity; loc is the calendar policy used to bucket
// entries into days.
func NewHydrationService(
	accounts domain.AccountRepository,
	drinks domain.DrinkLogRepository,
	clk clock.Clock,
	loc *time.Location,
	capacityMl int,
	activity ActivitySignal,
) *HydrationService {
	return &HydrationService{
		accounts:   accounts,
		drinks:     drinks,
		clock:      clk,
		loc:        loc,
		capacityMl: capacityMl,
		activity:   activity,
	}
}

// DrinkResult reports the outcome of a drink request. Entry is nil when
// the request was a no-op (empty tumbler or non-positive request).
type DrinkResult struct {
	RequestedMl int                `json:"requestedMl"`
	ActualMl    int                `json:"actualMl"`
	Tumbler     domain.Tumbler     `json:"tumbler"`
	Entry       *domain.DrinkEntry `json:"entry,omitempty"`
}

// Progress is the daily goal view.
type Progress struct {
	Day            string  `json:"day"`
	ConsumedMl     int     `json:"consumedMl"`
	GoalMl         int     `json:"goalMl"`
	GoalPercentage float64 `json:"goalPercentage"`
}

// RecordDrink runs one tumbler transition and logs what was actually
// consumed. The logged amount is the state machine's actual, never the
// request; the transition is persisted before the log entry is written.
func (s *HydrationService) RecordDrink(ctx context.Context, userID string, amountMl int) (*DrinkResult, error) {
	user, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	tumbler := s.tumblerFor(user)
	actual := tumbler.Drink(amountMl)
	res := &DrinkResult{RequestedMl: amountMl, ActualMl: actual, Tumbler: tumbler}
	if actual <= 0 {
		return res, nil
	}

	if err := s.accounts.SaveTumbler(ctx, userID, tumbler.CurrentMl); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	entry, err := s.drinks.Append(ctx, userID, actual, now)
	if err != nil {
		return nil, err
	}
	res.Entry = entry

	if s.activity != nil {
		s.activity.Activity(userID, now)
	}
	metrics.DrinksLogged.Inc()
	metrics.MillilitersConsumed.Add(float64(actual))
	return res, nil
}

// Refill restores the tumbler to capacity and persists the transition.
func (s *HydrationService) Refill(ctx context.Context, userID string) (domain.Tumbler, error) {
	user, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return domain.Tumbler{}, err
	}
	if user == nil {
		return domain.Tumbler{}, domain.ErrUserNotFound
	}

	tumbler := s.tumblerFor(user)
	tumbler.Refill()
	if err := s.accounts.SaveTumbler(ctx, userID, tumbler.CurrentMl); err != nil {
		return domain.Tumbler{}, err
	}
	return tumbler, nil
}

// Tumbler returns the user's current tumbler state.
func (s *HydrationService) Tumbler(ctx context.Context, userID string) (domain.Tumbler, error) {
	user, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return domain.Tumbler{}, err
	}
	if user == nil {
		return domain.Tumbler{}, domain.ErrUserNotFound
	}
	return s.tumblerFor(user), nil
}

// History returns the user's full drink log in insertion order.
func (s *HydrationService) History(ctx context.Context, userID string) ([]domain.DrinkEntry, error) {
	return s.drinks.List(ctx, userID)
}

// ClearHistory irrevocably empties the user's drink log.
func (s *HydrationService) ClearHistory(ctx context.Context, userID string) error {
	return s.drinks.Clear(ctx, userID)
}

// TodayProgress returns consumption against the daily goal for the current
// local calendar day.
func (s *HydrationService) TodayProgress(ctx context.Context, userID string) (*Progress, error) {
	user, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	entries, err := s.drinks.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	consumed := domain.TotalForDay(entries, now, s.loc)
	return &Progress{
		Day:            domain.LocalDay(now, s.loc),
		ConsumedMl:     consumed,
		GoalMl:         user.DailyGoalMl,
		GoalPercentage: domain.GoalPercentage(consumed, user.DailyGoalMl),
	}, nil
}

// WeeklySeries returns the last 7 calendar days of consumption, today last.
func (s *HydrationService) WeeklySeries(ctx context.Context, userID string) ([]domain.DayBucket, error) {
	entries, err := s.drinks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.WeeklySeries(entries, s.clock.Now(), s.loc), nil
}

// tumblerFor builds the tumbler state machine from the persisted volume,
// initializing to full capacity on first use.
func (s *HydrationService) tumblerFor(user *domain.User) domain.Tumbler {
	t := domain.NewTumbler(s.capacityMl)
	if user.TumblerVolumeMl != nil {
		v := *user.TumblerVolumeMl
		if v < 0 {
			v = 0
		}
		if v > t.CapacityMl {
			v = t.CapacityMl
		}
		t.CurrentMl = v
	}
	return t
}
