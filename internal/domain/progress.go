package domain

import (
	"sort"
	"time"
)

// dayFormat is the local calendar date key entries are bucketed by.
const dayFormat = "2006-01-02"

// LocalDay returns the calendar date of t in loc.
func LocalDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayFormat)
}

// DayBucket is one day of the weekly series: the day's total plus its
// contributing entries sorted chronologically, for display and tooltips.
type DayBucket struct {
	Day     string       `json:"day"`
	TotalMl int          `json:"totalMl"`
	Entries []DrinkEntry `json:"entries"`
}

// TotalForDay sums the amounts of entries whose timestamp falls on the same
// calendar date as day in loc. Bucketing is by local date, not a rolling
// 24h window.
func TotalForDay(entries []DrinkEntry, day time.Time, loc *time.Location) int {
	want := LocalDay(day, loc)
	total := 0
	for _, e := range entries {
		if LocalDay(e.Timestamp, loc) == want {
			total += e.AmountMl
		}
	}
	return total
}

// WeeklySeries buckets entries into the 7 calendar days from reference-6
// through reference inclusive, in chronological order.
func WeeklySeries(entries []DrinkEntry, reference time.Time, loc *time.Location) []DayBucket {
	ref := reference.In(loc)
	buckets := make([]DayBucket, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := ref.AddDate(0, 0, i-6).Format(dayFormat)
		buckets[i] = DayBucket{Day: day, Entries: []DrinkEntry{}}
		index[day] = i
	}

	for _, e := range entries {
		i, ok := index[LocalDay(e.Timestamp, loc)]
		if !ok {
			continue
		}
		buckets[i].TotalMl += e.AmountMl
		buckets[i].Entries = append(buckets[i].Entries, e)
	}

	for i := range buckets {
		es := buckets[i].Entries
		sort.Slice(es, func(a, b int) bool {
			return es[a].Timestamp.Before(es[b].Timestamp)
		})
	}
	return buckets
}

// GoalPercentage returns consumed over goal as a percentage clamped to
// [0, 100]. A non-positive goal is a caller-contract violation and is not
// guarded beyond avoiding a division by zero.
func GoalPercentage(consumedMl, goalMl int) float64 {
	if goalMl == 0 {
		return 0
	}
	pct := float64(consumedMl) / float64(goalMl) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
