package timeutil

import (
	"fmt"
	"time"
)

// Interval is a half-open absolute interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// StartOfDay returns the midnight of t's calendar day in loc, as an instant.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable moment of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// DateRange returns the business-timezone midnights of every calendar day
// from start through end, both inclusive. DateRange(d, d) yields one day.
func DateRange(start, end time.Time, loc *time.Location) []time.Time {
	first := StartOfDay(start, loc)
	last := StartOfDay(end, loc)

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// EnumerateSlots emits successive slot start instants for each window:
// start, start+g, start+2g, ... while the full slot still fits inside the
// window. A trailing partial slot shorter than the granularity is dropped.
func EnumerateSlots(windows []Interval, granularity time.Duration) []time.Time {
	if granularity <= 0 {
		return nil
	}

	var slots []time.Time
	for _, w := range windows {
		for cur := w.Start; !cur.Add(granularity).After(w.End); cur = cur.Add(granularity) {
			slots = append(slots, cur)
		}
	}
	return slots
}

// Difference returns the instants of a not present in b, preserving a's
// order. Instants compare by millisecond equality.
func Difference(a, b []time.Time) []time.Time {
	exclude := make(map[int64]struct{}, len(b))
	for _, t := range b {
		exclude[t.UnixMilli()] = struct{}{}
	}

	var out []time.Time
	for _, t := range a {
		if _, ok := exclude[t.UnixMilli()]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Intersect returns the instants present in both a and b, preserving a's
// order.
func Intersect(a, b []time.Time) []time.Time {
	keep := make(map[int64]struct{}, len(b))
	for _, t := range b {
		keep[t.UnixMilli()] = struct{}{}
	}

	var out []time.Time
	for _, t := range a {
		if _, ok := keep[t.UnixMilli()]; ok {
			out = append(out, t)
		}
	}
	return out
}

// AnchorWindow converts a "15:04" time-of-day pair into an absolute interval
// on day's calendar day in loc. day is expected to be a business-timezone
// midnight but any instant within the day works.
func AnchorWindow(day time.Time, startHM, endHM string, loc *time.Location) (Interval, error) {
	start, err := anchorClock(day, startHM, loc)
	if err != nil {
		return Interval{}, err
	}

	end, err := anchorClock(day, endHM, loc)
	if err != nil {
		return Interval{}, err
	}

	if !end.After(start) {
		return Interval{}, fmt.Errorf("window end %s not after start %s", endHM, startHM)
	}

	return Interval{Start: start, End: end}, nil
}

func anchorClock(day time.Time, hm string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", hm, err)
	}

	local := day.In(loc)
	return time.Date(
		local.Year(), local.Month(), local.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		loc,
	), nil
}
