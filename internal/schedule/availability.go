package schedule

import (
	"fmt"
	"time"

	"github.com/bookline/booking-api/internal/model"
)

// SlotStepMinutes is the booking start-time granularity.
const SlotStepMinutes = 15

// MinutesPerDay bounds availability windows.
const MinutesPerDay = 24 * 60

// Window is one day's open interval in minutes from midnight. A zero
// Window means closed.
type Window struct {
	StartMin int
	EndMin   int
	Open     bool
}

// ResolveWindow returns the canonical open window for a weekday from a
// business's rule table. A missing or disabled rule means closed; a rule
// violating 0 <= start < end <= 1440 is treated as closed rather than
// surfaced as an error. Both the calendar and the public booking surface
// go through this one function.
func ResolveWindow(rules []*model.AvailabilityRule, weekday time.Weekday) Window {
	for _, r := range rules {
		if r == nil || r.Weekday != int(weekday) {
			continue
		}
		if !r.Enabled {
			return Window{}
		}
		if r.StartMin < 0 || r.EndMin > MinutesPerDay || r.StartMin >= r.EndMin {
			return Window{}
		}
		return Window{StartMin: r.StartMin, EndMin: r.EndMin, Open: true}
	}
	return Window{}
}

// Slots lists candidate start times ("HH:MM", 24-hour) for one date at
// 15-minute granularity: every t in [start, end-duration] stepping by 15.
// Closed days and durations longer than the window yield an empty list,
// never an error.
func Slots(date time.Time, rules []*model.AvailabilityRule, durationMinutes int) []string {
	if durationMinutes <= 0 {
		return nil
	}
	w := ResolveWindow(rules, date.Weekday())
	if !w.Open {
		return nil
	}

	last := w.EndMin - durationMinutes
	if last < w.StartMin {
		return nil
	}

	slots := make([]string, 0, (last-w.StartMin)/SlotStepMinutes+1)
	for t := w.StartMin; t <= last; t += SlotStepMinutes {
		slots = append(slots, formatMinutes(t))
	}
	return slots
}

// Interval is a half-open busy span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// SlotsExcluding is Slots minus any start time whose [start, start+duration)
// overlaps a busy interval. Busy intervals come from non-terminal bookings
// for the relevant team member.
func SlotsExcluding(date time.Time, rules []*model.AvailabilityRule, durationMinutes int, busy []Interval) []string {
	candidates := Slots(date, rules, durationMinutes)
	if len(candidates) == 0 || len(busy) == 0 {
		return candidates
	}

	dur := time.Duration(durationMinutes) * time.Minute
	free := candidates[:0]
	for _, s := range candidates {
		start, err := SlotTime(date, s)
		if err != nil {
			continue
		}
		if !overlapsAny(start, start.Add(dur), busy) {
			free = append(free, s)
		}
	}
	return free
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		// Half-open: [start,end) overlaps [b.Start,b.End) iff start < b.End && b.Start < end.
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

// SlotTime combines a calendar date with an "HH:MM" slot in the date's
// location.
func SlotTime(date time.Time, slot string) (time.Time, error) {
	var h, m int
	if _, err := fmt.Sscanf(slot, "%d:%d", &h, &m); err != nil {
		return time.Time{}, fmt.Errorf("invalid slot %q: %w", slot, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("invalid slot %q", slot)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}

func formatMinutes(t int) string {
	return fmt.Sprintf("%02d:%02d", t/60, t%60)
}
