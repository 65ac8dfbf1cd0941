package schedule

import "time"

var zeroDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Band partitions slots for the time-of-day filter tabs.
type Band string

const (
	BandMorning   Band = "morning"   // [06:00, 12:00)
	BandAfternoon Band = "afternoon" // [12:00, 17:00)
	BandEvening   Band = "evening"   // [17:00, 22:00)
	BandNone      Band = ""
)

// SlotBand classifies an "HH:MM" slot. Slots in [00:00,06:00) and
// [22:00,24:00) belong to no band and are unreachable through the band
// filter; that dead zone is deliberate.
func SlotBand(slot string) Band {
	t, err := SlotTime(zeroDate, slot)
	if err != nil {
		return BandNone
	}
	min := t.Hour()*60 + t.Minute()
	switch {
	case min >= 360 && min < 720:
		return BandMorning
	case min >= 720 && min < 1020:
		return BandAfternoon
	case min >= 1020 && min < 1320:
		return BandEvening
	default:
		return BandNone
	}
}

// FilterByBand keeps only slots in the given band; an empty band keeps
// everything.
func FilterByBand(slots []string, band Band) []string {
	if band == BandNone {
		return slots
	}
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if SlotBand(s) == band {
			out = append(out, s)
		}
	}
	return out
}

// ParseBand validates a band query parameter.
func ParseBand(s string) (Band, bool) {
	switch Band(s) {
	case BandNone, BandMorning, BandAfternoon, BandEvening:
		return Band(s), true
	default:
		return BandNone, false
	}
}
