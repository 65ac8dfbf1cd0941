package schedule

import "time"

// Defaults used by the calendar views.
const (
	DefaultGridStartHour = 8
	DefaultHourHeight    = 64
	MinBlockHeight       = 40
)

// Placement is the pixel offset and height of a booking block inside an
// hour-ruled calendar column.
type Placement struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Place maps a start time and duration to a column placement. Bookings
// starting before gridStartHour get a negative Top and ones running past
// the grid overflow; the grid's hour range is expected to cover business
// availability, so neither case is clipped.
func Place(start time.Time, durationMinutes, gridStartHour, hourHeight int) Placement {
	if hourHeight <= 0 {
		hourHeight = DefaultHourHeight
	}

	top := float64(start.Hour()-gridStartHour)*float64(hourHeight) +
		float64(start.Minute())/60.0*float64(hourHeight)

	height := float64(durationMinutes) / 60.0 * float64(hourHeight)
	if height < MinBlockHeight {
		height = MinBlockHeight
	}

	return Placement{Top: top, Height: height}
}
