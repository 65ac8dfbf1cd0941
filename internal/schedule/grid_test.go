package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlace_HalfHour(t *testing.T) {
	start := time.Date(2026, time.January, 26, 10, 30, 0, 0, time.UTC)

	p := Place(start, 30, 8, 64)
	assert.InDelta(t, 160, p.Top, 0.001)
	assert.InDelta(t, 40, p.Height, 0.001, "30-minute block is floored to the minimum height")
}

func TestPlace_MinHeightFloor(t *testing.T) {
	start := time.Date(2026, time.January, 26, 9, 0, 0, 0, time.UTC)

	p := Place(start, 15, 8, 64)
	assert.InDelta(t, 64, p.Top, 0.001)
	assert.InDelta(t, MinBlockHeight, p.Height, 0.001)

	p = Place(start, 120, 8, 64)
	assert.InDelta(t, 128, p.Height, 0.001)
}

func TestPlace_BeforeGridStart(t *testing.T) {
	start := time.Date(2026, time.January, 26, 7, 0, 0, 0, time.UTC)

	// Not clipped: an early booking renders above the grid.
	p := Place(start, 60, 8, 64)
	assert.InDelta(t, -64, p.Top, 0.001)
}

func TestPlace_DefaultHourHeight(t *testing.T) {
	start := time.Date(2026, time.January, 26, 9, 0, 0, 0, time.UTC)

	p := Place(start, 60, 8, 0)
	assert.InDelta(t, 64, p.Top, 0.001)
	assert.InDelta(t, 64, p.Height, 0.001)
}
