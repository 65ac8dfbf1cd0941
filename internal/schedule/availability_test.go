package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline/booking-api/internal/model"
)

func rule(weekday int, enabled bool, start, end int) *model.AvailabilityRule {
	return &model.AvailabilityRule{Weekday: weekday, Enabled: enabled, StartMin: start, EndMin: end}
}

// 2026-01-26 is a Monday.
var monday = time.Date(2026, time.January, 26, 0, 0, 0, 0, time.UTC)

func TestResolveWindow(t *testing.T) {
	rules := []*model.AvailabilityRule{
		rule(1, true, 540, 1200),
		rule(2, false, 540, 1200),
		rule(3, true, 1200, 540), // inverted, treated as closed
	}

	w := ResolveWindow(rules, time.Monday)
	assert.True(t, w.Open)
	assert.Equal(t, 540, w.StartMin)
	assert.Equal(t, 1200, w.EndMin)

	assert.False(t, ResolveWindow(rules, time.Tuesday).Open, "disabled rule is closed")
	assert.False(t, ResolveWindow(rules, time.Wednesday).Open, "invalid window is closed")
	assert.False(t, ResolveWindow(rules, time.Sunday).Open, "missing rule is closed")
	assert.False(t, ResolveWindow(nil, time.Monday).Open, "empty table is closed")
}

func TestSlots_FullDay(t *testing.T) {
	rules := []*model.AvailabilityRule{rule(1, true, 540, 1200)} // 09:00-20:00

	slots := Slots(monday, rules, 60)
	require.Len(t, slots, 41)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "19:00", slots[len(slots)-1])
}

func TestSlots_StepAndLastSlotFit(t *testing.T) {
	rules := []*model.AvailabilityRule{rule(1, true, 600, 750)} // 10:00-12:30

	slots := Slots(monday, rules, 45)
	require.NotEmpty(t, slots)

	for i, s := range slots {
		st, err := SlotTime(monday, s)
		require.NoError(t, err)
		offset := st.Hour()*60 + st.Minute() - 600
		assert.Equal(t, 0, offset%SlotStepMinutes, "slot %d not on the 15-minute grid", i)
		assert.LessOrEqual(t, offset+45, 150, "slot %d overruns closing time", i)
	}
	assert.Equal(t, "11:45", slots[len(slots)-1])
}

func TestSlots_DurationLongerThanWindow(t *testing.T) {
	rules := []*model.AvailabilityRule{rule(1, true, 540, 570)} // 30-minute window
	assert.Empty(t, Slots(monday, rules, 60))
}

func TestSlots_DisabledDay(t *testing.T) {
	rules := []*model.AvailabilityRule{rule(1, false, 0, 1440)}
	for _, dur := range []int{1, 15, 60, 480} {
		assert.Empty(t, Slots(monday, rules, dur))
	}
}

func TestSlots_NonPositiveDuration(t *testing.T) {
	rules := []*model.AvailabilityRule{rule(1, true, 540, 1200)}
	assert.Empty(t, Slots(monday, rules, 0))
	assert.Empty(t, Slots(monday, rules, -15))
}

func TestSlotsExcluding_RemovesOverlaps(t *testing.T) {
	rules := []*model.AvailabilityRule{rule(1, true, 540, 660)} // 09:00-11:00

	busyStart := time.Date(2026, time.January, 26, 9, 30, 0, 0, time.UTC)
	busy := []Interval{{Start: busyStart, End: busyStart.Add(30 * time.Minute)}}

	slots := SlotsExcluding(monday, rules, 30, busy)
	// 09:00 ends exactly at 09:30 (half-open, no overlap); 09:15 through
	// 09:45 collide; 10:00 starts at the busy end and is free again.
	assert.Equal(t, []string{"09:00", "10:00", "10:15", "10:30"}, slots)
}

func TestSlotsExcluding_NoBusyKeepsAll(t *testing.T) {
	rules := []*model.AvailabilityRule{rule(1, true, 540, 1200)}
	assert.Equal(t, Slots(monday, rules, 60), SlotsExcluding(monday, rules, 60, nil))
}

func TestSlotTime(t *testing.T) {
	st, err := SlotTime(monday, "09:15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 26, 9, 15, 0, 0, time.UTC), st)

	_, err = SlotTime(monday, "25:00")
	assert.Error(t, err)
	_, err = SlotTime(monday, "garbage")
	assert.Error(t, err)
}

func TestSlotBand(t *testing.T) {
	cases := map[string]Band{
		"06:00": BandMorning,
		"06:30": BandMorning,
		"11:45": BandMorning,
		"12:00": BandAfternoon,
		"16:45": BandAfternoon,
		"17:00": BandEvening,
		"21:45": BandEvening,
		"22:00": BandNone,
		"23:00": BandNone,
		"00:00": BandNone,
		"05:45": BandNone,
	}
	for slot, want := range cases {
		assert.Equal(t, want, SlotBand(slot), "slot %s", slot)
	}
}

func TestFilterByBand(t *testing.T) {
	slots := []string{"05:45", "06:00", "12:00", "17:00", "23:00"}
	assert.Equal(t, []string{"06:00"}, FilterByBand(slots, BandMorning))
	assert.Equal(t, []string{"12:00"}, FilterByBand(slots, BandAfternoon))
	assert.Equal(t, []string{"17:00"}, FilterByBand(slots, BandEvening))
	assert.Equal(t, slots, FilterByBand(slots, BandNone))
}

func TestParseBand(t *testing.T) {
	for _, ok := range []string{"", "morning", "afternoon", "evening"} {
		_, valid := ParseBand(ok)
		assert.True(t, valid, ok)
	}
	_, valid := ParseBand("midnight")
	assert.False(t, valid)
}
