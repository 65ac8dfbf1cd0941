package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookline/booking-api/internal/model"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		from, to model.BookingStatus
		ok       bool
	}{
		{model.BookingStatusPending, model.BookingStatusConfirmed, true},
		{model.BookingStatusConfirmed, model.BookingStatusCompleted, true},
		{model.BookingStatusPending, model.BookingStatusCancelled, true},
		{model.BookingStatusConfirmed, model.BookingStatusCancelled, true},
		{model.BookingStatusPending, model.BookingStatusPending, true},

		{model.BookingStatusPending, model.BookingStatusCompleted, false},
		{model.BookingStatusConfirmed, model.BookingStatusPending, false},
		{model.BookingStatusCompleted, model.BookingStatusConfirmed, false},
		{model.BookingStatusCompleted, model.BookingStatusCancelled, false},
		{model.BookingStatusCancelled, model.BookingStatusConfirmed, false},
		{model.BookingStatusCancelled, model.BookingStatusPending, false},
		{model.BookingStatusPending, model.BookingStatus("archived"), false},
	}

	for _, tc := range cases {
		err := validateTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s should be allowed", tc.from, tc.to)
		} else {
			assert.Error(t, err, "%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, model.BookingStatusCompleted.IsTerminal())
	assert.True(t, model.BookingStatusCancelled.IsTerminal())
	assert.False(t, model.BookingStatusPending.IsTerminal())
	assert.False(t, model.BookingStatusConfirmed.IsTerminal())
}
