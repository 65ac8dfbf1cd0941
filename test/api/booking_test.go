package api_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingFlow(t *testing.T) {
	serviceID := createTestService(t, 60, 3000)
	start := nextWeekday(time.Monday, 10)

	createResp := createTestBooking(t, serviceID, start, nil)
	assert.True(t, createResp.IsSuccess(), "Failed to create booking: %s", createResp.Message)
	bookingID := createResp.GetString("id")
	assert.NotEmpty(t, bookingID)
	assert.Equal(t, "pending", createResp.Data["status"])
	assert.Equal(t, float64(60), createResp.Data["duration_minutes"])
	assert.Equal(t, float64(3000), createResp.Data["price_pence"])

	// pending -> confirmed -> completed
	confirmResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s", bookingID), map[string]interface{}{
		"status": "confirmed",
	}, authToken)
	assert.True(t, confirmResp.IsSuccess(), "Failed to confirm booking: %s", confirmResp.Message)
	assert.Equal(t, "confirmed", confirmResp.Data["status"])

	completeResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s", bookingID), map[string]interface{}{
		"status": "completed",
	}, authToken)
	assert.True(t, completeResp.IsSuccess(), "Failed to complete booking: %s", completeResp.Message)

	// Completed is terminal.
	reopenResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s", bookingID), map[string]interface{}{
		"status": "pending",
	}, authToken)
	assert.False(t, reopenResp.IsSuccess())
	assert.Equal(t, 400, reopenResp.StatusCode)
}

func TestBookingSkipsPendingWhenConfirmed(t *testing.T) {
	serviceID := createTestService(t, 30, 2000)
	start := nextWeekday(time.Tuesday, 11)

	createResp := createTestBooking(t, serviceID, start, map[string]interface{}{
		"confirmed": true,
	})
	assert.True(t, createResp.IsSuccess(), "Failed to create booking: %s", createResp.Message)
	assert.Equal(t, "confirmed", createResp.Data["status"])
}

func TestBookingConflict(t *testing.T) {
	serviceID := createTestService(t, 60, 3000)
	memberID := createTestTeamMember(t)
	start := nextWeekday(time.Wednesday, 10)

	firstResp := createTestBooking(t, serviceID, start, map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.True(t, firstResp.IsSuccess(), "Failed to create first booking: %s", firstResp.Message)

	// Same member, overlapping window.
	overlapResp := createTestBooking(t, serviceID, start.Add(30*time.Minute), map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.False(t, overlapResp.IsSuccess())
	assert.Equal(t, 409, overlapResp.StatusCode)

	// A different member at the same time is fine.
	otherMemberID := createTestTeamMember(t)
	otherResp := createTestBooking(t, serviceID, start, map[string]interface{}{
		"team_member_id": otherMemberID,
	})
	assert.True(t, otherResp.IsSuccess(), "Parallel booking should succeed: %s", otherResp.Message)

	// Back to back with the first is fine too, the interval is half-open.
	adjacentResp := createTestBooking(t, serviceID, start.Add(60*time.Minute), map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.True(t, adjacentResp.IsSuccess(), "Adjacent booking should succeed: %s", adjacentResp.Message)
}

func TestBookingCancelledFreesTheSlot(t *testing.T) {
	serviceID := createTestService(t, 60, 3000)
	memberID := createTestTeamMember(t)
	start := nextWeekday(time.Thursday, 9)

	firstResp := createTestBooking(t, serviceID, start, map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.True(t, firstResp.IsSuccess(), "Failed to create booking: %s", firstResp.Message)
	bookingID := firstResp.GetString("id")

	cancelResp := makeRequest("POST", fmt.Sprintf("/bookings/%s/cancel", bookingID), map[string]interface{}{
		"reason": "client called to cancel",
	}, authToken)
	assert.True(t, cancelResp.IsSuccess(), "Failed to cancel booking: %s", cancelResp.Message)
	assert.Equal(t, "cancelled", cancelResp.Data["status"])
	assert.Equal(t, "client called to cancel", cancelResp.Data["cancel_reason"])

	retryResp := createTestBooking(t, serviceID, start, map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.True(t, retryResp.IsSuccess(), "Slot should be free after cancellation: %s", retryResp.Message)
}

func TestBookingReschedule(t *testing.T) {
	serviceID := createTestService(t, 60, 3000)
	memberID := createTestTeamMember(t)
	start := nextWeekday(time.Friday, 9)

	createResp := createTestBooking(t, serviceID, start, map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.True(t, createResp.IsSuccess(), "Failed to create booking: %s", createResp.Message)
	bookingID := createResp.GetString("id")

	blockerResp := createTestBooking(t, serviceID, start.Add(2*time.Hour), map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.True(t, blockerResp.IsSuccess(), "Failed to create blocker booking: %s", blockerResp.Message)

	// Moving onto the blocker conflicts.
	conflictResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s/reschedule", bookingID), map[string]interface{}{
		"start_time": start.Add(2 * time.Hour).Format(time.RFC3339),
	}, authToken)
	assert.False(t, conflictResp.IsSuccess())
	assert.Equal(t, 409, conflictResp.StatusCode)

	// Moving to a free window succeeds and keeps the duration.
	moveResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s/reschedule", bookingID), map[string]interface{}{
		"start_time": start.Add(4 * time.Hour).Format(time.RFC3339),
	}, authToken)
	assert.True(t, moveResp.IsSuccess(), "Failed to reschedule booking: %s", moveResp.Message)
	assert.Equal(t, float64(60), moveResp.Data["duration_minutes"])

	// Rescheduling onto its own old footprint is not a conflict.
	backResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s/reschedule", bookingID), map[string]interface{}{
		"start_time": start.Add(4*time.Hour + 15*time.Minute).Format(time.RFC3339),
	}, authToken)
	assert.True(t, backResp.IsSuccess(), "Self-overlap should not conflict: %s", backResp.Message)
}

func TestBookingCalendar(t *testing.T) {
	serviceID := createTestService(t, 90, 4500)
	start := nextWeekday(time.Monday, 13)

	createResp := createTestBooking(t, serviceID, start, nil)
	assert.True(t, createResp.IsSuccess(), "Failed to create booking: %s", createResp.Message)
	bookingID := createResp.GetString("id")

	date := start.Format("2006-01-02")
	calResp := makeRequest("GET", fmt.Sprintf("/bookings/calendar?date=%s&view=day", date), nil, authToken)
	assert.True(t, calResp.IsSuccess(), "Failed to get calendar: %s", calResp.Message)
	assert.Equal(t, date, calResp.Data["date"])
	assert.Equal(t, "day", calResp.Data["view"])

	entries, ok := calResp.Data["entries"].([]interface{})
	assert.True(t, ok, "calendar should return entries")

	var found map[string]interface{}
	for _, e := range entries {
		entry := e.(map[string]interface{})
		booking := entry["booking"].(map[string]interface{})
		if booking["id"] == bookingID {
			found = entry
			break
		}
	}
	if found == nil {
		t.Fatal("created booking missing from calendar")
	}

	// 13:00 with the grid starting at 08:00 puts the entry five hours down
	// at 64px per hour; 90 minutes is 96px tall.
	assert.Equal(t, float64(320), found["top_px"])
	assert.Equal(t, float64(96), found["height_px"])
}

func TestBookingListFilters(t *testing.T) {
	serviceID := createTestService(t, 30, 1500)
	memberID := createTestTeamMember(t)
	start := nextWeekday(time.Tuesday, 14)

	createResp := createTestBooking(t, serviceID, start, map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.True(t, createResp.IsSuccess(), "Failed to create booking: %s", createResp.Message)

	listResp := makeRequest("GET", fmt.Sprintf("/bookings?team_member_id=%s", memberID), nil, authToken)
	assert.True(t, listResp.IsSuccess())
	assert.Len(t, listResp.List, 1)

	statusResp := makeRequest("GET", "/bookings?status=pending", nil, authToken)
	assert.True(t, statusResp.IsSuccess())
	assert.NotEmpty(t, statusResp.List)
}

func TestBookingWithTeamRequiresMember(t *testing.T) {
	serviceID := createTestService(t, 30, 1500)
	start := nextWeekday(time.Wednesday, 15)

	resp := makeRequest("POST", "/bookings/with-team", map[string]interface{}{
		"service_id":   serviceID,
		"client_name":  "No Member",
		"client_email": "nomember@example.com",
		"start_time":   start.Format(time.RFC3339),
	}, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 400, resp.StatusCode)
}
