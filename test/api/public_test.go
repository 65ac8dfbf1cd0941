package api_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublicProfile(t *testing.T) {
	resp := makePublicRequest("GET", fmt.Sprintf("/public/business/%s", businessSlug), nil)
	assert.True(t, resp.IsSuccess(), "Failed to get public profile: %s", resp.Message)

	biz, ok := resp.Data["business"].(map[string]interface{})
	assert.True(t, ok, "profile should include the business")
	assert.Equal(t, businessSlug, biz["slug"])

	availability, ok := resp.Data["availability"].([]interface{})
	assert.True(t, ok, "profile should include availability")
	assert.Len(t, availability, 7)
}

func TestPublicProfileUnknownSlug(t *testing.T) {
	resp := makePublicRequest("GET", "/public/business/no-such-salon", nil)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 404, resp.StatusCode)
}

func TestPublicServicesAndTeam(t *testing.T) {
	createTestService(t, 45, 2500)

	servicesResp := makePublicRequest("GET", fmt.Sprintf("/public/business/%s/services", businessSlug), nil)
	assert.True(t, servicesResp.IsSuccess(), "Failed to list public services: %s", servicesResp.Message)

	teamResp := makePublicRequest("GET", fmt.Sprintf("/public/business/%s/team", businessSlug), nil)
	assert.True(t, teamResp.IsSuccess(), "Failed to list public team: %s", teamResp.Message)
}

func TestPublicSlots(t *testing.T) {
	date := nextWeekday(time.Monday, 0).Format("2006-01-02")

	resp := makePublicRequest("GET", fmt.Sprintf("/public/business/%s/slots?date=%s&duration=60", businessSlug, date), nil)
	assert.True(t, resp.IsSuccess(), "Failed to list slots: %s", resp.Message)
	assert.Equal(t, date, resp.Data["date"])

	slots, ok := resp.Data["slots"].([]interface{})
	assert.True(t, ok, "response should carry slots")
	assert.NotEmpty(t, slots)
	// 09:00-17:00 on a 15 minute grid leaves 09:00 through 16:00 for an hour.
	assert.Equal(t, "09:00", slots[0])

	// Afternoon band trims the morning starts.
	bandResp := makePublicRequest("GET", fmt.Sprintf("/public/business/%s/slots?date=%s&duration=60&band=afternoon", businessSlug, date), nil)
	assert.True(t, bandResp.IsSuccess())
	bandSlots := bandResp.Data["slots"].([]interface{})
	assert.NotEmpty(t, bandSlots)
	assert.Equal(t, "12:00", bandSlots[0])

	badBandResp := makePublicRequest("GET", fmt.Sprintf("/public/business/%s/slots?date=%s&band=midnight", businessSlug, date), nil)
	assert.False(t, badBandResp.IsSuccess())
	assert.Equal(t, 400, badBandResp.StatusCode)
}

func TestPublicBookingCart(t *testing.T) {
	serviceA := createTestService(t, 60, 3000)
	serviceB := createTestService(t, 30, 1500)
	start := nextWeekday(time.Thursday, 14)

	resp := makePublicRequest("POST", "/public/bookings", map[string]interface{}{
		"business_slug": businessSlug,
		"service_ids":   []string{serviceA, serviceB},
		"client_name":   "Walk In",
		"client_email":  fmt.Sprintf("walkin_%d@example.com", time.Now().UnixNano()),
		"start_time":    start.Format(time.RFC3339),
	})
	assert.True(t, resp.IsSuccess(), "Failed to submit cart: %s", resp.Message)

	bookings, ok := resp.Data["bookings"].([]interface{})
	assert.True(t, ok, "response should carry bookings")
	assert.Len(t, bookings, 2)

	// Both lines share the start time.
	for _, raw := range bookings {
		b := raw.(map[string]interface{})
		assert.Equal(t, "pending", b["status"])
		lineStart, err := time.Parse(time.RFC3339, b["start_time"].(string))
		assert.NoError(t, err)
		assert.True(t, lineStart.Equal(start))
	}

	quote, ok := resp.Data["quote"].(map[string]interface{})
	assert.True(t, ok, "response should carry the quote")
	assert.Equal(t, float64(4500), quote["subtotal_pence"])
	assert.Equal(t, float64(450), quote["tax_pence"])
	assert.Equal(t, float64(4950), quote["total_pence"])
	assert.Equal(t, float64(90), quote["duration_minutes"])
}

func TestPublicBookingCartConflictIsAtomic(t *testing.T) {
	serviceA := createTestService(t, 60, 3000)
	serviceB := createTestService(t, 30, 1500)
	memberID := createTestTeamMember(t)
	start := nextWeekday(time.Friday, 14)

	blockerResp := createTestBooking(t, serviceA, start.Add(30*time.Minute), map[string]interface{}{
		"team_member_id": memberID,
	})
	assert.True(t, blockerResp.IsSuccess(), "Failed to create blocker: %s", blockerResp.Message)

	// The 60 minute line overlaps the blocker, so nothing may be created.
	cartResp := makePublicRequest("POST", "/public/bookings", map[string]interface{}{
		"business_slug":  businessSlug,
		"service_ids":    []string{serviceA, serviceB},
		"team_member_id": memberID,
		"client_name":    "Unlucky",
		"client_email":   fmt.Sprintf("unlucky_%d@example.com", time.Now().UnixNano()),
		"start_time":     start.Format(time.RFC3339),
	})
	assert.False(t, cartResp.IsSuccess())
	assert.Equal(t, 409, cartResp.StatusCode)

	listResp := makeRequest("GET", fmt.Sprintf("/bookings?team_member_id=%s", memberID), nil, authToken)
	assert.True(t, listResp.IsSuccess())
	assert.Len(t, listResp.List, 1, "conflicting cart must not create any line")
}

func TestPublicBookingCartDeduplicatesServices(t *testing.T) {
	serviceID := createTestService(t, 30, 2000)
	start := nextWeekday(time.Monday, 16)

	resp := makePublicRequest("POST", "/public/bookings", map[string]interface{}{
		"business_slug": businessSlug,
		"service_ids":   []string{serviceID, serviceID},
		"client_name":   "Double Tap",
		"client_email":  fmt.Sprintf("doubletap_%d@example.com", time.Now().UnixNano()),
		"start_time":    start.Format(time.RFC3339),
	})
	assert.True(t, resp.IsSuccess(), "Duplicate service IDs should collapse: %s", resp.Message)

	bookings, ok := resp.Data["bookings"].([]interface{})
	assert.True(t, ok, "response should carry bookings")
	assert.Len(t, bookings, 1, "the same service picked twice books once")

	quote, ok := resp.Data["quote"].(map[string]interface{})
	assert.True(t, ok, "response should carry the quote")
	assert.Equal(t, float64(2000), quote["subtotal_pence"])
	assert.Equal(t, float64(30), quote["duration_minutes"])
}

func TestPublicBookingUnknownService(t *testing.T) {
	start := nextWeekday(time.Monday, 15)

	resp := makePublicRequest("POST", "/public/bookings", map[string]interface{}{
		"business_slug": businessSlug,
		"service_ids":   []string{"00000000-0000-0000-0000-000000000000"},
		"client_name":   "Ghost",
		"client_email":  "ghost@example.com",
		"start_time":    start.Format(time.RFC3339),
	})
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 404, resp.StatusCode)
}
