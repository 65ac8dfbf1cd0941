package api_test

import (
	"fmt"
	"testing"
	"time"
)

// Helper function to generate unique names
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

// nextWeekday returns the next occurrence of the weekday at the given
// hour, at least a week out so tests never race the reminder window.
func nextWeekday(day time.Weekday, hour int) time.Time {
	t := time.Now().UTC().AddDate(0, 0, 7)
	for t.Weekday() != day {
		t = t.AddDate(0, 0, 1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, time.UTC)
}

// Helper to create a test service
func createTestService(t *testing.T, durationMinutes int, pricePence int64) string {
	resp := makeRequest("POST", "/services", map[string]interface{}{
		"name":             uniqueName("Haircut"),
		"duration_minutes": durationMinutes,
		"price_pence":      pricePence,
	}, authToken)
	if !resp.IsSuccess() {
		t.Fatalf("Failed to create test service: %s", resp.Message)
	}
	return resp.GetString("id")
}

// Helper to create a test team member
func createTestTeamMember(t *testing.T) string {
	resp := makeRequest("POST", "/team-members", map[string]interface{}{
		"name":      uniqueName("Stylist"),
		"email":     fmt.Sprintf("stylist_%d@example.com", time.Now().UnixNano()),
		"color_tag": "#3b82f6",
	}, authToken)
	if !resp.IsSuccess() {
		t.Fatalf("Failed to create test team member: %s", resp.Message)
	}
	return resp.GetString("id")
}

// Helper to create a test booking
func createTestBooking(t *testing.T, serviceID string, start time.Time, extra map[string]interface{}) TestResponse {
	body := map[string]interface{}{
		"service_id":   serviceID,
		"client_name":  uniqueName("Client"),
		"client_email": fmt.Sprintf("client_%d@example.com", time.Now().UnixNano()),
		"start_time":   start.Format(time.RFC3339),
	}
	for k, v := range extra {
		body[k] = v
	}
	return makeRequest("POST", "/bookings", body, authToken)
}
