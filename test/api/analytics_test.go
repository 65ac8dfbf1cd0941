package api_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalyticsSummary(t *testing.T) {
	serviceID := createTestService(t, 60, 5000)
	start := nextWeekday(time.Wednesday, 16)

	createResp := createTestBooking(t, serviceID, start, map[string]interface{}{
		"confirmed": true,
	})
	assert.True(t, createResp.IsSuccess(), "Failed to create booking: %s", createResp.Message)

	from := time.Now().UTC().Format("2006-01-02")
	to := time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02")

	resp := makeRequest("GET", fmt.Sprintf("/analytics/summary?from=%s&to=%s", from, to), nil, authToken)
	assert.True(t, resp.IsSuccess(), "Failed to get summary: %s", resp.Message)

	total, ok := resp.Data["total_bookings"].(float64)
	assert.True(t, ok, "summary should carry total_bookings")
	assert.GreaterOrEqual(t, total, float64(1))

	byStatus, ok := resp.Data["bookings_by_status"].(map[string]interface{})
	assert.True(t, ok, "summary should break bookings down by status")
	assert.GreaterOrEqual(t, byStatus["confirmed"], float64(1))

	// Only confirmed and completed bookings count as revenue.
	revenue, ok := resp.Data["revenue_pence"].(float64)
	assert.True(t, ok, "summary should carry revenue")
	assert.GreaterOrEqual(t, revenue, float64(5000))

	_, ok = resp.Data["top_services"].([]interface{})
	assert.True(t, ok, "summary should carry top services")
}

func TestAnalyticsSummaryRejectsBadRange(t *testing.T) {
	resp := makeRequest("GET", "/analytics/summary?from=yesterday", nil, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 400, resp.StatusCode)
}
