package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessProfile(t *testing.T) {
	getResp := makeRequest("GET", "/business", nil, authToken)
	assert.True(t, getResp.IsSuccess(), "Failed to get business: %s", getResp.Message)
	assert.Equal(t, businessSlug, getResp.Data["slug"])
	assert.Equal(t, "active", getResp.Data["status"])

	updateResp := makeRequest("PATCH", "/business", map[string]interface{}{
		"description": "Cuts and colour",
		"phone":       "+441234567890",
	}, authToken)
	assert.True(t, updateResp.IsSuccess(), "Failed to update business: %s", updateResp.Message)

	verifyResp := makeRequest("GET", "/business", nil, authToken)
	assert.True(t, verifyResp.IsSuccess())
	assert.Equal(t, "Cuts and colour", verifyResp.Data["description"])
}

func TestAvailabilityRoundTrip(t *testing.T) {
	// Weekends closed, weekdays 10:00-16:00.
	updateResp := makeRequest("PUT", "/business/availability", map[string]interface{}{
		"slots": []map[string]interface{}{
			{"day": 1, "start_min": 600, "end_min": 960},
			{"day": 2, "start_min": 600, "end_min": 960},
			{"day": 3, "start_min": 600, "end_min": 960},
			{"day": 4, "start_min": 600, "end_min": 960},
			{"day": 5, "start_min": 600, "end_min": 960},
		},
	}, authToken)
	assert.True(t, updateResp.IsSuccess(), "Failed to update availability: %s", updateResp.Message)

	getResp := makeRequest("GET", "/business/availability", nil, authToken)
	assert.True(t, getResp.IsSuccess())
	slots, ok := getResp.Data["slots"].([]interface{})
	assert.True(t, ok, "availability should expose slots")
	assert.Len(t, slots, 5)

	// Restore the full week for the rest of the suite.
	setupAvailability()
}

func TestAvailabilityRejectsInvalidWindow(t *testing.T) {
	resp := makeRequest("PUT", "/business/availability", map[string]interface{}{
		"slots": []map[string]interface{}{
			{"day": 1, "start_min": 960, "end_min": 600},
		},
	}, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 400, resp.StatusCode)
}

func TestAvailabilityRejectsDuplicateDays(t *testing.T) {
	resp := makeRequest("PUT", "/business/availability", map[string]interface{}{
		"slots": []map[string]interface{}{
			{"day": 1, "start_min": 540, "end_min": 1020},
			{"day": 1, "start_min": 600, "end_min": 960},
		},
	}, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 400, resp.StatusCode)
}
