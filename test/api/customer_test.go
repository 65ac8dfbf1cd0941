package api_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCustomerList(t *testing.T) {
	customerID := firstCustomerID(t)

	listResp := makeRequest("GET", "/customers", nil, authToken)
	assert.True(t, listResp.IsSuccess(), "Failed to list customers: %s", listResp.Message)
	assert.NotEmpty(t, listResp.List)

	getResp := makeRequest("GET", fmt.Sprintf("/customers/%s", customerID), nil, authToken)
	assert.True(t, getResp.IsSuccess(), "Failed to get customer: %s", getResp.Message)
	assert.Equal(t, customerID, getResp.GetString("id"))
	assert.NotEmpty(t, getResp.GetString("email"))
}

func TestCustomerSearch(t *testing.T) {
	resp := makeRequest("GET", "/customers?search=no-customer-matches-this", nil, authToken)
	assert.True(t, resp.IsSuccess())
	assert.Empty(t, resp.List)
}

func TestCustomerUpsertByEmail(t *testing.T) {
	serviceID := createTestService(t, 30, 1500)
	email := fmt.Sprintf("regular_%d@example.com", time.Now().UnixNano())

	book := func(start time.Time) {
		resp := makePublicRequest("POST", "/public/bookings", map[string]interface{}{
			"business_slug": businessSlug,
			"service_ids":   []string{serviceID},
			"client_name":   "Regular Client",
			"client_email":  email,
			"start_time":    start.Format(time.RFC3339),
		})
		assert.True(t, resp.IsSuccess(), "Failed to book: %s", resp.Message)
	}

	book(nextWeekday(time.Friday, 16))
	count := len(makeRequest("GET", "/customers", nil, authToken).List)

	// Re-booking with the same email must not mint a second customer.
	book(nextWeekday(time.Friday, 16).Add(30 * time.Minute))
	after := makeRequest("GET", "/customers", nil, authToken)
	assert.True(t, after.IsSuccess())
	assert.Equal(t, count, len(after.List))
}
