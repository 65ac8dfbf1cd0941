package api_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// firstCustomerID returns any customer of the business, creating one via
// a public booking if none exist yet.
func firstCustomerID(t *testing.T) string {
	listResp := makeRequest("GET", "/customers", nil, authToken)
	if listResp.IsSuccess() && len(listResp.List) > 0 {
		c := listResp.List[0].(map[string]interface{})
		return c["id"].(string)
	}

	serviceID := createTestService(t, 30, 1500)
	start := nextWeekday(time.Tuesday, 9)
	resp := makePublicRequest("POST", "/public/bookings", map[string]interface{}{
		"business_slug": businessSlug,
		"service_ids":   []string{serviceID},
		"client_name":   uniqueName("Chat Client"),
		"client_email":  fmt.Sprintf("chat_%d@example.com", time.Now().UnixNano()),
		"start_time":    start.Format(time.RFC3339),
	})
	if !resp.IsSuccess() {
		t.Fatalf("Failed to create customer via public booking: %s", resp.Message)
	}

	listResp = makeRequest("GET", "/customers", nil, authToken)
	if !listResp.IsSuccess() || len(listResp.List) == 0 {
		t.Fatal("public booking should have created a customer")
	}
	c := listResp.List[0].(map[string]interface{})
	return c["id"].(string)
}

func TestConversationFlow(t *testing.T) {
	customerID := firstCustomerID(t)

	startResp := makeRequest("POST", "/conversations", map[string]interface{}{
		"customer_id": customerID,
	}, authToken)
	assert.True(t, startResp.IsSuccess(), "Failed to start conversation: %s", startResp.Message)
	conversationID := startResp.GetString("id")
	assert.NotEmpty(t, conversationID)

	// Starting again returns the same thread.
	againResp := makeRequest("POST", "/conversations", map[string]interface{}{
		"customer_id": customerID,
	}, authToken)
	assert.True(t, againResp.IsSuccess())
	assert.Equal(t, conversationID, againResp.GetString("id"))

	postResp := makeRequest("POST", fmt.Sprintf("/conversations/%s/messages", conversationID), map[string]interface{}{
		"body": "Hi, see you Thursday!",
	}, authToken)
	assert.True(t, postResp.IsSuccess(), "Failed to post message: %s", postResp.Message)
	assert.Equal(t, "business", postResp.Data["sender"])

	messagesResp := makeRequest("GET", fmt.Sprintf("/conversations/%s/messages", conversationID), nil, authToken)
	assert.True(t, messagesResp.IsSuccess())
	assert.NotEmpty(t, messagesResp.List)

	listResp := makeRequest("GET", "/conversations", nil, authToken)
	assert.True(t, listResp.IsSuccess())
	assert.NotEmpty(t, listResp.List)
	thread := listResp.List[0].(map[string]interface{})
	assert.Equal(t, "Hi, see you Thursday!", thread["last_message"])

	readResp := makeRequest("POST", fmt.Sprintf("/conversations/%s/read", conversationID), nil, authToken)
	assert.True(t, readResp.IsSuccess())
}

func TestConversationUnknownCustomer(t *testing.T) {
	resp := makeRequest("POST", "/conversations", map[string]interface{}{
		"customer_id": "00000000-0000-0000-0000-000000000000",
	}, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 404, resp.StatusCode)
}
