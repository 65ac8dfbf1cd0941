package api_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationFeed(t *testing.T) {
	serviceID := createTestService(t, 30, 1500)
	start := nextWeekday(time.Thursday, 16)

	createResp := createTestBooking(t, serviceID, start, nil)
	assert.True(t, createResp.IsSuccess(), "Failed to create booking: %s", createResp.Message)

	// The in-app entry lands in the feed asynchronously.
	var feed TestResponse
	for i := 0; i < 10; i++ {
		feed = makeRequest("GET", "/notifications", nil, authToken)
		if feed.IsSuccess() && len(feed.List) > 0 {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	assert.True(t, feed.IsSuccess(), "Failed to get feed: %s", feed.Message)
	if len(feed.List) == 0 {
		t.Fatal("expected an in-app notification after booking")
	}

	entry := feed.List[0].(map[string]interface{})
	assert.Equal(t, "in_app", entry["channel"])
	notificationID := entry["id"].(string)

	readResp := makeRequest("POST", fmt.Sprintf("/notifications/%s/read", notificationID), nil, authToken)
	assert.True(t, readResp.IsSuccess(), "Failed to mark read: %s", readResp.Message)

	allResp := makeRequest("POST", "/notifications/read-all", nil, authToken)
	assert.True(t, allResp.IsSuccess(), "Failed to mark all read: %s", allResp.Message)

	unreadResp := makeRequest("GET", "/notifications?unread=true", nil, authToken)
	assert.True(t, unreadResp.IsSuccess())
	assert.Empty(t, unreadResp.List)
}
