package api_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTeamMemberFlow(t *testing.T) {
	name := uniqueName("Sam Stylist")

	createResp := makeRequest("POST", "/team-members", map[string]interface{}{
		"name":      name,
		"email":     fmt.Sprintf("sam_%d@example.com", time.Now().UnixNano()),
		"color_tag": "#ef4444",
		"role":      "Senior Stylist",
	}, authToken)
	assert.True(t, createResp.IsSuccess(), "Failed to create team member: %s", createResp.Message)
	memberID := createResp.GetString("id")
	assert.NotEmpty(t, memberID)

	getResp := makeRequest("GET", fmt.Sprintf("/team-members/%s", memberID), nil, authToken)
	assert.True(t, getResp.IsSuccess())
	assert.Equal(t, name, getResp.Data["name"])
	assert.Equal(t, "#ef4444", getResp.Data["color_tag"])
	assert.Equal(t, "active", getResp.Data["status"])

	updateResp := makeRequest("PATCH", fmt.Sprintf("/team-members/%s", memberID), map[string]interface{}{
		"status": "inactive",
	}, authToken)
	assert.True(t, updateResp.IsSuccess(), "Failed to update team member: %s", updateResp.Message)

	verifyResp := makeRequest("GET", fmt.Sprintf("/team-members/%s", memberID), nil, authToken)
	assert.True(t, verifyResp.IsSuccess())
	assert.Equal(t, "inactive", verifyResp.Data["status"])

	deleteResp := makeRequest("DELETE", fmt.Sprintf("/team-members/%s", memberID), nil, authToken)
	assert.True(t, deleteResp.IsSuccess(), "Failed to delete team member: %s", deleteResp.Message)
}

func TestTeamMemberRejectsBadColorTag(t *testing.T) {
	resp := makeRequest("POST", "/team-members", map[string]interface{}{
		"name":      uniqueName("Pat"),
		"color_tag": "red",
	}, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 400, resp.StatusCode)
}
