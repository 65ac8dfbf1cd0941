package api_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceFlow(t *testing.T) {
	name := uniqueName("Beard Trim")

	createResp := makeRequest("POST", "/services", map[string]interface{}{
		"name":             name,
		"description":      "Quick tidy up",
		"duration_minutes": 30,
		"price_pence":      1500,
	}, authToken)
	assert.True(t, createResp.IsSuccess(), "Failed to create service: %s", createResp.Message)
	serviceID := createResp.GetString("id")
	assert.NotEmpty(t, serviceID)

	getResp := makeRequest("GET", fmt.Sprintf("/services/%s", serviceID), nil, authToken)
	assert.True(t, getResp.IsSuccess())
	assert.Equal(t, name, getResp.Data["name"])
	assert.Equal(t, float64(30), getResp.Data["duration_minutes"])
	assert.Equal(t, float64(1500), getResp.Data["price_pence"])
	assert.Equal(t, "active", getResp.Data["status"])

	listResp := makeRequest("GET", "/services", nil, authToken)
	assert.True(t, listResp.IsSuccess())
	assert.NotEmpty(t, listResp.List)

	newName := uniqueName("Beard Sculpt")
	updateResp := makeRequest("PATCH", fmt.Sprintf("/services/%s", serviceID), map[string]interface{}{
		"name":        newName,
		"price_pence": 1800,
	}, authToken)
	assert.True(t, updateResp.IsSuccess(), "Failed to update service: %s", updateResp.Message)

	verifyResp := makeRequest("GET", fmt.Sprintf("/services/%s", serviceID), nil, authToken)
	assert.True(t, verifyResp.IsSuccess())
	assert.Equal(t, newName, verifyResp.Data["name"])
	assert.Equal(t, float64(1800), verifyResp.Data["price_pence"])

	// Archiving keeps the service readable but out of the default listing.
	archiveResp := makeRequest("PATCH", fmt.Sprintf("/services/%s", serviceID), map[string]interface{}{
		"status": "archived",
	}, authToken)
	assert.True(t, archiveResp.IsSuccess(), "Failed to archive service: %s", archiveResp.Message)

	archivedResp := makeRequest("GET", fmt.Sprintf("/services/%s", serviceID), nil, authToken)
	assert.True(t, archivedResp.IsSuccess())
	assert.Equal(t, "archived", archivedResp.Data["status"])

	deleteResp := makeRequest("DELETE", fmt.Sprintf("/services/%s", serviceID), nil, authToken)
	assert.True(t, deleteResp.IsSuccess(), "Failed to delete service: %s", deleteResp.Message)

	goneResp := makeRequest("GET", fmt.Sprintf("/services/%s", serviceID), nil, authToken)
	assert.False(t, goneResp.IsSuccess())
	assert.Equal(t, 404, goneResp.StatusCode)
}

func TestServiceDepositValidation(t *testing.T) {
	resp := makeRequest("POST", "/services", map[string]interface{}{
		"name":             uniqueName("Colour"),
		"duration_minutes": 90,
		"price_pence":      6000,
		"deposit_required": true,
	}, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 400, resp.StatusCode)
}
