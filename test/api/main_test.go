package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	baseURL       = "http://localhost:8080/api/v1"
	publicBaseURL = "http://localhost:8080"

	authToken    string
	businessID   string
	businessSlug string
)

// APIResponse represents the API response structure
type APIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TestResponse wraps the API response for testing
type TestResponse struct {
	Status     string
	StatusCode int
	Message    string
	Data       map[string]interface{}
	List       []interface{}
	RawData    string
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

func (r TestResponse) GetString(key string) string {
	if r.Data == nil {
		return ""
	}
	if v, ok := r.Data[key].(string); ok {
		return v
	}
	return ""
}

func checkAPIServer() error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(publicBaseURL + "/health/live")
	if err != nil {
		return fmt.Errorf("API server not reachable: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func TestMain(m *testing.M) {
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		if err := checkAPIServer(); err != nil {
			if i == maxRetries-1 {
				fmt.Printf("Error: %v\nMake sure the API server is running at %s\n", err, publicBaseURL)
				os.Exit(1)
			}
			fmt.Printf("Waiting for API server (attempt %d/%d)...\n", i+1, maxRetries)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}

	setupAuth()
	setupAvailability()

	os.Exit(m.Run())
}

// setupAuth registers a fresh owner account so each run is isolated.
func setupAuth() {
	email := fmt.Sprintf("owner_%d@example.com", time.Now().UnixNano())

	registerResp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"email":         email,
		"name":          "Test Owner",
		"password":      "password123",
		"business_name": uniqueName("Test Salon"),
	}, "")
	if !registerResp.IsSuccess() {
		fmt.Printf("Failed to register: %s\n", registerResp.Message)
		os.Exit(1)
	}

	if biz, ok := registerResp.Data["business"].(map[string]interface{}); ok {
		businessID, _ = biz["id"].(string)
		businessSlug, _ = biz["slug"].(string)
	}
	if businessSlug == "" {
		fmt.Println("Failed to get business slug from registration")
		os.Exit(1)
	}

	loginResp := makeRequest("POST", "/auth/login", map[string]string{
		"email":    email,
		"password": "password123",
	}, "")
	if !loginResp.IsSuccess() {
		fmt.Printf("Failed to login: %s\n", loginResp.Message)
		os.Exit(1)
	}

	authToken = loginResp.GetString("access_token")
	if authToken == "" {
		fmt.Println("Failed to get auth token")
		os.Exit(1)
	}
}

// setupAvailability opens every weekday 09:00-17:00 so slot and public
// booking tests have room to work in.
func setupAvailability() {
	slots := make([]map[string]interface{}, 0, 7)
	for day := 0; day < 7; day++ {
		slots = append(slots, map[string]interface{}{
			"day":       day,
			"start_min": 9 * 60,
			"end_min":   17 * 60,
		})
	}

	resp := makeRequest("PUT", "/business/availability", map[string]interface{}{
		"slots": slots,
	}, authToken)
	if !resp.IsSuccess() {
		fmt.Printf("Failed to set availability: %s\n", resp.Message)
		os.Exit(1)
	}
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	return doRequest(method, baseURL+path, body, token)
}

// makePublicRequest hits the unauthenticated surface mounted at the root.
func makePublicRequest(method, path string, body interface{}) TestResponse {
	return doRequest(method, publicBaseURL+path, body, "")
}

func doRequest(method, url string, body interface{}, token string) TestResponse {
	var reqBody io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	response, err := client.Do(req)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return TestResponse{Status: "error", StatusCode: response.StatusCode, Message: err.Error()}
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return TestResponse{
			Status:     "error",
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("failed to parse response: %s\nraw: %s", err.Error(), string(respBody)),
		}
	}

	testResp := TestResponse{
		Status:     apiResp.Status,
		StatusCode: response.StatusCode,
		Message:    apiResp.Message,
		RawData:    string(apiResp.Data),
	}

	if len(apiResp.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(apiResp.Data, &data); err == nil {
			testResp.Data = data
		} else {
			var list []interface{}
			if err := json.Unmarshal(apiResp.Data, &list); err == nil {
				testResp.List = list
			}
		}
	}

	return testResp
}
