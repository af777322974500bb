package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// The suite runs against a live server; set LABFETCH_E2E_URL (for example
// http://localhost:3001) to enable it. Admin flows additionally need
// LABFETCH_E2E_USERNAME and LABFETCH_E2E_PASSWORD of a seeded admin.
var (
	baseURL   string
	authToken string
	client    = &http.Client{Timeout: 10 * time.Second}
)

type TestResponse struct {
	StatusCode int
	Body       map[string]interface{}
	Raw        []byte
}

func (r TestResponse) String(key string) string {
	if v, ok := r.Body[key].(string); ok {
		return v
	}
	return ""
}

func (r TestResponse) Object(key string) map[string]interface{} {
	if v, ok := r.Body[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func checkAPIServer() error {
	resp, err := client.Get(baseURL + "/health/live")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func TestMain(m *testing.M) {
	baseURL = strings.TrimRight(os.Getenv("LABFETCH_E2E_URL"), "/")
	if baseURL == "" {
		fmt.Println("LABFETCH_E2E_URL not set, skipping end-to-end suite")
		os.Exit(0)
	}

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		err := checkAPIServer()
		if err == nil {
			break
		}
		if i == maxRetries-1 {
			fmt.Printf("Error: %v\nMake sure the API server is running at %s\n", err, baseURL)
			os.Exit(1)
		}
		fmt.Printf("Waiting for API server (attempt %d/%d)...\n", i+1, maxRetries)
		time.Sleep(2 * time.Second)
	}

	setupAuth()
	os.Exit(m.Run())
}

func setupAuth() {
	username, password := os.Getenv("LABFETCH_E2E_USERNAME"), os.Getenv("LABFETCH_E2E_PASSWORD")
	if username == "" || password == "" {
		return
	}
	resp := makeRequest(http.MethodPost, "/api/admin/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Failed to login: %s\n", resp.Raw)
		os.Exit(1)
	}
	authToken = resp.String("token")
}

func requireAdmin(t *testing.T) {
	t.Helper()
	if authToken == "" {
		t.Skip("LABFETCH_E2E_USERNAME/LABFETCH_E2E_PASSWORD not set")
	}
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return TestResponse{Raw: []byte(err.Error())}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return TestResponse{Raw: []byte(err.Error())}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := TestResponse{StatusCode: resp.StatusCode, Raw: raw}
	_ = json.Unmarshal(raw, &out.Body)
	return out
}
