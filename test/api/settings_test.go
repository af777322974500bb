package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicScheduleMessage(t *testing.T) {
	resp := makeRequest(http.MethodGet, "/api/settings/public/pickup-schedule-message", nil, "")
	switch resp.StatusCode {
	case http.StatusNotFound:
		assert.Equal(t, "error", resp.String("status"))
	case http.StatusOK:
		assert.Contains(t, resp.Body, "value")
	default:
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, resp.Raw)
	}
}

func TestPutSettingsRejectsNonText(t *testing.T) {
	requireAdmin(t)
	resp := makeRequest(http.MethodPut, "/api/settings", map[string]interface{}{"x": 5}, authToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
