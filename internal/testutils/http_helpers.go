package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/qa-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup() so callers don't need to manually close the server.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// CleanupResponseBody registers a cleanup function to close the response body
// to prevent resource leaks.
func CleanupResponseBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp != nil && resp.Body != nil {
		t.Cleanup(func() {
			if err := resp.Body.Close(); err != nil {
				t.Logf("Warning: failed to close response body: %v", err)
			}
		})
	}
}

// ExecuteRequest sends a request with a raw body to the test server. An empty
// body sends no payload. The response body is closed when the test ends.
func ExecuteRequest(t *testing.T, server *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err, "Failed to create request")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute %s %s", method, path)
	CleanupResponseBody(t, resp)
	return resp
}

// ExecuteJSONRequest marshals body and sends it to the test server.
func ExecuteJSONRequest(t *testing.T, server *httptest.Server, method, path string, body interface{}) *http.Response {
	t.Helper()

	bodyBytes, err := json.Marshal(body)
	require.NoError(t, err, "Failed to marshal request body")
	return ExecuteRequest(t, server, method, path, string(bodyBytes))
}

// ExecuteInvalidJSONRequest sends a malformed JSON body to test error handling.
func ExecuteInvalidJSONRequest(t *testing.T, server *httptest.Server, method, path string) *http.Response {
	t.Helper()
	return ExecuteRequest(t, server, method, path, `{"invalid_json": true,`)
}

// DecodeJSONResponse checks the status code and decodes the body into T.
func DecodeJSONResponse[T any](t *testing.T, resp *http.Response, expectedStatus int) T {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	require.Equal(t, expectedStatus, resp.StatusCode, "unexpected status, body: %s", string(body))

	var v T
	require.NoError(t, json.Unmarshal(body, &v), "Failed to unmarshal response: %s", string(body))
	return v
}

// AssertErrorResponse checks that a response carries the expected status
// code and an error body whose message contains expectedErrorMsgPart.
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedErrorMsgPart string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode,
		"Expected status code %d but got %d", expectedStatus, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	if expectedStatus == http.StatusNoContent {
		assert.Empty(t, body, "Expected empty body for 204 No Content")
		return
	}

	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), "Failed to unmarshal error response: %s", string(body))

	assert.Contains(t, errResp.Error, expectedErrorMsgPart,
		"Error message should contain '%s' but got '%s'", expectedErrorMsgPart, errResp.Error)
	assert.NotEmpty(t, errResp.TraceID, "error responses should carry a trace ID")
}
