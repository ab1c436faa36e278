package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// HTTPTestHelper provides utilities for HTTP testing
type HTTPTestHelper struct {
	t      *testing.T
	router *gin.Engine
}

// NewHTTPTestHelper creates a new HTTP test helper
func NewHTTPTestHelper(t *testing.T) *HTTPTestHelper {
	gin.SetMode(gin.TestMode)
	return &HTTPTestHelper{
		t:      t,
		router: gin.New(),
	}
}

// SetRouter sets the gin router to use for testing
func (h *HTTPTestHelper) SetRouter(router *gin.Engine) {
	h.router = router
}

// GetJSON performs a GET request expecting JSON response
func (h *HTTPTestHelper) GetJSON(url string) *httptest.ResponseRecorder {
	return h.GetWithHeaders(url, map[string]string{"Accept": "application/json"})
}

// GetWithHeaders performs a GET request with custom headers
func (h *HTTPTestHelper) GetWithHeaders(url string, headers map[string]string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(h.t, err, "Failed to create HTTP request")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, req)

	return recorder
}

// AssertJSONResponse asserts that the response is valid JSON and unmarshals it
func (h *HTTPTestHelper) AssertJSONResponse(recorder *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	require.Equal(h.t, expectedStatus, recorder.Code, "Unexpected status code")
	require.Equal(h.t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"), "Expected JSON content type")

	err := json.Unmarshal(recorder.Body.Bytes(), target)
	require.NoError(h.t, err, "Failed to unmarshal JSON response")
}

// AssertErrorResponse asserts that the response contains an error
func (h *HTTPTestHelper) AssertErrorResponse(recorder *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	require.Equal(h.t, expectedStatus, recorder.Code, "Unexpected status code")

	var errorResponse map[string]interface{}
	err := json.Unmarshal(recorder.Body.Bytes(), &errorResponse)
	require.NoError(h.t, err, "Failed to unmarshal error response")

	errorMessage, exists := errorResponse["error"]
	require.True(h.t, exists, "Expected error field in response")
	require.Equal(h.t, expectedError, errorMessage)
}

// MockHTTPServer stands in for a catalog API. Handlers are keyed by path
// and every request is counted.
type MockHTTPServer struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int
}

// NewMockHTTPServer creates a new mock HTTP server
func NewMockHTTPServer() *MockHTTPServer {
	mock := &MockHTTPServer{
		handlers: make(map[string]http.HandlerFunc),
		hits:     make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", mock.routeRequest)

	mock.server = httptest.NewServer(mux)
	return mock
}

// URL returns the mock server URL
func (m *MockHTTPServer) URL() string {
	return m.server.URL
}

// Close closes the mock server
func (m *MockHTTPServer) Close() {
	m.server.Close()
}

// On registers a handler for a specific path
func (m *MockHTTPServer) On(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// OnJSON registers a handler that always responds with status and body
func (m *MockHTTPServer) OnJSON(path string, status int, body interface{}) {
	m.On(path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Hits returns how many requests reached path
func (m *MockHTTPServer) Hits(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits[path]
}

// TotalHits returns the number of requests received on any path
func (m *MockHTTPServer) TotalHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, n := range m.hits {
		total += n
	}
	return total
}

// routeRequest routes requests to registered handlers
func (m *MockHTTPServer) routeRequest(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.hits[r.URL.Path]++
	handler, exists := m.handlers[r.URL.Path]
	m.mu.Unlock()

	if exists {
		handler(w, r)
		return
	}

	// Default handler returns 404
	http.NotFound(w, r)
}

// WriteJSON writes body as a JSON response
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
