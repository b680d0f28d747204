package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordingServer is an httptest server that remembers every request it
// served, standing in for a third-party API.
type RecordingServer struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []string
	bodies []string
	params []map[string]string
}

// NewRecordingServer starts a server that records each request and then
// delegates to handler. It is closed when the test ends.
func NewRecordingServer(t *testing.T, handler http.HandlerFunc) *RecordingServer {
	t.Helper()

	rs := &RecordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		params := map[string]string{}
		for k, v := range r.URL.Query() {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}

		rs.mu.Lock()
		rs.calls = append(rs.calls, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		rs.bodies = append(rs.bodies, string(body))
		rs.params = append(rs.params, params)
		rs.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(rs.Close)

	return rs
}

// CallCount returns how many requests were served
func (rs *RecordingServer) CallCount() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.calls)
}

// Calls returns "METHOD /path" for every request, in order
func (rs *RecordingServer) Calls() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.calls...)
}

// Body returns the raw body of the i-th request
func (rs *RecordingServer) Body(i int) string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.bodies[i]
}

// Query returns the first value of every query parameter of the i-th request
func (rs *RecordingServer) Query(i int) map[string]string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.params[i]
}

// JSON answers every request with status and v encoded as JSON
func JSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Raw answers every request with status and body as is
func Raw(status int, contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// Status answers every request with an empty body and status
func Status(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

// UnreachableURL returns the address of a server that has already been shut
// down, so connecting to it fails.
func UnreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
