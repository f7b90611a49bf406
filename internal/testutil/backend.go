// Package testutil provides test helpers for the storefront client: a fake
// backend that speaks the response envelope and builders for domain fixtures.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// TestingTB is an interface that covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Cleanup(func())
	Fatalf(format string, args ...any)
}

// Reply is one envelope response.
type Reply struct {
	Status  int
	Success bool
	Message string
	Data    any
	Cookies []*http.Cookie
}

// OK wraps data in a successful envelope.
func OK(data any) Reply {
	return Reply{Status: http.StatusOK, Success: true, Data: data}
}

// Fail builds an unsuccessful envelope with the server's message.
func Fail(status int, message string) Reply {
	return Reply{Status: status, Message: message}
}

// WithCookie adds a Set-Cookie header to the reply.
func (r Reply) WithCookie(c *http.Cookie) Reply {
	r.Cookies = append(append([]*http.Cookie(nil), r.Cookies...), c)
	return r
}

// Backend is an httptest server answering with envelopes. Routes use
// net/http ServeMux patterns such as "POST /auth/login".
type Backend struct {
	*httptest.Server

	t    TestingTB
	mux  *http.ServeMux
	mu   sync.Mutex
	hits map[string]int
}

// NewBackend starts an empty Backend and closes it when the test ends.
func NewBackend(t TestingTB) *Backend {
	t.Helper()
	b := &Backend{t: t, mux: http.NewServeMux(), hits: make(map[string]int)}
	b.Server = httptest.NewServer(b.mux)
	t.Cleanup(b.Close)
	return b
}

// Handle registers a route answered by fn.
func (b *Backend) Handle(pattern string, fn func(r *http.Request) Reply) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[pattern]++
		b.mu.Unlock()
		b.write(w, fn(r))
	})
}

// Reply registers a route that always answers with reply.
func (b *Backend) Reply(pattern string, reply Reply) {
	b.Handle(pattern, func(*http.Request) Reply { return reply })
}

// Hits reports how often pattern was served.
func (b *Backend) Hits(pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[pattern]
}

func (b *Backend) write(w http.ResponseWriter, reply Reply) {
	for _, c := range reply.Cookies {
		http.SetCookie(w, c)
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]any{
		"success": reply.Success,
		"status":  status,
		"message": reply.Message,
		"data":    reply.Data,
	})
	if err != nil {
		b.t.Fatalf("encode envelope: %v", err)
	}
}

// HasCookie reports whether r carries the named cookie with value.
func HasCookie(r *http.Request, name, value string) bool {
	c, err := r.Cookie(name)
	return err == nil && c.Value == value
}
