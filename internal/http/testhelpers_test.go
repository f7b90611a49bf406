package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SlowBrain97/E-Commerce/internal/api"
	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	mocks "github.com/SlowBrain97/E-Commerce/internal/mocks/state"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/service"
)

// backend is a scripted stand-in for the REST backend.
type backend struct {
	t   *testing.T
	mux *http.ServeMux

	mu   sync.Mutex
	hits map[string]int
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	return &backend{t: t, mux: http.NewServeMux(), hits: make(map[string]int)}
}

func (b *backend) handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[pattern]++
		b.mu.Unlock()
		h(w, r)
	})
}

func (b *backend) count(pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[pattern]
}

func ok(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		envelope(w, http.StatusOK, true, "", data)
	}
}

func fail(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		envelope(w, status, false, msg, nil)
	}
}

func envelope(w http.ResponseWriter, status int, success bool, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success, "status": status, "message": msg, "data": data,
	})
}

type frontDoor struct {
	handler http.Handler
	client  *apiclient.Client
	session *service.SessionStore
	cart    *service.CartStore
}

// newFrontDoor wires the router the way serve does, against b.
func newFrontDoor(t *testing.T, b *backend) *frontDoor {
	t.Helper()
	srv := httptest.NewServer(b.mux)
	t.Cleanup(srv.Close)

	sink := notify.ContextSink
	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL, Sink: sink, Navigator: Navigator})
	require.NoError(t, err)

	endpoints := api.New(client)
	state := mocks.NewMemoryStateStore()
	cart := service.NewCartStore(service.CartStoreOptions{Cart: endpoints.Cart, State: state, Sink: sink})
	session := service.NewSessionStore(service.SessionStoreOptions{
		Auth: endpoints.Auth, State: state, Cart: cart, Credentials: client, Sink: sink,
	})

	return &frontDoor{
		handler: NewRouter(RouterServices{
			API: endpoints, Session: session, Cart: cart, Tokens: client, Sink: sink,
		}),
		client:  client,
		session: session,
		cart:    cart,
	}
}

type call struct {
	method string
	path   string
	body   string
	token  bool
	html   bool
}

func (f *frontDoor) do(t *testing.T, c call) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var body io.Reader
	if c.body != "" {
		body = bytes.NewBufferString(c.body)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.token {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "token"})
	}
	if c.html {
		req.Header.Set("Accept", "text/html")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Header().Get("Content-Type") == "application/json" && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func toastMessages(out map[string]any) []string {
	raw, _ := out["toasts"].([]any)
	msgs := make([]string, 0, len(raw))
	for _, t := range raw {
		if m, ok := t.(map[string]any); ok {
			msgs = append(msgs, m["message"].(string))
		}
	}
	return msgs
}
