package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	gomocks "github.com/SlowBrain97/E-Commerce/internal/mocks"
	mocks "github.com/SlowBrain97/E-Commerce/internal/mocks/state"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
)

type harness struct {
	srv    *httptest.Server
	client *Client
	toasts *notify.Recorder
	nav    *mocks.RecordingNavigator
}

func newHarness(t *testing.T, h http.Handler) *harness {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	toasts := &notify.Recorder{}
	nav := &mocks.RecordingNavigator{}
	c, err := New(Config{BaseURL: srv.URL + "/", Sink: toasts, Navigator: nav})
	require.NoError(t, err)
	return &harness{srv: srv, client: c, toasts: toasts, nav: nav}
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   success,
		"status":    status,
		"message":   message,
		"data":      data,
		"timestamp": "2025-01-01T00:00:00",
	})
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url"})
	require.Error(t, err)
}

func TestGet_DecodesEnvelopeData(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/7", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeEnvelope(w, http.StatusOK, true, "ok", item{ID: "7", Name: "Runner"})
	}))

	var got item
	err := h.client.Get(context.Background(), "/api/products/7", &got, WithQuery(url.Values{"page": {"1"}}))

	require.NoError(t, err)
	assert.Equal(t, item{ID: "7", Name: "Runner"}, got)
	assert.Empty(t, h.toasts.Messages())
}

func TestPost_SendsJSONBody(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"productId":"42","quantity":1}`, string(body))
		writeEnvelope(w, http.StatusOK, true, "", nil)
	}))

	err := h.client.Post(context.Background(), "/api/cart/add", map[string]any{"productId": "42", "quantity": 1}, nil)
	require.NoError(t, err)
}

func TestEmptyBodyIsSuccess(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	var out item
	require.NoError(t, h.client.Delete(context.Background(), "/api/cart", &out))
}

func TestUnauthorized_RefreshesOnceAndReplays(t *testing.T) {
	var refreshes, calls atomic.Int32
	var bodies []string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshes.Add(1)
		http.SetCookie(w, &http.Cookie{Name: AccessTokenCookie, Value: "fresh", Path: "/"})
		writeEnvelope(w, http.StatusOK, true, "refreshed", nil)
	})
	mux.HandleFunc("/api/cart/item/9", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		if c, err := r.Cookie(AccessTokenCookie); err != nil || c.Value != "fresh" {
			writeEnvelope(w, http.StatusUnauthorized, false, "expired", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "", item{ID: "9"})
	})
	h := newHarness(t, mux)

	var got item
	err := h.client.Put(context.Background(), "/api/cart/item/9", map[string]int{"quantity": 3}, &got)

	require.NoError(t, err)
	assert.Equal(t, "9", got.ID)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
	assert.Empty(t, h.nav.Paths)
	assert.True(t, h.client.TokenPresent())
}

func TestUnauthorized_SecondUnauthorizedDoesNotRefreshAgain(t *testing.T) {
	var refreshes, calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshes.Add(1)
		writeEnvelope(w, http.StatusOK, true, "", nil)
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusUnauthorized, false, "Full authentication is required", nil)
	})
	h := newHarness(t, mux)

	err := h.client.Get(context.Background(), "/auth/me", nil)

	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnauthorized))
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []string{"Full authentication is required"}, h.toasts.Messages())
	assert.Empty(t, h.nav.Paths)
}

func TestUnauthorized_RefreshFailureNavigatesToLogin(t *testing.T) {
	var refreshes, calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshes.Add(1)
		writeEnvelope(w, http.StatusUnauthorized, false, "Refresh token expired", nil)
	})
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusUnauthorized, false, "", nil)
	})
	h := newHarness(t, mux)

	err := h.client.Get(context.Background(), "/api/cart", nil)

	require.Error(t, err)
	var rerr *RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, RefreshPath, rerr.Path)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{LoginPath}, h.nav.Paths)
}

func TestHTTPError_UsesEnvelopeMessage(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusNotFound, false, "Product not found", nil)
	}))

	err := h.client.Get(context.Background(), "/api/products/404", nil)

	assert.True(t, IsKind(err, KindNotFound))
	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Product not found", msg)
	assert.Equal(t, []string{"Product not found"}, h.toasts.Messages())
}

func TestHTTPError_FallbackMessage(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))

	err := h.client.Get(context.Background(), "/api/cart", nil)

	assert.True(t, IsKind(err, KindServer))
	_, ok := ServerMessage(err)
	assert.False(t, ok)
	assert.Equal(t, "Failed to add to cart", MessageOr(err, "Failed to add to cart"))
	assert.Equal(t, []string{MsgGeneric}, h.toasts.Messages())
}

func TestHTTPError_ValidationFields(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"status":400,"message":"Validation failed","validationErrors":{"email":"must be a well-formed email address"}}`))
	}))

	err := h.client.Post(context.Background(), "/auth/register", map[string]string{"email": "x"}, nil)

	var rerr *RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindValidation, rerr.Kind)
	assert.Equal(t, "must be a well-formed email address", rerr.ValidationErrors["email"])
}

func TestSuccessFalseOn2xx_ClassifiedFromEnvelopeStatus(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"status":409,"message":"Insufficient stock"}`))
	}))

	err := h.client.Post(context.Background(), "/api/cart/add", map[string]string{}, nil)

	assert.True(t, IsKind(err, KindConflict))
	assert.Equal(t, []string{"Insufficient stock"}, h.toasts.Messages())
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	toasts := &notify.Recorder{}
	c, err := New(Config{BaseURL: base, Sink: toasts})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/api/cart", nil)

	assert.True(t, IsKind(err, KindNetwork))
	assert.Equal(t, []string{MsgNetwork}, toasts.Messages())
}

func TestConstructionErrors(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected")
	}))

	err := h.client.Post(context.Background(), "/api/cart/add", map[string]any{"bad": make(chan int)}, nil)
	assert.True(t, IsKind(err, KindConstruction))

	err = h.client.Get(context.Background(), "/api/products\x7f", nil)
	assert.True(t, IsKind(err, KindConstruction))

	assert.Equal(t, []string{MsgUnexpected, MsgUnexpected}, h.toasts.Messages())
}

func TestQuietSuppressesNotification(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, false, "boom", nil)
	}))

	err := h.client.Get(context.Background(), "/api/cart", nil, Quiet())

	assert.True(t, IsKind(err, KindServer))
	assert.Empty(t, h.toasts.Messages())
}

func TestResetCredentials(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: AccessTokenCookie, Value: "abc", Path: "/"})
		writeEnvelope(w, http.StatusOK, true, "", nil)
	}))

	require.False(t, h.client.TokenPresent())
	require.NoError(t, h.client.Post(context.Background(), "/auth/login", map[string]string{}, nil))
	require.True(t, h.client.TokenPresent())

	require.NoError(t, h.client.ResetCredentials())
	assert.False(t, h.client.TokenPresent())
	assert.Empty(t, h.client.Cookies())
}

func TestRouteOf(t *testing.T) {
	assert.Equal(t, "/api/cart/item/_id", routeOf("/api/cart/item/12?x=1"))
	assert.Equal(t, "/api/products/search/simple", routeOf("api/products/search/simple"))
}

func TestRetryState(t *testing.T) {
	ctx := context.Background()
	assert.False(t, isRetried(ctx))
	assert.True(t, isRetried(withRetried(ctx)))
}

func TestNewHTTPError(t *testing.T) {
	err := NewHTTPError(http.StatusConflict, "Insufficient stock")
	assert.Equal(t, KindConflict, err.Kind)
	assert.Equal(t, "Insufficient stock", MessageOr(err, "fallback"))

	bare := NewHTTPError(http.StatusTeapot, "")
	assert.Equal(t, KindHTTP, bare.Kind)
	assert.Equal(t, "fallback", MessageOr(bare, "fallback"))
	assert.Contains(t, bare.Error(), "http (418)")
}

func TestUnauthorized_NavigatesOnlyWhenRefreshFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	nav := gomocks.NewMockNavigator(ctrl)
	nav.EXPECT().Navigate(gomock.Any(), LoginPath).Times(1)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "Refresh token expired", nil)
	})
	mux.HandleFunc("/api/users/profile", func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "", nil)
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", []item{})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, Navigator: nav})
	require.NoError(t, err)

	require.NoError(t, c.Get(context.Background(), "/api/products", nil))
	err = c.Get(context.Background(), "/api/users/profile", nil, Quiet())
	assert.True(t, IsKind(err, KindUnauthorized))
}

func TestUnauthorized_CancelledCallerDoesNotAbortSharedRefresh(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	refreshCtxErr := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		refreshCtxErr <- r.Context().Err()
		writeEnvelope(w, http.StatusOK, true, "", nil)
	})
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "", nil)
	})
	h := newHarness(t, mux)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.client.Get(ctx, "/api/cart", nil, Quiet()) }()

	<-entered
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("caller still blocked after cancel")
	}
	assert.Empty(t, h.nav.Paths)

	close(release)
	select {
	case err := <-refreshCtxErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("refresh never completed")
	}
}
