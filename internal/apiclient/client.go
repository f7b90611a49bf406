// Package apiclient is the single point of contact with the storefront backend.
// It carries credentials as cookies, refreshes the session once per request on
// 401 and normalises every failure into a *RequestError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/SlowBrain97/E-Commerce/internal/observability/metrics"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/observability/statsd"
	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

const (
	// DefaultTimeout bounds every request including the refresh.
	DefaultTimeout = 30 * time.Second
	// LoginPath is where the user is sent once the session cannot be refreshed.
	LoginPath = "/auth/login"
	// RefreshPath renews the access token cookie.
	RefreshPath = "/auth/refresh"
	// AccessTokenCookie is the cookie that marks a signed-in client.
	AccessTokenCookie = "accessToken"

	maxResponseBytes = 10 << 20
)

// Config groups the client's dependencies.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
	Sink      notify.Sink
	Navigator ports.Navigator
	Logger    *slog.Logger
	Metrics   statsd.Sink
	Limiter   *rate.Limiter
}

// Envelope is the backend's response wrapper.
type Envelope struct {
	Success          *bool             `json:"success"`
	Status           int               `json:"status"`
	Message          string            `json:"message"`
	Data             json.RawMessage   `json:"data"`
	Timestamp        string            `json:"timestamp"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// Client wraps net/http with the backend's envelope, refresh and error contract.
// It is safe for concurrent use.
type Client struct {
	baseURL   string
	base      *url.URL
	userAgent string
	http      *http.Client
	jar       *credentialJar
	sink      notify.Sink
	navigator ports.Navigator
	logger    *slog.Logger
	metrics   statsd.Sink
	limiter   *rate.Limiter

	refreshes singleflight.Group
}

// New builds a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	base, err := url.Parse(raw)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", cfg.BaseURL)
	}

	jar, err := newCredentialJar()
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var metricSink statsd.Sink = statsd.Nop{}
	if cfg.Metrics != nil {
		metricSink = cfg.Metrics
	}
	nav := cfg.Navigator
	if nav == nil {
		nav = ports.NavigatorFunc(nil)
	}

	return &Client{
		baseURL:   raw,
		base:      base,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout, Jar: jar, Transport: cfg.Transport},
		jar:       jar,
		sink:      notify.OrNop(cfg.Sink),
		navigator: nav,
		logger:    logger.With("component", "apiclient"),
		metrics:   metricSink,
		limiter:   cfg.Limiter,
	}, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

// TokenPresent reports whether the jar holds an access token cookie for the backend.
func (c *Client) TokenPresent() bool {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == AccessTokenCookie && ck.Value != "" {
			return true
		}
	}
	return false
}

// Cookies returns the credentials currently held for the backend.
func (c *Client) Cookies() []*http.Cookie {
	return c.jar.Cookies(c.base)
}

// SetCookies seeds credentials, e.g. restored from a previous run.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.jar.SetCookies(c.base, cookies)
}

// ResetCredentials drops every cookie held for the backend.
func (c *Client) ResetCredentials() error {
	return c.jar.reset()
}

// Get issues a GET and decodes the envelope data into out (which may be nil).
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do issues a request. A nil body sends no payload.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	o := buildOptions(opts)

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return c.reject(ctx, o, &RequestError{
				Kind: KindConstruction, Message: MsgUnexpected, Method: method, Path: path,
				Err: fmt.Errorf("encode payload: %w", err),
			})
		}
		payload = b
	}
	return c.send(ctx, method, path, payload, out, o)
}

// send performs one attempt and, on a first 401, the refresh and the single replay.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any, o requestOptions) error {
	req, err := c.newRequest(ctx, method, path, payload, o)
	if err != nil {
		return c.reject(ctx, o, &RequestError{
			Kind: KindConstruction, Message: MsgUnexpected, Method: method, Path: path, Err: err,
		})
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.reject(ctx, o, &RequestError{
				Kind: KindNetwork, Message: MsgNetwork, Method: method, Path: path, Err: err,
			})
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		rerr := &RequestError{Kind: KindNetwork, Message: MsgNetwork, Method: method, Path: path, Err: err}
		c.observe(method, path, 0, isRetried(ctx), time.Since(start), rerr)
		return c.reject(ctx, o, rerr)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		rerr := &RequestError{Kind: KindNetwork, Message: MsgNetwork, Method: method, Path: path, Err: err}
		c.observe(method, path, resp.StatusCode, isRetried(ctx), time.Since(start), rerr)
		return c.reject(ctx, o, rerr)
	}

	if resp.StatusCode == http.StatusUnauthorized && !isRetried(ctx) {
		c.observe(method, path, resp.StatusCode, false, time.Since(start), &RequestError{Kind: KindUnauthorized})
		ctx = withRetried(ctx)
		if err := c.refresh(ctx, o.quiet); err != nil {
			if ctx.Err() != nil {
				return err
			}
			c.logger.InfoContext(ctx, "session refresh failed, sending user to login", "path", path, "error", err)
			c.navigator.Navigate(ctx, LoginPath)
			return err
		}
		return c.send(ctx, method, path, payload, out, o)
	}

	rerr := c.decode(resp.StatusCode, raw, out)
	if rerr != nil {
		rerr.Method, rerr.Path = method, path
	}
	c.observe(method, path, resp.StatusCode, isRetried(ctx), time.Since(start), errOrNil(rerr))
	if rerr != nil {
		return c.reject(ctx, o, rerr)
	}
	return nil
}

// refresh renews the session. Concurrent callers share one refresh call,
// which runs detached from any single caller's cancellation and is bounded
// by the client timeout. A caller that gives up waiting gets its own
// context error. The refresh request is always marked retried so a 401 on
// it never recurses.
func (c *Client) refresh(ctx context.Context, quiet bool) error {
	ch := c.refreshes.DoChan(RefreshPath, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.http.Timeout)
		defer cancel()
		o := requestOptions{quiet: quiet}
		return nil, c.send(withRetried(shared), http.MethodPost, RefreshPath, nil, nil, o)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return &RequestError{
			Kind: KindNetwork, Message: MsgNetwork, Method: http.MethodPost, Path: RefreshPath, Err: ctx.Err(),
		}
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte, o requestOptions) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	if len(o.query) > 0 {
		q := u.Query()
		for k, vals := range o.query {
			for _, v := range vals {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, vals := range o.header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

// decode classifies the response and decodes envelope data into out.
func (c *Client) decode(status int, raw []byte, out any) *RequestError {
	if status >= http.StatusBadRequest {
		return httpError(status, raw)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &RequestError{Kind: KindHTTP, Status: status, Message: MsgGeneric, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if env.Success != nil && !*env.Success {
		code := env.Status
		if code == 0 {
			code = status
		}
		rerr := httpError(code, raw)
		rerr.Status = code
		return rerr
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &RequestError{Kind: KindHTTP, Status: status, Message: MsgGeneric, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// httpError builds the error for a received, failed response. The envelope
// message wins over the generic fallback.
func httpError(status int, raw []byte) *RequestError {
	rerr := &RequestError{Kind: KindForStatus(status), Status: status, Message: MsgGeneric}
	if !gjson.ValidBytes(raw) {
		return rerr
	}
	parsed := gjson.ParseBytes(raw)
	if msg := parsed.Get("message"); msg.Type == gjson.String && strings.TrimSpace(msg.Str) != "" {
		rerr.Message = msg.Str
		rerr.fromServer = true
	}
	if fields := parsed.Get("validationErrors"); fields.IsObject() {
		rerr.ValidationErrors = make(map[string]string)
		fields.ForEach(func(k, v gjson.Result) bool {
			rerr.ValidationErrors[k.String()] = v.String()
			return true
		})
	}
	return rerr
}

// reject surfaces the failure unless the caller asked for quiet, then returns it.
func (c *Client) reject(ctx context.Context, o requestOptions, rerr *RequestError) error {
	level := slog.LevelWarn
	if rerr.Kind == KindNotFound || rerr.Kind == KindValidation {
		level = slog.LevelDebug
	}
	c.logger.Log(ctx, level, "backend request failed",
		"method", rerr.Method,
		"path", rerr.Path,
		"kind", string(rerr.Kind),
		"status", rerr.Status,
		"error", rerr.Err,
	)
	if !o.quiet {
		c.sink.Notify(ctx, notify.Error(rerr.Message))
	}
	return rerr
}

func (c *Client) observe(method, path string, status int, wasRetried bool, d time.Duration, err error) {
	metrics.EmitRequest(c.metrics, metrics.RequestMetric{
		Method:   method,
		Route:    routeOf(path),
		Status:   status,
		Retried:  wasRetried,
		Duration: d,
		Err:      err,
	})
}

// routeOf strips ids and query strings so metric cardinality stays bounded.
func routeOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = "_id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func errOrNil(rerr *RequestError) error {
	if rerr == nil {
		return nil
	}
	return rerr
}

// IsRequestError reports whether err came from the backend contract.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
