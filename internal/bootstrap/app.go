package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/SlowBrain97/E-Commerce/config"
	"github.com/SlowBrain97/E-Commerce/internal/api"
	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/observability/statsd"
	"github.com/SlowBrain97/E-Commerce/internal/ports"
	"github.com/SlowBrain97/E-Commerce/internal/service"
)

// CredentialsStateKey holds the backend cookies between CLI invocations.
const CredentialsStateKey = "credentials-storage"

// AppOptions groups what NewApp needs beyond configuration.
type AppOptions struct {
	Config    config.AppConfig
	Logger    *slog.Logger
	Sink      notify.Sink
	Navigator ports.Navigator
	// State overrides the configured storage driver (tests).
	State ports.StateStore
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// App owns the API client and the stores. Nothing here is global; callers
// pass the App (or its parts) explicitly.
type App struct {
	Config  config.AppConfig
	Logger  *slog.Logger
	Client  *apiclient.Client
	API     *api.API
	Session *service.SessionStore
	Cart    *service.CartStore
	State   ports.StateStore
	Metrics statsd.Sink

	closers []func() error
}

// NewApp wires the client, endpoint wrappers, stores, metrics and state backend.
func NewApp(ctx context.Context, opts AppOptions) (*App, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{Config: cfg, Logger: logger, Metrics: statsd.Nop{}}

	if cfg.Observability.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Observability.Metrics.StatsdAddress,
			Prefix:  cfg.Observability.Metrics.Prefix,
			Logger:  logger,
		})
		switch {
		case err != nil:
			logger.Error("failed to initialise statsd client", "error", err)
		case client.Enabled():
			app.Metrics = client
			app.closers = append(app.closers, client.Close)
		default:
			logger.Warn("statsd client has no connection, metrics disabled")
		}
	}

	state := opts.State
	if state == nil {
		backend, err := NewStateStore(ctx, StorageOptions{Storage: cfg.Storage, Redis: cfg.Redis, Logger: logger})
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("state store: %w", err)
		}
		state = backend.Store
		app.closers = append(app.closers, backend.Close)
	}
	app.State = state

	var limiter *rate.Limiter
	if cfg.API.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.API.RateLimit), cfg.API.RateBurst)
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Transport: opts.Transport,
		Sink:      opts.Sink,
		Navigator: opts.Navigator,
		Logger:    logger,
		Metrics:   app.Metrics,
		Limiter:   limiter,
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("api client: %w", err)
	}
	app.Client = client
	app.API = api.New(client)

	app.Cart = service.NewCartStore(service.CartStoreOptions{
		Cart:    app.API.Cart,
		State:   state,
		Sink:    opts.Sink,
		Logger:  logger,
		Metrics: app.Metrics,
	})
	app.Session = service.NewSessionStore(service.SessionStoreOptions{
		Auth:        app.API.Auth,
		State:       state,
		Cart:        app.Cart,
		Credentials: client,
		Sink:        opts.Sink,
		Logger:      logger,
		Metrics:     app.Metrics,
	})
	return app, nil
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Restore loads the persisted credentials, session and cart.
func (a *App) Restore(ctx context.Context) error {
	var errs []error
	if err := a.restoreCredentials(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Session.Restore(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Cart.Restore(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) restoreCredentials(ctx context.Context) error {
	raw, err := a.State.Load(ctx, CredentialsStateKey)
	if errors.Is(err, ports.ErrStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	var stored []storedCookie
	if err := json.Unmarshal(raw, &stored); err != nil {
		a.Logger.WarnContext(ctx, "discarding persisted credentials", "error", err)
		return a.State.Delete(ctx, CredentialsStateKey)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	a.Client.SetCookies(cookies)
	return nil
}

// PersistCredentials saves the client's current cookies, or removes the
// record when there are none (e.g. after logout).
func (a *App) PersistCredentials(ctx context.Context) error {
	cookies := a.Client.Cookies()
	if len(cookies) == 0 {
		return a.State.Delete(ctx, CredentialsStateKey)
	}
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	return a.State.Save(ctx, CredentialsStateKey, raw)
}

// Close releases the metrics connection and the state backend.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
