package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	httpx "github.com/SlowBrain97/E-Commerce/internal/http"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
)

// ServeOptions configures the local front door.
type ServeOptions struct {
	App *App
	// Sink receives toasts raised by handlers. NewServeSink builds the usual one.
	Sink notify.Sink
	// Listener overrides Addr (tests).
	Listener net.Listener
}

// NewServeSink returns the sink used by the front door: toasts are logged and
// returned with the response that caused them.
func NewServeSink(logger *slog.Logger) notify.Sink {
	return notify.Multi(notify.NewLogSink(logger), notify.ContextSink)
}

// BuildHandler builds the front door router over the app's stores.
func BuildHandler(opts ServeOptions) http.Handler {
	return httpx.NewRouter(httpx.RouterServices{
		API:     opts.App.API,
		Session: opts.App.Session,
		Cart:    opts.App.Cart,
		Tokens:  opts.App.Client,
		Sink:    opts.Sink,
		Logger:  opts.App.Logger,
	})
}

func newServer(handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Serve runs the front door until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	app := opts.App
	logger := app.Logger
	server := newServer(BuildHandler(opts), app.Config.HTTP.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if opts.Listener != nil {
			logger.Info("starting HTTP server", "addr", opts.Listener.Addr().String())
			err = server.Serve(opts.Listener)
		} else {
			logger.Info("starting HTTP server", "addr", server.Addr)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		timeout := app.Config.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}
