package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/SlowBrain97/E-Commerce/internal/guard"
	"github.com/SlowBrain97/E-Commerce/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// TokenSource reports whether the client holds an access token.
// *apiclient.Client implements it.
type TokenSource interface {
	TokenPresent() bool
}

// hasToken checks the client's credentials first, then the request's own cookie.
func hasToken(tokens TokenSource, r *http.Request) bool {
	if tokens != nil && tokens.TokenPresent() {
		return true
	}
	c, err := r.Cookie(AccessTokenCookie)
	return err == nil && c.Value != ""
}

// EdgeGuard sends requests for protected and admin routes without a token
// to the login page.
func EdgeGuard(tokens TokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := guard.Evaluate(r.URL.Path, hasToken(tokens, r))
			if !d.Allow {
				redirectTo(w, r, d.RedirectTo, http.StatusUnauthorized, "authentication_required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminLayout is the page-level role check for the admin area. The identity
// is loaded on demand when a token is present but nothing is cached yet.
func AdminLayout(session *service.SessionStore, tokens TokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := session.User()
			if user == nil && hasToken(tokens, r) {
				session.CheckAuth(r.Context())
				user = session.User()
			}
			d := guard.AdminLayout(user)
			if !d.Allow {
				redirectTo(w, r, d.RedirectTo, http.StatusForbidden, "insufficient_permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// redirectTo sends browsers to target and tells API callers where to go.
func redirectTo(w http.ResponseWriter, r *http.Request, target string, code int, errCode string) {
	if isBrowserRequest(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	WriteError(w, r, ErrorParams{
		Code:     code,
		ErrCode:  errCode,
		Err:      errors.New(strings.ReplaceAll(errCode, "_", " ")),
		Redirect: target,
	})
}

// isBrowserRequest reports whether the caller prefers HTML over JSON.
func isBrowserRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}
