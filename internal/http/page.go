package httpx

import (
	"context"
	"net/http"
	"sync"

	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

// page is the per-request state the handlers report back alongside data.
type page struct {
	toasts *notify.Recorder

	mu       sync.Mutex
	redirect string
}

func (p *page) setRedirect(path string) {
	p.mu.Lock()
	p.redirect = path
	p.mu.Unlock()
}

// Redirect returns the client route recorded for this request, if any.
func (p *page) Redirect() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.redirect
}

type pageKey struct{}

func pageFrom(ctx context.Context) *page {
	p, _ := ctx.Value(pageKey{}).(*page)
	return p
}

// Collect attaches a toast collector and a redirect slot to each request.
// Sinks built with notify.ContextSink and the Navigator below write into them.
func Collect() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, rec := notify.WithCollector(r.Context())
			ctx = context.WithValue(ctx, pageKey{}, &page{toasts: rec})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Navigator records navigation requests (e.g. to the login page after a
// failed refresh) on the current request so the response can carry them.
var Navigator ports.Navigator = ports.NavigatorFunc(func(ctx context.Context, path string) {
	if p := pageFrom(ctx); p != nil {
		p.setRedirect(path)
	}
})
