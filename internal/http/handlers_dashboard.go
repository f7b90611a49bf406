package httpx

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/SlowBrain97/E-Commerce/internal/api"
)

// DashboardHandlers serves the admin area. Role checks happen in the
// AdminLayout middleware in front of them.
type DashboardHandlers struct {
	API *api.API
}

// parts runs each loader concurrently and writes their results keyed by name.
func (h *DashboardHandlers) parts(w http.ResponseWriter, r *http.Request, loaders map[string]func(*http.Request) (any, error)) {
	results := make(map[string]any, len(loaders))
	type result struct {
		name string
		v    any
	}
	out := make(chan result, len(loaders))

	g, ctx := errgroup.WithContext(r.Context())
	rc := r.WithContext(ctx)
	for name, load := range loaders {
		g.Go(func() error {
			v, err := load(rc)
			if err != nil {
				return err
			}
			out <- result{name: name, v: v}
			return nil
		})
	}
	err := g.Wait()
	close(out)
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	for res := range out {
		results[res.name] = res.v
	}
	WritePage(w, r, http.StatusOK, results)
}

// Overview is the dashboard landing page.
// GET /dashboard.
func (h *DashboardHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	h.parts(w, r, map[string]func(*http.Request) (any, error){
		"overview": func(r *http.Request) (any, error) { return h.API.Dashboard.Overview(r.Context()) },
		"sales":    func(r *http.Request) (any, error) { return h.API.Dashboard.Sales(r.Context()) },
		"recent":   func(r *http.Request) (any, error) { return h.API.Dashboard.RecentOrders(r.Context()) },
		"top":      func(r *http.Request) (any, error) { return h.API.Dashboard.TopProducts(r.Context()) },
	})
}

// Products is the product management page.
// GET /dashboard/products.
func (h *DashboardHandlers) Products(w http.ResponseWriter, r *http.Request) {
	params := ParsePageParams(r)
	h.parts(w, r, map[string]func(*http.Request) (any, error){
		"products": func(r *http.Request) (any, error) { return h.API.Products.List(r.Context(), params) },
		"stats":    func(r *http.Request) (any, error) { return h.API.Dashboard.Products(r.Context()) },
		"lowStock": func(r *http.Request) (any, error) {
			return h.API.Products.LowStock(r.Context(), api.DefaultLowStockThreshold)
		},
	})
}

// Orders is the order overview page.
// GET /dashboard/orders.
func (h *DashboardHandlers) Orders(w http.ResponseWriter, r *http.Request) {
	h.parts(w, r, map[string]func(*http.Request) (any, error){
		"stats":  func(r *http.Request) (any, error) { return h.API.Dashboard.Orders(r.Context()) },
		"recent": func(r *http.Request) (any, error) { return h.API.Dashboard.RecentOrders(r.Context()) },
	})
}

// Users is the user management page; q searches.
// GET /dashboard/users.
func (h *DashboardHandlers) Users(w http.ResponseWriter, r *http.Request) {
	params := ParsePageParams(r)
	q := r.URL.Query().Get("q")
	h.parts(w, r, map[string]func(*http.Request) (any, error){
		"users": func(r *http.Request) (any, error) {
			if q != "" {
				return h.API.Users.Search(r.Context(), q, params)
			}
			return h.API.Users.All(r.Context(), params)
		},
		"stats": func(r *http.Request) (any, error) { return h.API.Dashboard.Users(r.Context()) },
	})
}

// Categories is the category management page.
// GET /dashboard/categories.
func (h *DashboardHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	h.parts(w, r, map[string]func(*http.Request) (any, error){
		"categories": func(r *http.Request) (any, error) { return h.API.Categories.Hierarchy(r.Context()) },
		"stats":      func(r *http.Request) (any, error) { return h.API.Categories.Stats(r.Context()) },
	})
}

// Reviews is the moderation queue.
// GET /dashboard/reviews.
func (h *DashboardHandlers) Reviews(w http.ResponseWriter, r *http.Request) {
	params := ParsePageParams(r)
	h.parts(w, r, map[string]func(*http.Request) (any, error){
		"pending": func(r *http.Request) (any, error) { return h.API.Reviews.Pending(r.Context(), params) },
	})
}
