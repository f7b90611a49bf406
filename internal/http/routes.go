package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SlowBrain97/E-Commerce/internal/api"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/service"
)

// RouterServices holds everything the front door router needs.
type RouterServices struct {
	API     *api.API
	Session *service.SessionStore
	Cart    *service.CartStore
	Tokens  TokenSource
	// Sink receives toasts raised by the handlers themselves. It should
	// include notify.ContextSink so they reach the response.
	Sink   notify.Sink
	Logger *slog.Logger // Logger for HTTP access and panic logs (optional)
}

// NewRouter creates and configures the front door router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{Session: services.Session, Logger: logger}
	cartHandlers := &CartHandlers{Cart: services.Cart}
	catalogHandlers := &CatalogHandlers{API: services.API}
	profileHandlers := &ProfileHandlers{API: services.API, Session: services.Session, Sink: services.Sink}
	dashboardHandlers := &DashboardHandlers{API: services.API}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Recover(logger))
	r.Use(Logging(logger))
	r.Use(Collect())

	r.Get("/healthz", healthHandler)
	r.Head("/healthz", healthHandler)

	r.Group(func(r chi.Router) {
		r.Use(EdgeGuard(services.Tokens))

		r.Get("/", catalogHandlers.Home)
		r.Get("/products", catalogHandlers.Products)
		r.Get("/products/{id}", catalogHandlers.Product)
		r.Get("/categories", catalogHandlers.Categories)

		registerAuthRoutes(r, authHandlers)
		registerProfileRoutes(r, profileHandlers)
		registerCartRoutes(r, cartHandlers)

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(AdminLayout(services.Session, services.Tokens))
			registerDashboardRoutes(r, dashboardHandlers)
		})
	})

	return r
}

func registerAuthRoutes(r chi.Router, h *AuthHandlers) {
	r.Get("/auth/login", h.LoginPage)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/register", h.Register)
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)
	r.Post("/auth/change-password", h.ChangePassword)
	r.Get("/auth/oauth2/callback", h.OAuth2Callback)
}

func registerProfileRoutes(r chi.Router, h *ProfileHandlers) {
	r.Get("/profile", h.Show)
	r.Put("/profile", h.Update)
}

func registerCartRoutes(r chi.Router, h *CartHandlers) {
	r.Get("/cart", h.Show)
	r.Delete("/cart", h.Clear)
	r.Post("/cart/items", h.Add)
	r.Patch("/cart/items/{id}", h.Update)
	r.Delete("/cart/items/{id}", h.Remove)
	r.Post("/cart/sync", h.Sync)
	r.Post("/cart/validate", h.Validate)
}

func registerDashboardRoutes(r chi.Router, h *DashboardHandlers) {
	r.Get("/", h.Overview)
	r.Get("/products", h.Products)
	r.Get("/orders", h.Orders)
	r.Get("/users", h.Users)
	r.Get("/categories", h.Categories)
	r.Get("/reviews", h.Reviews)
}
