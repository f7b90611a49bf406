package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(role string) map[string]any {
	return map[string]any{"id": 7, "username": "minh", "email": "minh@example.com", "role": role}
}

func TestRouter_Health(t *testing.T) {
	f := newFrontDoor(t, newBackend(t))

	rec, out := f.do(t, call{method: http.MethodGet, path: "/healthz"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRouter_GuardWithoutToken(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/dashboard/products", ok(map[string]any{}))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodGet, path: "/dashboard/products"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/auth/login?redirect=%2Fdashboard%2Fproducts", out["redirect"])

	rec, _ = f.do(t, call{method: http.MethodGet, path: "/cart", html: true})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login?redirect=%2Fcart", rec.Header().Get("Location"))

	assert.Zero(t, b.count("GET /api/dashboard/products"))
}

func TestRouter_CustomerOnDashboardGoesHome(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /auth/me", ok(user("USER")))
	b.handle("GET /api/dashboard/overview", ok(map[string]any{}))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodGet, path: "/dashboard", token: true})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "/", out["redirect"])
	assert.Equal(t, 1, b.count("GET /auth/me"))
	assert.Zero(t, b.count("GET /api/dashboard/overview"))
}

func TestRouter_AdminDashboard(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /auth/me", ok(user("ADMIN")))
	b.handle("GET /api/dashboard/orders", ok(map[string]any{"totalOrders": 12}))
	b.handle("GET /api/dashboard/recent-orders", ok(map[string]any{}))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodGet, path: "/dashboard/orders", token: true})

	require.Equal(t, http.StatusOK, rec.Code)
	data, _ := out["data"].(map[string]any)
	assert.Contains(t, data, "stats")
	assert.Contains(t, data, "recent")

	// The identity is cached now; a second page does not refetch it.
	f.do(t, call{method: http.MethodGet, path: "/dashboard/orders", token: true})
	assert.Equal(t, 1, b.count("GET /auth/me"))
}

func TestRouter_LoginLandsByRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"ADMIN", "/dashboard"},
		{"USER", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			b := newBackend(t)
			b.handle("POST /auth/login", ok(map[string]any{"user": user(tt.role)}))
			f := newFrontDoor(t, b)

			rec, out := f.do(t, call{
				method: http.MethodPost, path: "/auth/login",
				body: `{"emailOrUsername":"minh","password":"secret1"}`,
			})

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, out["redirect"])
			assert.Equal(t, []string{"Login successful!"}, toastMessages(out))
			assert.True(t, f.session.IsAuthenticated())
		})
	}
}

func TestRouter_LoginFailureShowsServerMessage(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login", fail(http.StatusBadRequest, "Invalid credentials"))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{
		method: http.MethodPost, path: "/auth/login",
		body: `{"emailOrUsername":"minh","password":"wrong-pass"}`,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Invalid credentials"}, toastMessages(out))
	assert.False(t, f.session.IsAuthenticated())
}

func TestRouter_LoginValidatedLocally(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login", ok(map[string]any{"user": user("USER")}))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{
		method: http.MethodPost, path: "/auth/login",
		body: `{"emailOrUsername":"","password":"secret1"}`,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields, _ := out["validationErrors"].(map[string]any)
	assert.Contains(t, fields, "emailOrUsername")
	assert.Zero(t, b.count("POST /auth/login"))
}

func TestRouter_CartAdd(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /api/cart/add", ok(map[string]any{"id": "1", "productId": "42", "quantity": 1}))
	b.handle("GET /api/cart", ok(map[string]any{
		"items":      []any{map[string]any{"id": "1", "productId": "42", "quantity": 1, "price": 250000}},
		"totalItems": 1, "totalPrice": 250000, "currency": "VND",
	}))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodPost, path: "/cart/items", body: `{"productId":"42","quantity":1}`, token: true})

	require.Equal(t, http.StatusOK, rec.Code)
	data, _ := out["data"].(map[string]any)
	assert.InDelta(t, 1, data["itemCount"], 0)
	assert.Equal(t, []string{"Added to cart!"}, toastMessages(out))
	assert.Equal(t, 1, b.count("GET /api/cart"))
}

func TestRouter_CartUpdateRejectsZero(t *testing.T) {
	b := newBackend(t)
	b.handle("PUT /api/cart/item/{id}", ok(map[string]any{}))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodPatch, path: "/cart/items/1", body: `{"quantity":0}`, token: true})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields, _ := out["validationErrors"].(map[string]any)
	assert.Contains(t, fields, "quantity")
	assert.Zero(t, b.count("PUT /api/cart/item/{id}"))
}

func TestRouter_RefreshFailureRedirectsToLogin(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/users/profile", fail(http.StatusUnauthorized, "Token expired"))
	b.handle("POST /auth/refresh", fail(http.StatusUnauthorized, "Refresh token expired"))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodGet, path: "/profile", token: true})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/auth/login", out["redirect"])
	assert.Equal(t, 1, b.count("GET /api/users/profile"))
	assert.Equal(t, 1, b.count("POST /auth/refresh"))
}

func TestRouter_CatalogErrorSurfacesEnvelopeMessage(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/products", fail(http.StatusInternalServerError, "Database down"))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodGet, path: "/products"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, []string{"Database down"}, toastMessages(out))
}

func TestRouter_ProductDetail(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/products/{id}", ok(map[string]any{"id": 5, "name": "Runner"}))
	b.handle("GET /api/products/{id}/related", ok([]any{}))
	b.handle("GET /api/reviews/product/{id}", ok(map[string]any{"content": []any{}}))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodGet, path: "/products/5"})
	require.Equal(t, http.StatusOK, rec.Code)
	data, _ := out["data"].(map[string]any)
	product, _ := data["product"].(map[string]any)
	assert.Equal(t, "Runner", product["name"])

	rec, _ = f.do(t, call{method: http.MethodGet, path: "/products/abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_LogoutAlwaysSucceeds(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/logout", fail(http.StatusInternalServerError, "boom"))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{method: http.MethodPost, path: "/auth/logout"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", out["redirect"])
	assert.Equal(t, []string{"Logged out successfully"}, toastMessages(out))
}

func TestRouter_ChangePasswordNeedsSignedInUser(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/change-password", ok(nil))
	f := newFrontDoor(t, b)

	rec, out := f.do(t, call{
		method: http.MethodPost, path: "/auth/change-password", token: true,
		body: `{"currentPassword":"secret1","newPassword":"secret2"}`,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", out["error"])
	assert.Zero(t, b.count("POST /auth/change-password"))
}

func TestRouter_CartUnknownLineIsNotFound(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/cart", ok(map[string]any{
		"items": []any{map[string]any{
			"id": "1", "productId": "42", "quantity": 1, "price": 250000, "addedAt": "2025-10-18T09:37:12.123456",
		}},
		"totalItems": 1, "totalPrice": 250000, "currency": "VND",
	}))
	b.handle("PUT /api/cart/item/{id}", ok(map[string]any{}))
	b.handle("DELETE /api/cart/item/{id}", ok(nil))
	f := newFrontDoor(t, b)

	rec, _ := f.do(t, call{method: http.MethodGet, path: "/cart", token: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, out := f.do(t, call{method: http.MethodPatch, path: "/cart/items/9", body: `{"quantity":2}`, token: true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])

	rec, out = f.do(t, call{method: http.MethodDelete, path: "/cart/items/9", token: true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])

	assert.Zero(t, b.count("PUT /api/cart/item/{id}"))
	assert.Zero(t, b.count("DELETE /api/cart/item/{id}"))
}
