package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	"github.com/SlowBrain97/E-Commerce/internal/service"
)

// CartHandlers provides HTTP handlers for the cart store.
type CartHandlers struct {
	Cart *service.CartStore
}

type cartView struct {
	Cart      *model.Cart `json:"cart"`
	ItemCount int         `json:"itemCount"`
	Loading   bool        `json:"loading"`
}

func (h *CartHandlers) view() cartView {
	return cartView{Cart: h.Cart.Snapshot(), ItemCount: h.Cart.ItemCount(), Loading: h.Cart.Loading()}
}

// Show fetches the cart and returns the fresh snapshot.
// GET /cart.
func (h *CartHandlers) Show(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Fetch(r.Context()); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, h.view())
}

// Add puts a product in the cart.
// POST /cart/items.
func (h *CartHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := h.Cart.Add(r.Context(), req.ProductID, req.VariantID, req.Quantity); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, h.view())
}

// Update sets a line's quantity.
// PATCH /cart/items/{id}.
func (h *CartHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCartItemRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if req.Quantity >= 1 && !h.knownLine(w, r, id) {
		return
	}
	if err := h.Cart.UpdateItem(r.Context(), id, req.Quantity); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, h.view())
}

// Remove deletes a line.
// DELETE /cart/items/{id}.
func (h *CartHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.knownLine(w, r, id) {
		return
	}
	if err := h.Cart.Remove(r.Context(), id); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, h.view())
}

// knownLine rejects a line missing from the cached cart. With nothing cached
// the backend decides.
func (h *CartHandlers) knownLine(w http.ResponseWriter, r *http.Request, id string) bool {
	if h.Cart.Snapshot() == nil {
		return true
	}
	if _, err := h.Cart.Line(id); err != nil {
		writeActionError(w, r, err)
		return false
	}
	return true
}

// Clear empties the cart.
// DELETE /cart.
func (h *CartHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Clear(r.Context()); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, h.view())
}

// Sync replaces the server cart with the posted lines.
// POST /cart/sync.
func (h *CartHandlers) Sync(w http.ResponseWriter, r *http.Request) {
	var lines []model.AddToCartRequest
	if !DecodeJSON(w, r, &lines) {
		return
	}
	if err := h.Cart.Sync(r.Context(), lines); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, h.view())
}

// Validate asks the backend to check the cart.
// POST /cart/validate.
func (h *CartHandlers) Validate(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Cart.Validate(r.Context())
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, map[string]string{"message": msg})
}
