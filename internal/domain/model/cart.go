package model

// CartItem is one line of the server-held cart.
// AddedAt is the server's local timestamp, passed through as sent
// (e.g. "2025-10-18T09:37:12.123456", no zone offset).
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	MaxQuantity  int     `json:"maxQuantity"`
	VariantID    string  `json:"variantId,omitempty"`
	VariantName  string  `json:"variantName,omitempty"`
	AddedAt      string  `json:"addedAt,omitempty"`
}

// CanIncrement reports whether the quantity control may go up.
// The server is the one that rejects quantities above MaxQuantity.
func (i CartItem) CanIncrement() bool {
	return i.MaxQuantity <= 0 || i.Quantity < i.MaxQuantity
}

// Cart is the client's cached copy of the server-held shopping cart.
// TotalItems and TotalPrice come from the server and are never recomputed locally.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
	Currency   string     `json:"currency"`
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// FindItem returns the line with the given ID.
func (c *Cart) FindItem(lineID string) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, item := range c.Items {
		if item.ID == lineID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Clone returns a deep copy so readers never share the store's slice.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = append([]CartItem(nil), c.Items...)
	return &out
}

// AddToCartRequest is the /api/cart/add payload and one element of a sync batch.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest is the /api/cart/item/{id} payload.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
