package testutil

import (
	"fmt"

	domainauth "github.com/SlowBrain97/E-Commerce/internal/domain/auth"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// UserBuilder provides a fluent interface for building UserInfo fixtures.
type UserBuilder struct {
	user domainauth.UserInfo
}

// NewUser creates a customer with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{user: domainauth.UserInfo{
		ID:       1,
		Username: "ada",
		Email:    "ada@example.com",
		Role:     domainauth.RoleCustomer,
	}}
}

// WithID sets the user ID.
func (b *UserBuilder) WithID(id int64) *UserBuilder {
	b.user.ID = id
	return b
}

// WithUsername sets the username and derives the email from it.
func (b *UserBuilder) WithUsername(name string) *UserBuilder {
	b.user.Username = name
	b.user.Email = name + "@example.com"
	return b
}

// Admin gives the user the admin role.
func (b *UserBuilder) Admin() *UserBuilder {
	b.user.Role = domainauth.RoleAdmin
	return b
}

// Build returns the user.
func (b *UserBuilder) Build() domainauth.UserInfo {
	return b.user
}

// JSON returns the user as the backend serializes it.
func (b *UserBuilder) JSON() map[string]any {
	return map[string]any{
		"id":       b.user.ID,
		"username": b.user.Username,
		"email":    b.user.Email,
		"role":     string(b.user.Role),
	}
}

// AddedAt is the timestamp stamped on built cart lines, in the backend's
// zone-less local date-time layout.
const AddedAt = "2025-10-18T09:37:12.123456"

// CartBuilder provides a fluent interface for building Cart fixtures.
// Totals are derived from the lines the way the backend reports them.
type CartBuilder struct {
	cart model.Cart
}

// NewCart creates an empty VND cart.
func NewCart() *CartBuilder {
	return &CartBuilder{cart: model.Cart{Items: []model.CartItem{}, Currency: "VND"}}
}

// WithItem appends a line with a generated line ID.
func (b *CartBuilder) WithItem(productID, name string, price float64, quantity int) *CartBuilder {
	b.cart.Items = append(b.cart.Items, model.CartItem{
		ID:          fmt.Sprintf("line-%d", len(b.cart.Items)+1),
		ProductID:   productID,
		ProductName: name,
		Price:       price,
		Quantity:    quantity,
		AddedAt:     AddedAt,
	})
	b.cart.TotalItems += quantity
	b.cart.TotalPrice += price * float64(quantity)
	return b
}

// WithCurrency sets the cart currency.
func (b *CartBuilder) WithCurrency(code string) *CartBuilder {
	b.cart.Currency = code
	return b
}

// Build returns a copy of the cart.
func (b *CartBuilder) Build() *model.Cart {
	c := b.cart
	return c.Clone()
}
