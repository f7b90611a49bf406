package api

import (
	"context"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// CartAPI wraps /api/cart endpoints.
type CartAPI struct{ r Requester }

func (a *CartAPI) Get(ctx context.Context, opts ...apiclient.RequestOption) (*model.Cart, error) {
	var out model.Cart
	if err := a.r.Get(ctx, "/api/cart", &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CartAPI) Add(ctx context.Context, req model.AddToCartRequest, opts ...apiclient.RequestOption) (*model.CartItem, error) {
	var out model.CartItem
	if err := a.r.Post(ctx, "/api/cart/add", req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CartAPI) UpdateItem(ctx context.Context, lineID string, quantity int, opts ...apiclient.RequestOption) (*model.CartItem, error) {
	var out model.CartItem
	body := model.UpdateCartItemRequest{Quantity: quantity}
	if err := a.r.Put(ctx, "/api/cart/item/"+seg(lineID), body, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CartAPI) RemoveItem(ctx context.Context, lineID string, opts ...apiclient.RequestOption) error {
	return a.r.Delete(ctx, "/api/cart/item/"+seg(lineID), nil, opts...)
}

func (a *CartAPI) Clear(ctx context.Context, opts ...apiclient.RequestOption) error {
	return a.r.Delete(ctx, "/api/cart", nil, opts...)
}

func (a *CartAPI) Total(ctx context.Context, opts ...apiclient.RequestOption) (float64, error) {
	var out float64
	err := a.r.Get(ctx, "/api/cart/total", &out, opts...)
	return out, err
}

func (a *CartAPI) Count(ctx context.Context, opts ...apiclient.RequestOption) (int, error) {
	var out int
	err := a.r.Get(ctx, "/api/cart/count", &out, opts...)
	return out, err
}

// Sync replaces the server cart with lines and returns the resulting cart.
func (a *CartAPI) Sync(ctx context.Context, lines []model.AddToCartRequest, opts ...apiclient.RequestOption) (*model.Cart, error) {
	if lines == nil {
		lines = []model.AddToCartRequest{}
	}
	var out model.Cart
	if err := a.r.Post(ctx, "/api/cart/sync", lines, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate asks the server to check stock and prices; the message describes the outcome.
func (a *CartAPI) Validate(ctx context.Context, opts ...apiclient.RequestOption) (string, error) {
	var out string
	err := a.r.Post(ctx, "/api/cart/validate", nil, &out, opts...)
	return out, err
}
