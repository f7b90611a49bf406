package service

import (
	"context"
	"sync/atomic"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	domainauth "github.com/SlowBrain97/E-Commerce/internal/domain/auth"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// fakeAuth is a test helper implementing AuthBackend with overridable funcs.
type fakeAuth struct {
	loginFunc    func(context.Context, domainauth.LoginRequest) (*domainauth.AuthResponse, error)
	registerFunc func(context.Context, domainauth.RegisterRequest) (*domainauth.AuthResponse, error)
	logoutFunc   func(context.Context) error
	meFunc       func(context.Context) (*domainauth.UserInfo, error)
	changeFunc   func(context.Context, domainauth.ChangePasswordRequest) error
	oauthFunc    func(context.Context, map[string]string) (*domainauth.AuthResponse, error)

	calls atomic.Int32
}

func (f *fakeAuth) Login(ctx context.Context, req domainauth.LoginRequest, _ ...apiclient.RequestOption) (*domainauth.AuthResponse, error) {
	f.calls.Add(1)
	return f.loginFunc(ctx, req)
}

func (f *fakeAuth) Register(ctx context.Context, req domainauth.RegisterRequest, _ ...apiclient.RequestOption) (*domainauth.AuthResponse, error) {
	f.calls.Add(1)
	return f.registerFunc(ctx, req)
}

func (f *fakeAuth) Logout(ctx context.Context, _ ...apiclient.RequestOption) error {
	f.calls.Add(1)
	if f.logoutFunc == nil {
		return nil
	}
	return f.logoutFunc(ctx)
}

func (f *fakeAuth) Me(ctx context.Context, _ ...apiclient.RequestOption) (*domainauth.UserInfo, error) {
	f.calls.Add(1)
	return f.meFunc(ctx)
}

func (f *fakeAuth) ChangePassword(ctx context.Context, req domainauth.ChangePasswordRequest, _ ...apiclient.RequestOption) error {
	f.calls.Add(1)
	return f.changeFunc(ctx, req)
}

func (f *fakeAuth) OAuth2Callback(ctx context.Context, params map[string]string, _ ...apiclient.RequestOption) (*domainauth.AuthResponse, error) {
	f.calls.Add(1)
	return f.oauthFunc(ctx, params)
}

// fakeCart is a test helper implementing CartBackend over an in-memory cart.
type fakeCart struct {
	cart model.Cart

	addErr    error
	updateErr error
	removeErr error
	clearErr  error
	getErr    error
	syncErr   error

	calls atomic.Int32
	gets  atomic.Int32
}

func (f *fakeCart) Get(context.Context, ...apiclient.RequestOption) (*model.Cart, error) {
	f.calls.Add(1)
	f.gets.Add(1)
	if f.getErr != nil {
		return nil, f.getErr
	}
	c := f.cart.Clone()
	return c, nil
}

func (f *fakeCart) Add(_ context.Context, req model.AddToCartRequest, _ ...apiclient.RequestOption) (*model.CartItem, error) {
	f.calls.Add(1)
	if f.addErr != nil {
		return nil, f.addErr
	}
	item := model.CartItem{ID: "line-" + req.ProductID, ProductID: req.ProductID, VariantID: req.VariantID, Quantity: req.Quantity, Price: 100}
	f.cart.Items = append(f.cart.Items, item)
	f.recount()
	return &item, nil
}

func (f *fakeCart) UpdateItem(_ context.Context, lineID string, quantity int, _ ...apiclient.RequestOption) (*model.CartItem, error) {
	f.calls.Add(1)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.cart.Items {
		if f.cart.Items[i].ID == lineID {
			f.cart.Items[i].Quantity = quantity
			f.recount()
			item := f.cart.Items[i]
			return &item, nil
		}
	}
	return nil, apiclient.NewHTTPError(404, "Cart item not found")
}

func (f *fakeCart) RemoveItem(_ context.Context, lineID string, _ ...apiclient.RequestOption) error {
	f.calls.Add(1)
	if f.removeErr != nil {
		return f.removeErr
	}
	kept := f.cart.Items[:0]
	for _, it := range f.cart.Items {
		if it.ID != lineID {
			kept = append(kept, it)
		}
	}
	f.cart.Items = kept
	f.recount()
	return nil
}

func (f *fakeCart) Clear(context.Context, ...apiclient.RequestOption) error {
	f.calls.Add(1)
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cart = model.Cart{Currency: f.cart.Currency}
	return nil
}

func (f *fakeCart) Sync(_ context.Context, lines []model.AddToCartRequest, _ ...apiclient.RequestOption) (*model.Cart, error) {
	f.calls.Add(1)
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	f.cart.Items = nil
	for _, l := range lines {
		f.cart.Items = append(f.cart.Items, model.CartItem{ID: "line-" + l.ProductID, ProductID: l.ProductID, Quantity: l.Quantity, Price: 100})
	}
	f.recount()
	return f.cart.Clone(), nil
}

func (f *fakeCart) Validate(context.Context, ...apiclient.RequestOption) (string, error) {
	f.calls.Add(1)
	return "Cart is valid", nil
}

func (f *fakeCart) recount() {
	f.cart.TotalItems, f.cart.TotalPrice = 0, 0
	for _, it := range f.cart.Items {
		f.cart.TotalItems += it.Quantity
		f.cart.TotalPrice += it.Price * float64(it.Quantity)
	}
}

func serverErr(status int, msg string) error {
	return apiclient.NewHTTPError(status, msg)
}
