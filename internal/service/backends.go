package service

import (
	"context"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	domainauth "github.com/SlowBrain97/E-Commerce/internal/domain/auth"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// AuthBackend is the subset of the auth endpoints the session store drives.
// *api.AuthAPI implements it.
type AuthBackend interface {
	Login(ctx context.Context, req domainauth.LoginRequest, opts ...apiclient.RequestOption) (*domainauth.AuthResponse, error)
	Register(ctx context.Context, req domainauth.RegisterRequest, opts ...apiclient.RequestOption) (*domainauth.AuthResponse, error)
	Logout(ctx context.Context, opts ...apiclient.RequestOption) error
	Me(ctx context.Context, opts ...apiclient.RequestOption) (*domainauth.UserInfo, error)
	ChangePassword(ctx context.Context, req domainauth.ChangePasswordRequest, opts ...apiclient.RequestOption) error
	OAuth2Callback(ctx context.Context, params map[string]string, opts ...apiclient.RequestOption) (*domainauth.AuthResponse, error)
}

// CartBackend is the subset of the cart endpoints the cart store drives.
// *api.CartAPI implements it.
type CartBackend interface {
	Get(ctx context.Context, opts ...apiclient.RequestOption) (*model.Cart, error)
	Add(ctx context.Context, req model.AddToCartRequest, opts ...apiclient.RequestOption) (*model.CartItem, error)
	UpdateItem(ctx context.Context, lineID string, quantity int, opts ...apiclient.RequestOption) (*model.CartItem, error)
	RemoveItem(ctx context.Context, lineID string, opts ...apiclient.RequestOption) error
	Clear(ctx context.Context, opts ...apiclient.RequestOption) error
	Sync(ctx context.Context, lines []model.AddToCartRequest, opts ...apiclient.RequestOption) (*model.Cart, error)
	Validate(ctx context.Context, opts ...apiclient.RequestOption) (string, error)
}

// CredentialResetter drops the credentials held by the transport.
// *apiclient.Client implements it.
type CredentialResetter interface {
	ResetCredentials() error
}
