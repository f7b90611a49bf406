package api

import (
	"context"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	domainauth "github.com/SlowBrain97/E-Commerce/internal/domain/auth"
)

// AuthAPI wraps /auth endpoints.
type AuthAPI struct{ r Requester }

func (a *AuthAPI) Login(ctx context.Context, req domainauth.LoginRequest, opts ...apiclient.RequestOption) (*domainauth.AuthResponse, error) {
	var out domainauth.AuthResponse
	if err := a.r.Post(ctx, "/auth/login", req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Register(ctx context.Context, req domainauth.RegisterRequest, opts ...apiclient.RequestOption) (*domainauth.AuthResponse, error) {
	var out domainauth.AuthResponse
	if err := a.r.Post(ctx, "/auth/register", req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Logout(ctx context.Context, opts ...apiclient.RequestOption) error {
	return a.r.Post(ctx, "/auth/logout", nil, nil, opts...)
}

// Me returns the identity behind the current credentials.
func (a *AuthAPI) Me(ctx context.Context, opts ...apiclient.RequestOption) (*domainauth.UserInfo, error) {
	var out domainauth.UserInfo
	if err := a.r.Get(ctx, "/auth/me", &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ChangePassword(ctx context.Context, req domainauth.ChangePasswordRequest, opts ...apiclient.RequestOption) error {
	return a.r.Post(ctx, "/auth/change-password", req, nil, opts...)
}

// OAuth2Callback completes a provider login with the callback parameters.
func (a *AuthAPI) OAuth2Callback(ctx context.Context, params map[string]string, opts ...apiclient.RequestOption) (*domainauth.AuthResponse, error) {
	var out domainauth.AuthResponse
	if err := a.r.Post(ctx, "/auth/oauth2/callback", params, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}
