package api

import (
	"context"
	"net/url"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// UsersAPI wraps /api/users endpoints.
type UsersAPI struct{ r Requester }

func (a *UsersAPI) Profile(ctx context.Context, opts ...apiclient.RequestOption) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := a.r.Get(ctx, "/api/users/profile", &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsersAPI) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest, opts ...apiclient.RequestOption) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := a.r.Put(ctx, "/api/users/profile", req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsersAPI) ProfileByID(ctx context.Context, userID int64, opts ...apiclient.RequestOption) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := a.r.Get(ctx, "/api/users/profile/"+id(userID), &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsersAPI) VerifyEmail(ctx context.Context, token string, opts ...apiclient.RequestOption) error {
	return a.r.Post(ctx, "/api/users/verify-email", nil, nil, withQuery(opts, url.Values{"token": {token}})...)
}

func (a *UsersAPI) Deactivate(ctx context.Context, opts ...apiclient.RequestOption) error {
	return a.r.Post(ctx, "/api/users/deactivate", nil, nil, opts...)
}

func (a *UsersAPI) All(ctx context.Context, p model.PageParams, opts ...apiclient.RequestOption) (*model.Page[model.UserProfile], error) {
	var out model.Page[model.UserProfile]
	if err := a.r.Get(ctx, "/api/users/admin/all", &out, withQuery(opts, p.Values())...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsersAPI) Search(ctx context.Context, query string, p model.PageParams, opts ...apiclient.RequestOption) (*model.Page[model.UserProfile], error) {
	v := p.Values()
	v.Set("query", query)
	var out model.Page[model.UserProfile]
	if err := a.r.Get(ctx, "/api/users/admin/search", &out, withQuery(opts, v)...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsersAPI) Stats(ctx context.Context, opts ...apiclient.RequestOption) (map[string]any, error) {
	var out map[string]any
	err := a.r.Get(ctx, "/api/users/admin/stats", &out, opts...)
	return out, err
}
