// Package api holds typed wrappers over the backend's REST endpoints.
// Every call goes through a Requester, normally *apiclient.Client.
package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
)

// Requester is the subset of *apiclient.Client the wrappers need.
type Requester interface {
	Get(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...apiclient.RequestOption) error
	Put(ctx context.Context, path string, body, out any, opts ...apiclient.RequestOption) error
	Patch(ctx context.Context, path string, body, out any, opts ...apiclient.RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
}

var _ Requester = (*apiclient.Client)(nil)

// API bundles every endpoint group over one Requester.
type API struct {
	Auth       *AuthAPI
	Cart       *CartAPI
	Products   *ProductsAPI
	Categories *CategoriesAPI
	Reviews    *ReviewsAPI
	Users      *UsersAPI
	Dashboard  *DashboardAPI
}

// New builds every endpoint group.
func New(r Requester) *API {
	return &API{
		Auth:       &AuthAPI{r: r},
		Cart:       &CartAPI{r: r},
		Products:   &ProductsAPI{r: r},
		Categories: &CategoriesAPI{r: r},
		Reviews:    &ReviewsAPI{r: r},
		Users:      &UsersAPI{r: r},
		Dashboard:  &DashboardAPI{r: r},
	}
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func seg(s string) string { return url.PathEscape(s) }

func withQuery(opts []apiclient.RequestOption, v url.Values) []apiclient.RequestOption {
	if len(v) == 0 {
		return opts
	}
	return append([]apiclient.RequestOption{apiclient.WithQuery(v)}, opts...)
}
