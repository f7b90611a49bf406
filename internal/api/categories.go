package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// CategoriesAPI wraps /api/categories endpoints.
type CategoriesAPI struct{ r Requester }

func (a *CategoriesAPI) list(ctx context.Context, path string, opts []apiclient.RequestOption) ([]model.Category, error) {
	var out []model.Category
	err := a.r.Get(ctx, path, &out, opts...)
	return out, err
}

func (a *CategoriesAPI) one(ctx context.Context, method, path string, body any, opts []apiclient.RequestOption) (*model.Category, error) {
	var out model.Category
	var err error
	switch method {
	case http.MethodPost:
		err = a.r.Post(ctx, path, body, &out, opts...)
	case http.MethodPut:
		err = a.r.Put(ctx, path, body, &out, opts...)
	default:
		err = a.r.Get(ctx, path, &out, opts...)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Hierarchy returns the whole category tree.
func (a *CategoriesAPI) Hierarchy(ctx context.Context, opts ...apiclient.RequestOption) ([]model.Category, error) {
	return a.list(ctx, "/api/categories/hierarchy", opts)
}

func (a *CategoriesAPI) Get(ctx context.Context, categoryID int64, opts ...apiclient.RequestOption) (*model.Category, error) {
	return a.one(ctx, http.MethodGet, "/api/categories/"+id(categoryID), nil, opts)
}

func (a *CategoriesAPI) Create(ctx context.Context, req model.CategoryCreateRequest, opts ...apiclient.RequestOption) (*model.Category, error) {
	return a.one(ctx, http.MethodPost, "/api/categories", req, opts)
}

func (a *CategoriesAPI) Update(ctx context.Context, categoryID int64, req model.CategoryUpdateRequest, opts ...apiclient.RequestOption) (*model.Category, error) {
	return a.one(ctx, http.MethodPut, "/api/categories/"+id(categoryID), req, opts)
}

func (a *CategoriesAPI) Delete(ctx context.Context, categoryID int64, opts ...apiclient.RequestOption) error {
	return a.r.Delete(ctx, "/api/categories/"+id(categoryID), nil, opts...)
}

func (a *CategoriesAPI) Main(ctx context.Context, opts ...apiclient.RequestOption) ([]model.Category, error) {
	return a.list(ctx, "/api/categories/main-categories", opts)
}

func (a *CategoriesAPI) Subcategories(ctx context.Context, parentID int64, opts ...apiclient.RequestOption) ([]model.Category, error) {
	return a.list(ctx, "/api/categories/"+id(parentID)+"/subcategories", opts)
}

func (a *CategoriesAPI) Featured(ctx context.Context, opts ...apiclient.RequestOption) ([]model.Category, error) {
	return a.list(ctx, "/api/categories/featured", opts)
}

func (a *CategoriesAPI) WithProducts(ctx context.Context, opts ...apiclient.RequestOption) ([]model.Category, error) {
	return a.list(ctx, "/api/categories/with-products", opts)
}

func (a *CategoriesAPI) Search(ctx context.Context, q string, opts ...apiclient.RequestOption) ([]model.Category, error) {
	return a.list(ctx, "/api/categories/search", withQuery(opts, url.Values{"q": {q}}))
}

func (a *CategoriesAPI) SetFeatured(ctx context.Context, categoryID int64, featured bool, opts ...apiclient.RequestOption) (*model.Category, error) {
	v := url.Values{"featured": {strconv.FormatBool(featured)}}
	return a.one(ctx, http.MethodPut, "/api/categories/"+id(categoryID)+"/featured", nil, withQuery(opts, v))
}

func (a *CategoriesAPI) SetActive(ctx context.Context, categoryID int64, active bool, opts ...apiclient.RequestOption) (*model.Category, error) {
	v := url.Values{"active": {strconv.FormatBool(active)}}
	return a.one(ctx, http.MethodPut, "/api/categories/"+id(categoryID)+"/active", nil, withQuery(opts, v))
}

// Stats returns the backend's free-form category statistics.
func (a *CategoriesAPI) Stats(ctx context.Context, opts ...apiclient.RequestOption) (map[string]any, error) {
	var out map[string]any
	err := a.r.Get(ctx, "/api/categories/stats", &out, opts...)
	return out, err
}
