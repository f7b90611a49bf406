package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// DefaultLowStockThreshold is used when the caller passes no threshold.
const DefaultLowStockThreshold = 10

// ProductsAPI wraps /api/products endpoints.
type ProductsAPI struct{ r Requester }

func (a *ProductsAPI) List(ctx context.Context, p model.PageParams, opts ...apiclient.RequestOption) (*model.Page[model.Product], error) {
	var out model.Page[model.Product]
	if err := a.r.Get(ctx, "/api/products", &out, withQuery(opts, p.Values())...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductsAPI) Get(ctx context.Context, productID int64, opts ...apiclient.RequestOption) (*model.Product, error) {
	var out model.Product
	if err := a.r.Get(ctx, "/api/products/"+id(productID), &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductsAPI) Create(ctx context.Context, req model.ProductCreateRequest, opts ...apiclient.RequestOption) (*model.Product, error) {
	var out model.Product
	if err := a.r.Post(ctx, "/api/products", req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductsAPI) Update(ctx context.Context, productID int64, req model.ProductUpdateRequest, opts ...apiclient.RequestOption) (*model.Product, error) {
	var out model.Product
	if err := a.r.Put(ctx, "/api/products/"+id(productID), req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductsAPI) Delete(ctx context.Context, productID int64, opts ...apiclient.RequestOption) error {
	return a.r.Delete(ctx, "/api/products/"+id(productID), nil, opts...)
}

func (a *ProductsAPI) Search(ctx context.Context, req model.ProductSearchRequest, opts ...apiclient.RequestOption) (*model.Page[model.Product], error) {
	var out model.Page[model.Product]
	if err := a.r.Post(ctx, "/api/products/search", req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// SimpleSearch is the free-text search used by the search box.
func (a *ProductsAPI) SimpleSearch(ctx context.Context, q string, p model.PageParams, opts ...apiclient.RequestOption) (*model.Page[model.Product], error) {
	v := p.Values()
	v.Set("q", q)
	var out model.Page[model.Product]
	if err := a.r.Get(ctx, "/api/products/search/simple", &out, withQuery(opts, v)...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductsAPI) Featured(ctx context.Context, opts ...apiclient.RequestOption) ([]model.Product, error) {
	var out []model.Product
	err := a.r.Get(ctx, "/api/products/featured", &out, opts...)
	return out, err
}

func (a *ProductsAPI) ByCategory(ctx context.Context, categoryID int64, p model.PageParams, opts ...apiclient.RequestOption) (*model.Page[model.Product], error) {
	var out model.Page[model.Product]
	if err := a.r.Get(ctx, "/api/products/category/"+id(categoryID), &out, withQuery(opts, p.Values())...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductsAPI) Related(ctx context.Context, productID int64, opts ...apiclient.RequestOption) ([]model.Product, error) {
	var out []model.Product
	err := a.r.Get(ctx, "/api/products/"+id(productID)+"/related", &out, opts...)
	return out, err
}

// LowStock lists products at or below threshold; zero means DefaultLowStockThreshold.
func (a *ProductsAPI) LowStock(ctx context.Context, threshold int, opts ...apiclient.RequestOption) ([]model.Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	var out []model.Product
	v := url.Values{"threshold": {strconv.Itoa(threshold)}}
	err := a.r.Get(ctx, "/api/products/admin/low-stock", &out, withQuery(opts, v)...)
	return out, err
}

func (a *ProductsAPI) UpdateStock(ctx context.Context, productID int64, stock int, opts ...apiclient.RequestOption) (*model.Product, error) {
	var out model.Product
	v := url.Values{"stockQuantity": {strconv.Itoa(stock)}}
	if err := a.r.Patch(ctx, "/api/products/"+id(productID)+"/stock", nil, &out, withQuery(opts, v)...); err != nil {
		return nil, err
	}
	return &out, nil
}
