package api

import (
	"context"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// DashboardAPI wraps the admin /api/dashboard endpoints.
type DashboardAPI struct{ r Requester }

func getInto[T any](ctx context.Context, r Requester, path string, opts []apiclient.RequestOption) (*T, error) {
	var out T
	if err := r.Get(ctx, path, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *DashboardAPI) Overview(ctx context.Context, opts ...apiclient.RequestOption) (*model.DashboardOverview, error) {
	return getInto[model.DashboardOverview](ctx, a.r, "/api/dashboard/overview", opts)
}

func (a *DashboardAPI) Sales(ctx context.Context, opts ...apiclient.RequestOption) (*model.SalesStats, error) {
	return getInto[model.SalesStats](ctx, a.r, "/api/dashboard/sales", opts)
}

func (a *DashboardAPI) Products(ctx context.Context, opts ...apiclient.RequestOption) (*model.ProductStats, error) {
	return getInto[model.ProductStats](ctx, a.r, "/api/dashboard/products", opts)
}

func (a *DashboardAPI) Users(ctx context.Context, opts ...apiclient.RequestOption) (*model.UserStats, error) {
	return getInto[model.UserStats](ctx, a.r, "/api/dashboard/users", opts)
}

func (a *DashboardAPI) Orders(ctx context.Context, opts ...apiclient.RequestOption) (*model.OrderStats, error) {
	return getInto[model.OrderStats](ctx, a.r, "/api/dashboard/orders", opts)
}

func (a *DashboardAPI) RecentOrders(ctx context.Context, opts ...apiclient.RequestOption) (*model.RecentOrders, error) {
	return getInto[model.RecentOrders](ctx, a.r, "/api/dashboard/recent-orders", opts)
}

func (a *DashboardAPI) TopProducts(ctx context.Context, opts ...apiclient.RequestOption) (*model.TopProducts, error) {
	return getInto[model.TopProducts](ctx, a.r, "/api/dashboard/top-products", opts)
}
