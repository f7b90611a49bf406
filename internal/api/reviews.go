package api

import (
	"context"
	"net/url"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// ReviewsAPI wraps /api/reviews endpoints.
type ReviewsAPI struct{ r Requester }

func (a *ReviewsAPI) Create(ctx context.Context, req model.CreateReviewRequest, opts ...apiclient.RequestOption) (*model.Review, error) {
	var out model.Review
	if err := a.r.Post(ctx, "/api/reviews", req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ReviewsAPI) Get(ctx context.Context, reviewID int64, opts ...apiclient.RequestOption) (*model.Review, error) {
	var out model.Review
	if err := a.r.Get(ctx, "/api/reviews/"+id(reviewID), &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ReviewsAPI) Update(ctx context.Context, reviewID int64, req model.CreateReviewRequest, opts ...apiclient.RequestOption) (*model.Review, error) {
	var out model.Review
	if err := a.r.Put(ctx, "/api/reviews/"+id(reviewID), req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ReviewsAPI) Delete(ctx context.Context, reviewID int64, opts ...apiclient.RequestOption) error {
	return a.r.Delete(ctx, "/api/reviews/"+id(reviewID), nil, opts...)
}

// ForProduct lists a product's reviews; an empty status lists every status the caller may see.
func (a *ReviewsAPI) ForProduct(ctx context.Context, productID int64, p model.PageParams, status model.ReviewStatus, opts ...apiclient.RequestOption) (*model.Page[model.Review], error) {
	v := p.Values()
	if status != "" {
		v.Set("status", string(status))
	}
	var out model.Page[model.Review]
	if err := a.r.Get(ctx, "/api/reviews/product/"+id(productID), &out, withQuery(opts, v)...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mine lists the current user's reviews.
func (a *ReviewsAPI) Mine(ctx context.Context, p model.PageParams, opts ...apiclient.RequestOption) (*model.Page[model.Review], error) {
	var out model.Page[model.Review]
	if err := a.r.Get(ctx, "/api/reviews/user", &out, withQuery(opts, p.Values())...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ReviewsAPI) MarkHelpful(ctx context.Context, reviewID int64, opts ...apiclient.RequestOption) error {
	return a.r.Post(ctx, "/api/reviews/"+id(reviewID)+"/helpful", nil, nil, opts...)
}

func (a *ReviewsAPI) UpdateStatus(ctx context.Context, reviewID int64, status model.ReviewStatus, opts ...apiclient.RequestOption) (*model.Review, error) {
	var out model.Review
	v := url.Values{"status": {string(status)}}
	if err := a.r.Put(ctx, "/api/reviews/"+id(reviewID)+"/status", nil, &out, withQuery(opts, v)...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pending lists reviews awaiting moderation.
func (a *ReviewsAPI) Pending(ctx context.Context, p model.PageParams, opts ...apiclient.RequestOption) (*model.Page[model.Review], error) {
	var out model.Page[model.Review]
	if err := a.r.Get(ctx, "/api/reviews/admin/pending", &out, withQuery(opts, p.Values())...); err != nil {
		return nil, err
	}
	return &out, nil
}
