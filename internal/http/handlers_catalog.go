package httpx

import (
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/SlowBrain97/E-Commerce/internal/api"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
)

// CatalogHandlers serves the public catalog pages. Backend failures are
// surfaced by the API client itself, so handlers only map the status.
type CatalogHandlers struct {
	API *api.API
}

// Home shows featured products and the main categories.
// GET /.
func (h *CatalogHandlers) Home(w http.ResponseWriter, r *http.Request) {
	var (
		featured   []model.Product
		categories []model.Category
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		featured, err = h.API.Products.Featured(ctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.API.Categories.Main(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, map[string]any{"featured": featured, "categories": categories})
}

// Products lists products; q searches by name, category narrows to one category.
// GET /products.
func (h *CatalogHandlers) Products(w http.ResponseWriter, r *http.Request) {
	params := ParsePageParams(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		page *model.Page[model.Product]
		err  error
	)
	switch {
	case q != "":
		page, err = h.API.Products.SimpleSearch(r.Context(), q, params)
	case r.URL.Query().Get("category") != "":
		categoryID := int64(parseIntQuery(r, "category", 0))
		page, err = h.API.Products.ByCategory(r.Context(), categoryID, params)
	default:
		page, err = h.API.Products.List(r.Context(), params)
	}
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, page)
}

// Product shows one product with related products and approved reviews.
// GET /products/{id}.
func (h *CatalogHandlers) Product(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeActionError(w, r, err)
		return
	}

	var (
		product *model.Product
		related []model.Product
		reviews *model.Page[model.Review]
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		product, err = h.API.Products.Get(ctx, productID)
		return err
	})
	g.Go(func() (err error) {
		related, err = h.API.Products.Related(ctx, productID)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = h.API.Reviews.ForProduct(ctx, productID, ParsePageParams(r), model.ReviewApproved)
		return err
	})
	if err := g.Wait(); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, map[string]any{"product": product, "related": related, "reviews": reviews})
}

// Categories returns the category tree.
// GET /categories.
func (h *CatalogHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	tree, err := h.API.Categories.Hierarchy(r.Context())
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, tree)
}
