package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	"github.com/SlowBrain97/E-Commerce/internal/util"
)

type pageFlags struct {
	page int
	size int
	sort string
	dir  string
}

func (p *pageFlags) params() model.PageParams {
	return model.PageParams{Page: p.page, Size: p.size, SortBy: p.sort, SortDirection: strings.ToUpper(p.dir)}
}

func runProducts(ctx *commandContext, args []string) error {
	var (
		out        outputOptions
		pf         pageFlags
		query      string
		categoryID int64
		featured   bool
	)
	fs := newFlagSet(ctx, "products", &out)
	fs.StringVar(&query, "q", "", "search term")
	fs.Int64Var(&categoryID, "category", 0, "category ID")
	fs.BoolVar(&featured, "featured", false, "list featured products only")
	fs.IntVar(&pf.page, "page", 0, "zero-based page")
	fs.IntVar(&pf.size, "size", 12, "page size")
	fs.StringVar(&pf.sort, "sort", "", "sort field")
	fs.StringVar(&pf.dir, "dir", "", "sort direction (asc or desc)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	api := ctx.App.API.Products
	if featured {
		products, err := api.Featured(ctx.Ctx)
		if err != nil {
			return err
		}
		return emit(ctx, out, products, productTable(products))
	}

	var (
		page *model.Page[model.Product]
		err  error
	)
	switch {
	case strings.TrimSpace(query) != "":
		page, err = api.SimpleSearch(ctx.Ctx, strings.TrimSpace(query), pf.params())
	case categoryID > 0:
		page, err = api.ByCategory(ctx.Ctx, categoryID, pf.params())
	default:
		page, err = api.List(ctx.Ctx, pf.params())
	}
	if err != nil {
		return err
	}
	return emit(ctx, out, page, func(w io.Writer) error {
		if err := productTable(page.Data)(w); err != nil {
			return err
		}
		return row(w, fmt.Sprintf("page %d/%d, %d products", page.Page+1, max(page.TotalPages, 1), page.TotalElements))
	})
}

func productTable(products []model.Product) func(w io.Writer) error {
	return func(w io.Writer) error {
		if len(products) == 0 {
			return writeln(w, "No products found")
		}
		if err := row(w, "ID", "NAME", "CATEGORY", "PRICE", "STOCK", "RATING"); err != nil {
			return err
		}
		for _, p := range products {
			if err := row(w,
				p.ID,
				util.TruncateText(p.Name, 40),
				p.Category.Name,
				util.FormatPrice(p.Price, ""),
				stockLabel(p),
				fmt.Sprintf("%.1f (%d)", p.AverageRating, p.ReviewCount),
			); err != nil {
				return err
			}
		}
		return nil
	}
}

func stockLabel(p model.Product) string {
	if !p.InStock() {
		return "out of stock"
	}
	return util.FormatNumber(int64(p.StockQuantity))
}

type productDetail struct {
	Product *model.Product            `json:"product"`
	Related []model.Product           `json:"related"`
	Reviews *model.Page[model.Review] `json:"reviews"`
}

func runProduct(ctx *commandContext, args []string) error {
	var (
		out outputOptions
		id  int64
	)
	fs := newFlagSet(ctx, "product", &out)
	fs.Int64Var(&id, "id", 0, "product ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if id <= 0 {
		_ = writeln(ctx.Stderr, "-id is required")
		return errUsage
	}

	var detail productDetail
	g, gctx := errgroup.WithContext(ctx.Ctx)
	g.Go(func() (err error) {
		detail.Product, err = ctx.App.API.Products.Get(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		detail.Related, err = ctx.App.API.Products.Related(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		detail.Reviews, err = ctx.App.API.Reviews.ForProduct(gctx, id, model.PageParams{Size: 5}, model.ReviewApproved)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return emit(ctx, out, detail, func(w io.Writer) error {
		p := detail.Product
		if err := row(w, "Name:", p.Name); err != nil {
			return err
		}
		if err := row(w, "SKU:", p.SKU); err != nil {
			return err
		}
		if err := row(w, "Price:", util.FormatPrice(p.Price, "")); err != nil {
			return err
		}
		if err := row(w, "Stock:", stockLabel(*p)); err != nil {
			return err
		}
		if err := row(w, "Category:", p.Category.Name); err != nil {
			return err
		}
		if p.ShortDescription != "" {
			if err := row(w, "About:", util.TruncateText(p.ShortDescription, 80)); err != nil {
				return err
			}
		}
		for _, v := range p.Variants {
			if err := row(w, "Variant:", v.VariantType+" "+v.VariantValue, util.FormatPrice(v.Price, "")); err != nil {
				return err
			}
		}
		if detail.Reviews != nil {
			for _, r := range detail.Reviews.Data {
				if err := row(w, "Review:", fmt.Sprintf("%d/5", r.Rating), r.UserName, util.TruncateText(r.Title, 40)); err != nil {
					return err
				}
			}
		}
		if len(detail.Related) > 0 {
			names := make([]string, 0, len(detail.Related))
			for _, rp := range detail.Related {
				names = append(names, rp.Name)
			}
			return row(w, "Related:", util.TruncateText(strings.Join(names, ", "), 80))
		}
		return nil
	})
}

func runCategories(ctx *commandContext, args []string) error {
	var (
		out      outputOptions
		featured bool
		tree     bool
		parentID int64
		query    string
	)
	fs := newFlagSet(ctx, "categories", &out)
	fs.BoolVar(&featured, "featured", false, "featured categories only")
	fs.BoolVar(&tree, "tree", false, "full hierarchy")
	fs.Int64Var(&parentID, "parent", 0, "subcategories of this category")
	fs.StringVar(&query, "q", "", "search term")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	api := ctx.App.API.Categories
	var (
		categories []model.Category
		err        error
	)
	switch {
	case featured:
		categories, err = api.Featured(ctx.Ctx)
	case tree:
		categories, err = api.Hierarchy(ctx.Ctx)
	case parentID > 0:
		categories, err = api.Subcategories(ctx.Ctx, parentID)
	case strings.TrimSpace(query) != "":
		categories, err = api.Search(ctx.Ctx, strings.TrimSpace(query))
	default:
		categories, err = api.Main(ctx.Ctx)
	}
	if err != nil {
		return err
	}
	return emit(ctx, out, categories, func(w io.Writer) error {
		if len(categories) == 0 {
			return writeln(w, "No categories found")
		}
		if err := row(w, "ID", "NAME", "SUBCATEGORIES", "FEATURED"); err != nil {
			return err
		}
		for _, c := range categories {
			if err := row(w, c.ID, c.Name, c.SubcategoryCount, c.IsFeatured); err != nil {
				return err
			}
		}
		return nil
	})
}

func runReviews(ctx *commandContext, args []string) error {
	var (
		out       outputOptions
		pf        pageFlags
		productID int64
		mine      bool
		status    string
	)
	fs := newFlagSet(ctx, "reviews", &out)
	fs.Int64Var(&productID, "product", 0, "product ID")
	fs.BoolVar(&mine, "mine", false, "list your own reviews")
	fs.StringVar(&status, "status", string(model.ReviewApproved), "review status filter for -product")
	fs.IntVar(&pf.page, "page", 0, "zero-based page")
	fs.IntVar(&pf.size, "size", 10, "page size")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		page *model.Page[model.Review]
		err  error
	)
	switch {
	case mine:
		if _, err := signedIn(ctx); err != nil {
			return err
		}
		page, err = ctx.App.API.Reviews.Mine(ctx.Ctx, pf.params())
	case productID > 0:
		page, err = ctx.App.API.Reviews.ForProduct(ctx.Ctx, productID, pf.params(), model.ReviewStatus(strings.ToUpper(status)))
	default:
		_ = writeln(ctx.Stderr, "either -product or -mine is required")
		return errUsage
	}
	if err != nil {
		return err
	}
	return emit(ctx, out, page, func(w io.Writer) error {
		if len(page.Data) == 0 {
			return writeln(w, "No reviews yet")
		}
		if err := row(w, "ID", "PRODUCT", "RATING", "BY", "STATUS", "TITLE"); err != nil {
			return err
		}
		for _, r := range page.Data {
			if err := row(w, r.ID, util.TruncateText(r.ProductName, 30), r.Rating, r.UserName, r.Status, util.TruncateText(r.Title, 40)); err != nil {
				return err
			}
		}
		return nil
	})
}
