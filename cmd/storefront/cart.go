package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	"github.com/SlowBrain97/E-Commerce/internal/service"
	"github.com/SlowBrain97/E-Commerce/internal/util"
)

const msgCartLoadFailed = "Failed to load cart"

func runCartShow(ctx *commandContext, args []string) error {
	var (
		out    outputOptions
		cached bool
	)
	fs := newFlagSet(ctx, "cart", &out)
	fs.BoolVar(&cached, "cached", false, "show the locally cached cart without calling the backend")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if !cached {
		if err := ctx.App.Cart.Fetch(ctx.Ctx); err != nil {
			return reportQuiet(ctx, err, msgCartLoadFailed)
		}
	}
	return printCart(ctx, out, ctx.App.Cart.Snapshot())
}

func runCartAdd(ctx *commandContext, args []string) error {
	var (
		out       outputOptions
		productID string
		variantID string
		quantity  int
	)
	fs := newFlagSet(ctx, "cart-add", &out)
	fs.StringVar(&productID, "product", "", "product ID")
	fs.StringVar(&variantID, "variant", "", "variant ID (optional)")
	fs.IntVar(&quantity, "quantity", 1, "units to add")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(productID) == "" {
		_ = writeln(ctx.Stderr, "-product is required")
		return errUsage
	}
	if err := ctx.App.Cart.Add(ctx.Ctx, productID, variantID, quantity); err != nil {
		return reportError(ctx, err)
	}
	return printCart(ctx, out, ctx.App.Cart.Snapshot())
}

func runCartUpdate(ctx *commandContext, args []string) error {
	var (
		out      outputOptions
		lineID   string
		quantity int
	)
	fs := newFlagSet(ctx, "cart-update", &out)
	fs.StringVar(&lineID, "item", "", "cart line ID")
	fs.IntVar(&quantity, "quantity", 0, "new quantity (at least 1)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(lineID) == "" {
		_ = writeln(ctx.Stderr, "-item is required")
		return errUsage
	}
	if quantity < 1 {
		return reportError(ctx, service.ErrInvalidQuantity)
	}
	if err := requireLine(ctx, lineID); err != nil {
		return err
	}
	if err := ctx.App.Cart.UpdateItem(ctx.Ctx, lineID, quantity); err != nil {
		return reportError(ctx, err)
	}
	return printCart(ctx, out, ctx.App.Cart.Snapshot())
}

func runCartRemove(ctx *commandContext, args []string) error {
	var (
		out    outputOptions
		lineID string
	)
	fs := newFlagSet(ctx, "cart-remove", &out)
	fs.StringVar(&lineID, "item", "", "cart line ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(lineID) == "" {
		_ = writeln(ctx.Stderr, "-item is required")
		return errUsage
	}
	if err := requireLine(ctx, lineID); err != nil {
		return err
	}
	if err := ctx.App.Cart.Remove(ctx.Ctx, lineID); err != nil {
		return reportError(ctx, err)
	}
	return printCart(ctx, out, ctx.App.Cart.Snapshot())
}

// requireLine loads the server cart and checks lineID is one of its lines.
func requireLine(ctx *commandContext, lineID string) error {
	if err := ctx.App.Cart.Fetch(ctx.Ctx); err != nil {
		return reportQuiet(ctx, err, msgCartLoadFailed)
	}
	_, err := ctx.App.Cart.Line(lineID)
	return reportError(ctx, err)
}

func runCartClear(ctx *commandContext, args []string) error {
	fs := newFlagSet(ctx, "cart-clear", nil)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return reportError(ctx, ctx.App.Cart.Clear(ctx.Ctx))
}

// runCartSync takes lines as PRODUCT[:VARIANT]=QTY arguments.
func runCartSync(ctx *commandContext, args []string) error {
	var out outputOptions
	fs := newFlagSet(ctx, "cart-sync", &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	lines, err := parseSyncLines(fs.Args())
	if err != nil {
		_ = writeln(ctx.Stderr, err.Error())
		return errUsage
	}
	if err := ctx.App.Cart.Sync(ctx.Ctx, lines); err != nil {
		return reportQuiet(ctx, err, "Failed to sync cart")
	}
	return printCart(ctx, out, ctx.App.Cart.Snapshot())
}

func parseSyncLines(args []string) ([]model.AddToCartRequest, error) {
	lines := make([]model.AddToCartRequest, 0, len(args))
	for _, arg := range args {
		ref, qty, ok := strings.Cut(arg, "=")
		if !ok {
			qty = "1"
		}
		n, err := strconv.Atoi(qty)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid quantity in %q", arg)
		}
		product, variant, _ := strings.Cut(ref, ":")
		if product == "" {
			return nil, fmt.Errorf("missing product in %q", arg)
		}
		lines = append(lines, model.AddToCartRequest{ProductID: product, VariantID: variant, Quantity: n})
	}
	return lines, nil
}

func runCartValidate(ctx *commandContext, args []string) error {
	fs := newFlagSet(ctx, "cart-validate", nil)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	_, err := ctx.App.Cart.Validate(ctx.Ctx)
	return reportError(ctx, err)
}

func printCart(ctx *commandContext, out outputOptions, cart *model.Cart) error {
	view := struct {
		Cart      *model.Cart `json:"cart"`
		ItemCount int         `json:"itemCount"`
	}{Cart: cart, ItemCount: ctx.App.Cart.ItemCount()}

	return emit(ctx, out, view, func(w io.Writer) error {
		if cart.IsEmpty() {
			return writeln(w, "Your cart is empty")
		}
		currency := cart.Currency
		if err := row(w, "LINE", "PRODUCT", "VARIANT", "QTY", "PRICE", "SUBTOTAL"); err != nil {
			return err
		}
		for _, item := range cart.Items {
			variant := item.VariantName
			if variant == "" {
				variant = "-"
			}
			if err := row(w,
				item.ID,
				util.TruncateText(item.ProductName, 40),
				variant,
				item.Quantity,
				util.FormatPrice(item.Price, currency),
				util.FormatPrice(item.Price*float64(item.Quantity), currency),
			); err != nil {
				return err
			}
		}
		return row(w, "", "", "", cart.TotalItems, "TOTAL", util.FormatPrice(cart.TotalPrice, currency))
	})
}
