package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SlowBrain97/E-Commerce/internal/api"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	"github.com/SlowBrain97/E-Commerce/internal/guard"
	httpx "github.com/SlowBrain97/E-Commerce/internal/http"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/util"
)

var errNotAdmin = errors.New("admin role required")

func runProfile(ctx *commandContext, args []string) error {
	var (
		out outputOptions
		req model.UpdateProfileRequest
	)
	fs := newFlagSet(ctx, "profile", &out)
	fs.StringVar(&req.FirstName, "first-name", "", "new first name")
	fs.StringVar(&req.LastName, "last-name", "", "new last name")
	fs.StringVar(&req.Email, "email", "", "new email address")
	fs.StringVar(&req.PhoneNumber, "phone", "", "new phone number")
	fs.StringVar(&req.AvatarURL, "avatar", "", "new avatar URL")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if _, err := signedIn(ctx); err != nil {
		return err
	}

	var (
		profile *model.UserProfile
		err     error
	)
	if req == (model.UpdateProfileRequest{}) {
		profile, err = ctx.App.API.Users.Profile(ctx.Ctx)
	} else {
		profile, err = ctx.App.API.Users.UpdateProfile(ctx.Ctx, req)
		if err == nil {
			ctx.App.Session.ApplyProfile(ctx.Ctx, profile)
			ctx.Sink.Notify(ctx.Ctx, notify.Success(httpx.MsgProfileUpdated))
		}
	}
	if err != nil {
		return err
	}
	return emit(ctx, out, profile, func(w io.Writer) error {
		rows := [][2]string{
			{"Username:", profile.Username},
			{"Email:", profile.Email},
			{"Name:", strings.TrimSpace(profile.FirstName + " " + profile.LastName)},
			{"Phone:", profile.PhoneNumber},
			{"Role:", profile.Role},
			{"Verified:", fmt.Sprint(profile.IsVerified)},
		}
		for _, r := range rows {
			if err := row(w, r[0], r[1]); err != nil {
				return err
			}
		}
		return nil
	})
}

// requireAdmin mirrors the admin layout: refresh the identity when none is
// cached, then insist on the admin role.
func requireAdmin(ctx *commandContext) error {
	user, err := signedIn(ctx)
	if err != nil {
		return err
	}
	if d := guard.AdminLayout(user); !d.Allow {
		_ = writef(ctx.Stderr, "%s is not an administrator\n", user.Username)
		return errNotAdmin
	}
	return nil
}

func runDashboard(ctx *commandContext, args []string) error {
	var (
		out       outputOptions
		section   string
		threshold int
		pf        pageFlags
	)
	fs := newFlagSet(ctx, "dashboard", &out)
	fs.StringVar(&section, "section", "overview", "overview, sales, products, users, orders, low-stock or pending-reviews")
	fs.IntVar(&threshold, "threshold", api.DefaultLowStockThreshold, "stock threshold for low-stock")
	fs.IntVar(&pf.page, "page", 0, "zero-based page for pending-reviews")
	fs.IntVar(&pf.size, "size", 20, "page size for pending-reviews")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	d := ctx.App.API.Dashboard
	switch strings.ToLower(section) {
	case "overview":
		v, err := d.Overview(ctx.Ctx)
		if err != nil {
			return err
		}
		return emit(ctx, out, v, overviewTable(v))
	case "sales":
		v, err := d.Sales(ctx.Ctx)
		if err != nil {
			return err
		}
		return emit(ctx, out, v, salesTable(v))
	case "products":
		v, err := d.Products(ctx.Ctx)
		if err != nil {
			return err
		}
		return emit(ctx, out, v, nil)
	case "users":
		v, err := d.Users(ctx.Ctx)
		if err != nil {
			return err
		}
		return emit(ctx, out, v, nil)
	case "orders":
		v, err := d.Orders(ctx.Ctx)
		if err != nil {
			return err
		}
		return emit(ctx, out, v, nil)
	case "low-stock":
		v, err := ctx.App.API.Products.LowStock(ctx.Ctx, threshold)
		if err != nil {
			return err
		}
		return emit(ctx, out, v, productTable(v))
	case "pending-reviews":
		v, err := ctx.App.API.Reviews.Pending(ctx.Ctx, pf.params())
		if err != nil {
			return err
		}
		return emit(ctx, out, v, nil)
	default:
		_ = writef(ctx.Stderr, "unknown section %q\n", section)
		return errUsage
	}
}

func salesTable(s *model.SalesStats) func(w io.Writer) error {
	return func(w io.Writer) error {
		rows := [][3]string{
			{"Revenue", util.FormatPrice(s.TotalRevenue, ""), util.FormatPercentage(s.RevenueGrowthPercentage, 1)},
			{"This month", util.FormatPrice(s.MonthlyRevenue, ""), ""},
			{"Orders", util.FormatNumber(s.TotalOrders), util.FormatPercentage(s.OrderGrowthPercentage, 1)},
			{"Average order", util.FormatPrice(s.AverageOrderValue, ""), ""},
		}
		for _, r := range rows {
			if err := row(w, r[0], r[1], r[2]); err != nil {
				return err
			}
		}
		return nil
	}
}

func overviewTable(o *model.DashboardOverview) func(w io.Writer) error {
	return func(w io.Writer) error {
		if err := salesTable(&o.SalesStats)(w); err != nil {
			return err
		}
		if err := row(w, "Products", util.FormatNumber(o.ProductStats.TotalProducts),
			fmt.Sprintf("%d low stock", o.ProductStats.LowStockProducts)); err != nil {
			return err
		}
		if err := row(w, "Users", util.FormatNumber(o.UserStats.TotalUsers),
			fmt.Sprintf("%d new this month", o.UserStats.NewUsersThisMonth)); err != nil {
			return err
		}
		if err := row(w, "Pending orders", util.FormatNumber(o.OrderStats.PendingOrders), ""); err != nil {
			return err
		}
		for _, ro := range o.RecentOrders.RecentOrders {
			if err := row(w, fmt.Sprintf("Order #%d", ro.OrderID), ro.CustomerName,
				util.FormatPrice(ro.TotalAmount, "")+" "+ro.Status); err != nil {
				return err
			}
		}
		for _, tp := range o.TopProducts.TopProducts {
			if err := row(w, "Top: "+util.TruncateText(tp.ProductName, 30), util.FormatNumber(tp.TotalSold)+" sold",
				util.FormatPrice(tp.TotalRevenue, "")); err != nil {
				return err
			}
		}
		return nil
	}
}
