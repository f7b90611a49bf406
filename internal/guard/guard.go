// Package guard decides whether a storefront route may be entered.
//
// The edge check only looks at token presence. Role checks happen in the
// page layer (AdminLayout), after the identity has been loaded.
package guard

import (
	"net/url"
	"path"
	"strings"

	domainauth "github.com/SlowBrain97/E-Commerce/internal/domain/auth"
)

// Client routes the guard redirects to.
const (
	LoginPath     = "/auth/login"
	HomePath      = "/"
	DashboardPath = "/dashboard"
	RedirectParam = "redirect"
)

// Route prefixes that need an access token. Matching is a plain string
// prefix, so "/cart" also covers "/cart/checkout" and "/cartography".
var (
	ProtectedPrefixes = []string{"/profile", "/cart", "/checkout", "/orders"}
	AdminPrefixes     = []string{"/dashboard"}
)

// Decision is the outcome of a guard check. RedirectTo is set iff Allow is false.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Applies reports whether the edge guard looks at p at all. Backend API
// calls and static files pass through untouched.
func Applies(p string) bool {
	for _, skip := range []string{"/api", "/_next/static", "/_next/image", "/favicon.ico", "/public"} {
		if strings.HasPrefix(p, skip) {
			return false
		}
	}
	return !strings.Contains(path.Base(p), ".")
}

// IsProtected reports whether p needs a token for a signed-in customer.
func IsProtected(p string) bool { return hasAnyPrefix(p, ProtectedPrefixes) }

// IsAdmin reports whether p belongs to the admin area.
func IsAdmin(p string) bool { return hasAnyPrefix(p, AdminPrefixes) }

// Evaluate is the edge check. Protected and admin routes without a token are
// sent to the login page carrying the original path; everything else passes.
func Evaluate(p string, hasToken bool) Decision {
	if hasToken || !Applies(p) {
		return allow()
	}
	if IsProtected(p) || IsAdmin(p) {
		return redirect(LoginRedirect(p))
	}
	return allow()
}

// LoginRedirect builds the login URL that returns to p after sign-in.
func LoginRedirect(p string) string {
	if p == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{RedirectParam: {p}}.Encode()
}

// AdminLayout is the page-level check for the admin area. A loaded identity
// without the admin role goes home; a missing identity is left to the edge
// check and the identity fetch that follows it.
func AdminLayout(user *domainauth.UserInfo) Decision {
	if user != nil && !user.IsAdmin() {
		return redirect(HomePath)
	}
	return allow()
}

// PostLoginPath is where a freshly signed-in user lands.
func PostLoginPath(user *domainauth.UserInfo) string {
	if user.IsAdmin() {
		return DashboardPath
	}
	return HomePath
}

// SafeRedirect returns target when it is a local path, else fallback.
func SafeRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}

func hasAnyPrefix(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
