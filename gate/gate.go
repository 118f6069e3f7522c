// Package gate derives which navigation affordances an identity may see.
// It is a pure function of the identity and performs no I/O.
package gate

import (
	"github.com/jrsteele09/go-storefront-client/session"
)

// Route paths of the client's pages.
const (
	RouteHome           = "/"
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteCart           = "/cart"
	RouteCheckout       = "/checkout"
	RouteAdminDashboard = "/admin/dashboard"
	RouteCustomerOrders = "/admin/customer-orders"
)

// Affordances lists what the navigation renders for one identity.
type Affordances struct {
	AdminDashboard bool
	CustomerOrders bool
	Cart           bool
	AccountMenu    bool
	LoginButton    bool
}

type NavItem struct {
	Label string
	Path  string
}

// IdentitySource is anything that can report the current identity, such as *session.Session.
type IdentitySource interface {
	Identity() *session.Identity
}

var _ IdentitySource = (*session.Session)(nil)

// Evaluate maps an identity to its affordances. A nil identity is signed out.
func Evaluate(id *session.Identity) Affordances {
	signedIn := id != nil
	admin := signedIn && id.IsAdmin
	return Affordances{
		AdminDashboard: admin,
		CustomerOrders: admin,
		Cart:           signedIn,
		AccountMenu:    signedIn,
		LoginButton:    !signedIn,
	}
}

// EvaluateSource reads the identity once and evaluates it.
func EvaluateSource(src IdentitySource) Affordances {
	return Evaluate(src.Identity())
}

// NavItems returns the header links in display order.
func NavItems(id *session.Identity) []NavItem {
	a := Evaluate(id)
	items := []NavItem{{Label: "Home", Path: RouteHome}}
	if a.AdminDashboard {
		items = append(items, NavItem{Label: "Admin Dashboard", Path: RouteAdminDashboard})
	}
	if a.CustomerOrders {
		items = append(items, NavItem{Label: "Customer Orders", Path: RouteCustomerOrders})
	}
	return items
}

// CanAccess reports whether route should be reachable from the navigation.
// Unknown routes are public; the API still decides what the caller may do.
func CanAccess(id *session.Identity, route string) bool {
	a := Evaluate(id)
	switch route {
	case RouteAdminDashboard:
		return a.AdminDashboard
	case RouteCustomerOrders:
		return a.CustomerOrders
	case RouteCart, RouteCheckout:
		return a.Cart
	case RouteLogin, RouteRegister:
		return a.LoginButton
	default:
		return true
	}
}
