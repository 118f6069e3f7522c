package gate_test

import (
	"testing"

	"github.com/jrsteele09/go-storefront-client/gate"
	"github.com/jrsteele09/go-storefront-client/session"
	"github.com/jrsteele09/go-storefront-client/token"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		id   *session.Identity
		want gate.Affordances
	}{
		{
			name: "signed out",
			id:   nil,
			want: gate.Affordances{LoginButton: true},
		},
		{
			name: "customer",
			id:   &session.Identity{Subject: "u2", Email: "c@b.com"},
			want: gate.Affordances{Cart: true, AccountMenu: true},
		},
		{
			name: "admin",
			id:   &session.Identity{Subject: "u1", Email: "a@b.com", IsAdmin: true},
			want: gate.Affordances{AdminDashboard: true, CustomerOrders: true, Cart: true, AccountMenu: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, gate.Evaluate(tt.id))
		})
	}
}

func TestNavItems(t *testing.T) {
	require.Equal(t, []gate.NavItem{{Label: "Home", Path: gate.RouteHome}}, gate.NavItems(nil))

	admin := &session.Identity{Subject: "u1", IsAdmin: true}
	require.Equal(t, []gate.NavItem{
		{Label: "Home", Path: gate.RouteHome},
		{Label: "Admin Dashboard", Path: gate.RouteAdminDashboard},
		{Label: "Customer Orders", Path: gate.RouteCustomerOrders},
	}, gate.NavItems(admin))
}

func TestCanAccess(t *testing.T) {
	customer := &session.Identity{Subject: "u2"}
	admin := &session.Identity{Subject: "u1", IsAdmin: true}

	require.False(t, gate.CanAccess(nil, gate.RouteAdminDashboard))
	require.False(t, gate.CanAccess(customer, gate.RouteCustomerOrders))
	require.True(t, gate.CanAccess(admin, gate.RouteCustomerOrders))
	require.True(t, gate.CanAccess(nil, gate.RouteLogin))
	require.False(t, gate.CanAccess(customer, gate.RouteLogin))
	require.True(t, gate.CanAccess(nil, gate.RouteHome))
}

func TestCart_RequiresIdentity(t *testing.T) {
	customer := &session.Identity{Subject: "u2"}

	require.False(t, gate.Evaluate(nil).Cart)
	require.False(t, gate.CanAccess(nil, gate.RouteCart))
	require.False(t, gate.CanAccess(nil, gate.RouteCheckout))
	require.True(t, gate.Evaluate(customer).Cart)
	require.True(t, gate.CanAccess(customer, gate.RouteCart))
	require.True(t, gate.CanAccess(customer, gate.RouteCheckout))
}

// A decoded non-admin token never yields admin affordances.
func TestEvaluate_FromDecodedCustomerToken(t *testing.T) {
	raw, err := token.NewIssuer("any", 0).Issue("u2", "c@b.com", false)
	require.NoError(t, err)
	claims, err := token.NewDecoder().Decode(raw)
	require.NoError(t, err)

	a := gate.Evaluate(&session.Identity{Subject: claims.Subject, Email: claims.Email, IsAdmin: claims.IsAdmin})
	require.False(t, a.AdminDashboard)
	require.False(t, a.CustomerOrders)
	require.True(t, a.AccountMenu)
}

type fixedIdentity struct{ id *session.Identity }

func (f fixedIdentity) Identity() *session.Identity { return f.id }

func TestEvaluateSource(t *testing.T) {
	a := gate.EvaluateSource(fixedIdentity{id: &session.Identity{Subject: "u1", IsAdmin: true}})
	require.True(t, a.AdminDashboard)
}
