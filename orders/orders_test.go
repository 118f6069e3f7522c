package orders_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-storefront-client/apiclient"
	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/jrsteele09/go-storefront-client/internal/devapi"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/orders"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, isAdmin bool) (*orders.Service, *devapi.Server) {
	t.Helper()
	t.Setenv("ENV", "test")
	api := devapi.New(config.New())
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bearer, err := api.Issuer().Issue("u1", "u1@example.com", isAdmin)
	require.NoError(t, err)
	client, err := apiclient.New(srv.URL, apiclient.StaticTokenSource(bearer))
	require.NoError(t, err)
	return orders.New(client), api
}

func TestDefaultFilter(t *testing.T) {
	f := orders.DefaultFilter(time.Date(2024, time.June, 15, 13, 0, 0, 0, time.UTC))
	require.Equal(t, orders.Filter{StartDate: "2024-01-01", EndDate: "2024-06-15"}, f)
}

func TestService_List(t *testing.T) {
	svc, api := newService(t, true)
	ctx := context.Background()

	api.Orders().Add(orders.Order{OrderStatus: orders.StatusReceived, OrderDate: time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC), Total: 10, User: orders.Customer{Email: "a@example.com"}})
	api.Orders().Add(orders.Order{OrderStatus: orders.StatusShipped, OrderDate: time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC), Total: 20, User: orders.Customer{Email: "b@example.com"}})

	list, err := svc.List(ctx, orders.Filter{StartDate: "2024-04-01", EndDate: "2024-06-01"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, orders.StatusShipped, list[0].OrderStatus)
	require.Equal(t, "b@example.com", list[0].User.Email)

	all, err := svc.List(ctx, orders.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, orders.StatusShipped, all[0].OrderStatus, "newest first")
}

func TestService_ListRejectsBadFilter(t *testing.T) {
	svc, _ := newService(t, true)
	ctx := context.Background()

	_, err := svc.List(ctx, orders.Filter{StartDate: "2024-06-01", EndDate: "2024-01-01"})
	require.Error(t, err)

	_, err = svc.List(ctx, orders.Filter{StartDate: "01/06/2024"})
	require.Error(t, err)
}

func TestService_ListRequiresAdmin(t *testing.T) {
	svc, _ := newService(t, false)

	_, err := svc.List(context.Background(), orders.Filter{})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}
