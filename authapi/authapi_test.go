package authapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-storefront-client/apiclient"
	"github.com/jrsteele09/go-storefront-client/authapi"
	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/jrsteele09/go-storefront-client/internal/devapi"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/validation"
	"github.com/jrsteele09/go-storefront-client/token"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *authapi.Client {
	t.Helper()
	t.Setenv("DEVAPI_ADMIN_PASSWORD", "admin-pass")
	t.Setenv("ENV", "test")
	api := devapi.New(config.New())
	_, err := api.Bootstrap()
	require.NoError(t, err)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL, apiclient.StaticTokenSource(""))
	require.NoError(t, err)
	return authapi.New(client)
}

func TestLogin(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	t.Run("returns the token pair", func(t *testing.T) {
		pair, err := c.Login(ctx, authapi.Credentials{Email: "admin@storefront.local", Password: "admin-pass"})
		require.NoError(t, err)
		require.NotEmpty(t, pair.RefreshToken)

		claims, err := token.NewDecoder().Decode(pair.AccessToken)
		require.NoError(t, err)
		require.True(t, claims.IsAdmin)
	})

	t.Run("bad password is an authentication failure", func(t *testing.T) {
		_, err := c.Login(ctx, authapi.Credentials{Email: "admin@storefront.local", Password: "nope"})
		require.ErrorIs(t, err, apperrors.ErrAuthenticationFailure)
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

		var authErr *authapi.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, "Invalid credentials", authErr.Message)

		var reqErr *apiclient.RequestError
		require.ErrorAs(t, err, &reqErr)
		require.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	})

	t.Run("form is validated before sending", func(t *testing.T) {
		_, err := c.Login(ctx, authapi.Credentials{Email: "nobody"})
		require.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestRegister(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	reg := authapi.Registration{Email: "new@example.com", Password: "secret1", ConfirmPassword: "secret1"}

	user, err := c.Register(ctx, reg)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", user.Email)
	require.False(t, user.IsAdmin)
	require.NotEmpty(t, user.ID)

	t.Run("duplicate is a conflict", func(t *testing.T) {
		_, err := c.Register(ctx, reg)
		require.ErrorIs(t, err, apperrors.ErrAuthenticationFailure)
		require.ErrorIs(t, err, apperrors.ErrConflict)
		require.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("password confirmation must match", func(t *testing.T) {
		_, err := c.Register(ctx, authapi.Registration{Email: "x@example.com", Password: "secret1", ConfirmPassword: "secret2"})
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "Passwords do not match.", verr.Fields[0].Message)
	})
}
