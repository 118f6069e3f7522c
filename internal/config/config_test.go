package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	c := config.New()

	require.Equal(t, "http://localhost:3333", c.GetAPIBaseURL())
	require.Equal(t, "", c.GetAdminToken())
	require.True(t, c.GetUseStaticToken())
	require.False(t, c.GetRehydrateSession())

	require.Equal(t, config.BackendCookie, c.GetCredentialBackend())
	require.Equal(t, "ecommerce.token", c.GetAccessTokenCookie())
	require.Equal(t, "ecommerce.refreshToken", c.GetRefreshTokenCookie())
	require.Equal(t, 24*time.Hour, c.GetAccessTokenTTL())
	require.Equal(t, 7*24*time.Hour, c.GetRefreshTokenTTL())
	require.Equal(t, "/", c.GetCookiePath())
	require.Equal(t, ":3333", c.GetPort())
	require.Equal(t, "admin@storefront.local", c.GetAdminEmail())
	require.Empty(t, c.GetAdminPassword())
}

func TestConfig_FromEnvironment(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://api.shop.test")
	t.Setenv("STOREFRONT_ADMIN_TOKEN", "admin-token")
	t.Setenv("STOREFRONT_USE_STATIC_TOKEN", "false")
	t.Setenv("STOREFRONT_REHYDRATE_SESSION", "true")
	t.Setenv("CREDENTIAL_BACKEND", "redis")
	t.Setenv("ACCESS_TOKEN_TTL", "90m")
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "prod")

	c := config.New()

	require.Equal(t, "https://api.shop.test", c.GetAPIBaseURL())
	require.Equal(t, "admin-token", c.GetAdminToken())
	require.False(t, c.GetUseStaticToken())
	require.True(t, c.GetRehydrateSession())
	require.Equal(t, config.BackendRedis, c.GetCredentialBackend())
	require.Equal(t, 90*time.Minute, c.GetAccessTokenTTL())
	require.Equal(t, ":9000", c.GetPort())
	require.Equal(t, "PROD", c.GetEnv())
}

func TestConfig_UnknownBackendFallsBackToCookie(t *testing.T) {
	t.Setenv("CREDENTIAL_BACKEND", "localstorage")
	require.Equal(t, config.BackendCookie, config.New().GetCredentialBackend())
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("DEVAPI_ALLOWED_ORIGINS", "https://b.test, https://a.test")

	origins := config.New().GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://a.test"))
	require.False(t, origins.IsAllowedOrigin("*"))
	require.Equal(t, "https://a.test, https://b.test", origins.String())
}
