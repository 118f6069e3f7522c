package config

const (
	apiURLEnvVar         = "STOREFRONT_API_URL"
	adminTokenEnvVar     = "STOREFRONT_ADMIN_TOKEN"
	useStaticTokenEnvVar = "STOREFRONT_USE_STATIC_TOKEN"
	rehydrateEnvVar      = "STOREFRONT_REHYDRATE_SESSION"
)

type API struct{}

var _ APIConfig = API{}

func (API) GetAPIBaseURL() string {
	return GetEnv(apiURLEnvVar, "http://localhost:3333")
}

// GetAdminToken returns the static fallback bearer token. Empty means no header is sent.
func (API) GetAdminToken() string {
	return GetEnv(adminTokenEnvVar, "")
}

// GetUseStaticToken selects the static admin token over the per-session access token cookie.
func (API) GetUseStaticToken() bool {
	return GetEnvBool(useStaticTokenEnvVar, true)
}

// GetRehydrateSession enables restoring identity from a stored access token at start up.
func (API) GetRehydrateSession() bool {
	return GetEnvBool(rehydrateEnvVar, false)
}
