package config

import (
	"sort"
	"strings"
)

type DevAPI struct{}

var _ DevAPIConfig = DevAPI{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

func (DevAPI) GetPort() string {
	return listenAddr(GetEnv(portEnvVar, "3333"))
}

func (DevAPI) GetJWTSecret() string {
	return GetEnv("DEVAPI_JWT_SECRET", "dev-secret")
}

func (DevAPI) GetAdminEmail() string {
	return GetEnv("DEVAPI_ADMIN_EMAIL", "admin@storefront.local")
}

// GetAdminPassword is empty unless set; the development API then generates one at start up.
func (DevAPI) GetAdminPassword() string {
	return GetEnv("DEVAPI_ADMIN_PASSWORD", "")
}

// GetAllowedOrigins parses the comma separated DEVAPI_ALLOWED_ORIGINS list.
func (DevAPI) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range strings.Split(GetEnv("DEVAPI_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

func (DevAPI) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE"
}

func (DevAPI) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
