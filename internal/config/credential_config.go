package config

import "time"

const (
	BackendCookie = "cookie"
	BackendRedis  = "redis"
)

type Credentials struct{}

var _ CredentialConfig = Credentials{}

// GetCredentialBackend returns "cookie" (in-process) or "redis" (durable).
func (Credentials) GetCredentialBackend() string {
	switch backend := GetEnv("CREDENTIAL_BACKEND", BackendCookie); backend {
	case BackendRedis:
		return backend
	default:
		return BackendCookie
	}
}

func (Credentials) GetCredentialScope() string {
	return GetEnv("CREDENTIAL_SCOPE", "default")
}

func (Credentials) GetAccessTokenCookie() string {
	return GetEnv("ACCESS_TOKEN_COOKIE", "ecommerce.token")
}

func (Credentials) GetRefreshTokenCookie() string {
	return GetEnv("REFRESH_TOKEN_COOKIE", "ecommerce.refreshToken")
}

func (Credentials) GetAccessTokenTTL() time.Duration {
	return GetEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour) // 1 day
}

func (Credentials) GetRefreshTokenTTL() time.Duration {
	return GetEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour) // 7 days
}

func (Credentials) GetCookiePath() string {
	return "/"
}

func (Credentials) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Credentials) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}
