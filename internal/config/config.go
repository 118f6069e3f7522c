package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	APIConfig
	CredentialConfig
	DevAPIConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

// APIConfig describes how the client reaches the storefront REST API.
type APIConfig interface {
	GetAPIBaseURL() string
	GetAdminToken() string
	GetUseStaticToken() bool
	GetRehydrateSession() bool
}

// CredentialConfig describes where and for how long the credential pair is kept.
type CredentialConfig interface {
	GetCredentialBackend() string
	GetCredentialScope() string
	GetAccessTokenCookie() string
	GetRefreshTokenCookie() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetCookiePath() string
	GetRedisAddr() string
	GetRedisPassword() string
}

type DevAPIConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetAdminEmail() string
	GetAdminPassword() string
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	API
	Credentials
	DevAPI
}

var env = viper.New()

func init() {
	env.AutomaticEnv()
}

// New loads an optional .env file and returns the environment backed configuration.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}
