package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	logLevelEnvVar = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Storefront")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv("ENV", "DEV"))
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

// GetEnv returns the value of envVar, or defaultValue when it is unset or empty.
func GetEnv(envVar, defaultValue string) string {
	value := env.GetString(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvBool(envVar string, defaultValue bool) bool {
	if GetEnv(envVar, "") == "" {
		return defaultValue
	}
	return env.GetBool(envVar)
}

func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	if GetEnv(envVar, "") == "" {
		return defaultValue
	}
	d := env.GetDuration(envVar)
	if d <= 0 {
		return defaultValue
	}
	return d
}

func listenAddr(port string) string {
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}
