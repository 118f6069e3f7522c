// Package credentials persists the access/refresh token pair the way a
// browser keeps cookies: two named entries with independent lifetimes and
// a path scope.
package credentials

import (
	"context"
	"time"

	"github.com/jrsteele09/go-storefront-client/internal/config"
)

const (
	DefaultAccessTokenName  = "ecommerce.token"
	DefaultRefreshTokenName = "ecommerce.refreshToken"
	DefaultAccessTokenTTL   = 24 * time.Hour     // 1 day
	DefaultRefreshTokenTTL  = 7 * 24 * time.Hour // 7 days
	DefaultPath             = "/"
)

// Pair is the credential pair returned by a successful sign in.
// Both tokens are written together and cleared together.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Store defines how the credential pair is persisted.
// Read returns ok=false both when a token was never set and when it expired.
type Store interface {
	// Persist writes both tokens with their own expirations
	Persist(ctx context.Context, pair Pair) error

	// Read returns the access token if present and unexpired
	Read(ctx context.Context) (token string, ok bool, err error)

	// ReadRefresh returns the refresh token if present and unexpired
	ReadRefresh(ctx context.Context) (token string, ok bool, err error)

	// Clear removes both entries. Clearing absent entries is not an error.
	Clear(ctx context.Context) error
}

// Options names the two entries and their lifetimes.
type Options struct {
	AccessTokenName  string
	RefreshTokenName string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	Path             string
}

func DefaultOptions() Options {
	return Options{
		AccessTokenName:  DefaultAccessTokenName,
		RefreshTokenName: DefaultRefreshTokenName,
		AccessTokenTTL:   DefaultAccessTokenTTL,
		RefreshTokenTTL:  DefaultRefreshTokenTTL,
		Path:             DefaultPath,
	}
}

func OptionsFromConfig(cfg config.CredentialConfig) Options {
	return Options{
		AccessTokenName:  cfg.GetAccessTokenCookie(),
		RefreshTokenName: cfg.GetRefreshTokenCookie(),
		AccessTokenTTL:   cfg.GetAccessTokenTTL(),
		RefreshTokenTTL:  cfg.GetRefreshTokenTTL(),
		Path:             cfg.GetCookiePath(),
	}.normalize()
}

// normalize fills unset fields with the defaults
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.AccessTokenName == "" {
		o.AccessTokenName = d.AccessTokenName
	}
	if o.RefreshTokenName == "" {
		o.RefreshTokenName = d.RefreshTokenName
	}
	if o.AccessTokenTTL <= 0 {
		o.AccessTokenTTL = d.AccessTokenTTL
	}
	if o.RefreshTokenTTL <= 0 {
		o.RefreshTokenTTL = d.RefreshTokenTTL
	}
	if o.Path == "" {
		o.Path = d.Path
	}
	return o
}
