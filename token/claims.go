// Package token decodes the storefront access token into its claim set.
//
// The client trusts nothing it decodes here. Signature, issuer, audience
// and expiry are never checked: the API that issued the token remains the
// authority for every authorized action, and decoded claims only drive
// which navigation affordances the client renders.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried in an access token.
type Claims struct {
	Subject   string    `json:"sub"`           // Opaque user identifier
	Email     string    `json:"email"`         // Display only
	IsAdmin   bool      `json:"isAdmin"`       // The only authorization dimension
	ID        string    `json:"jti,omitempty"` // Token ID, informational
	IssuedAt  time.Time `json:"iat,omitempty"` // Informational, never enforced
	ExpiresAt time.Time `json:"exp,omitempty"` // Informational, never enforced
}

// wireClaims is the JSON payload shape shared by the decoder and the issuer.
type wireClaims struct {
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	jwtlib.RegisteredClaims
}

func (w *wireClaims) toClaims() *Claims {
	c := &Claims{
		Subject: w.Subject,
		Email:   w.Email,
		IsAdmin: w.IsAdmin,
		ID:      w.ID,
	}
	if w.IssuedAt != nil {
		c.IssuedAt = w.IssuedAt.Time
	}
	if w.ExpiresAt != nil {
		c.ExpiresAt = w.ExpiresAt.Time
	}
	return c
}
