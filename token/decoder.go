package token

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Decoder performs a structural parse of an access token. It holds no keys.
type Decoder struct {
	parser *jwtlib.Parser
}

func NewDecoder() *Decoder {
	return &Decoder{parser: jwtlib.NewParser()}
}

// Decode returns the claim set of raw without verifying it.
func (d *Decoder) Decode(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &MalformedTokenError{Reason: "empty token"}
	}

	wc := &wireClaims{}
	if _, _, err := d.parser.ParseUnverified(raw, wc); err != nil {
		return nil, &MalformedTokenError{Reason: "not a signed token", Err: err}
	}

	if wc.Subject == "" {
		return nil, &MalformedTokenError{Reason: "missing sub claim"}
	}

	return wc.toClaims(), nil
}
