package token

import (
	"fmt"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
)

// MalformedTokenError reports a bearer string that is not a decodable signed token.
type MalformedTokenError struct {
	Reason string
	Err    error
}

func (e *MalformedTokenError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed token: %s", e.Reason)
	}
	return fmt.Sprintf("malformed token: %s: %v", e.Reason, e.Err)
}

func (e *MalformedTokenError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, apperrors.ErrMalformedToken) match.
func (e *MalformedTokenError) Is(target error) bool {
	return target == apperrors.ErrMalformedToken
}
