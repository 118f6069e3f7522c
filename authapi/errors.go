package authapi

import (
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
)

// AuthenticationError is a non-2xx answer from the login or registration endpoint.
type AuthenticationError struct {
	Op         string // "login" or "register"
	StatusCode int
	Message    string // Server provided message
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

func (e *AuthenticationError) Is(target error) bool {
	switch target {
	case apperrors.ErrAuthenticationFailure:
		return true
	case apperrors.ErrInvalidCredentials:
		return e.Op == "login" && e.StatusCode == http.StatusUnauthorized
	}
	return false
}
