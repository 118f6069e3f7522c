package errors

import (
	"errors"
	"fmt"
)

// Common error types for the storefront client
var (
	// Transport errors
	ErrNetworkFailure = errors.New("network failure")
	ErrRequestFailed  = errors.New("request failed")

	// Authentication errors
	ErrAuthenticationFailure = errors.New("authentication failure")
	ErrInvalidCredentials    = errors.New("invalid credentials")

	// Token errors
	ErrMalformedToken = errors.New("malformed token")

	// Session errors
	ErrSuperseded = errors.New("operation superseded by a later sign in or sign out")

	// General errors
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
