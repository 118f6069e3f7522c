// Package authapi wraps the login and registration endpoints.
package authapi

import (
	"context"
	"time"

	"github.com/jrsteele09/go-storefront-client/apiclient"
	"github.com/jrsteele09/go-storefront-client/credentials"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	RouteLogin    = "/auth/login"
	RouteRegister = "/users/create"
)

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c Credentials) Validate() error {
	return validation.Struct(c)
}

// Registration is the sign up form. ConfirmPassword is checked locally and never sent.
type Registration struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

func (r Registration) Validate() error {
	return validation.Struct(r)
}

// RegisteredUser is the API's confirmation of a created account.
type RegisteredUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type Client struct {
	api *apiclient.Client
}

func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Login exchanges credentials for a token pair. A non-2xx response becomes an *AuthenticationError.
func (c *Client) Login(ctx context.Context, creds Credentials) (credentials.Pair, error) {
	if err := creds.Validate(); err != nil {
		return credentials.Pair{}, err
	}

	var pair credentials.Pair
	if err := c.api.Post(ctx, RouteLogin, creds, &pair); err != nil {
		return credentials.Pair{}, authFailure("login", err)
	}

	log.Debug().Str("email", creds.Email).Msg("login accepted")
	return pair, nil
}

// Register creates an account. It does not sign the user in.
func (c *Client) Register(ctx context.Context, reg Registration) (*RegisteredUser, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	payload := Credentials{Email: reg.Email, Password: reg.Password}
	var user RegisteredUser
	if err := c.api.Post(ctx, RouteRegister, payload, &user); err != nil {
		return nil, authFailure("register", err)
	}

	log.Info().Str("email", user.Email).Msg("account registered")
	return &user, nil
}

// authFailure converts a rejected request into an *AuthenticationError and wraps anything else.
func authFailure(op string, err error) error {
	var reqErr *apiclient.RequestError
	if apperrors.As(err, &reqErr) {
		return &AuthenticationError{
			Op:         op,
			StatusCode: reqErr.StatusCode,
			Message:    reqErr.Message,
			Err:        reqErr,
		}
	}
	return errors.Wrapf(err, "[authapi] %s", op)
}
