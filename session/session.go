// Package session holds the signed-in identity of one client session.
//
// A Session starts Unauthenticated whatever the credential store holds.
// SignIn moves it to Authenticated only after the login call, the store
// write and the token decode have all succeeded. The decoded identity
// drives navigation only; the API stays the authority for every action.
package session

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-storefront-client/authapi"
	"github.com/jrsteele09/go-storefront-client/credentials"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/metrics"
	"github.com/jrsteele09/go-storefront-client/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type State string

const (
	Unauthenticated State = "unauthenticated"
	Authenticated   State = "authenticated"
)

// Credentials is the sign in form.
type Credentials = authapi.Credentials

// Identity is the claim set of the signed-in user.
type Identity struct {
	Subject string
	Email   string
	IsAdmin bool
}

// LoginAPI exchanges credentials for a token pair.
type LoginAPI interface {
	Login(ctx context.Context, creds Credentials) (credentials.Pair, error)
}

// TokenDecoder turns an access token into its claims without verifying it.
type TokenDecoder interface {
	Decode(raw string) (*token.Claims, error)
}

var (
	_ LoginAPI     = (*authapi.Client)(nil)
	_ TokenDecoder = (*token.Decoder)(nil)
)

type Session struct {
	api     LoginAPI
	store   credentials.Store
	decoder TokenDecoder
	guarded bool

	// commitMu orders store writes with the identity they produce.
	commitMu sync.Mutex

	mu         sync.RWMutex
	identity   *Identity
	generation uint64
	closed     bool
}

// New returns an Unauthenticated session. It does not read the store; see Restore.
func New(api LoginAPI, store credentials.Store, decoder TokenDecoder, opts ...Option) (*Session, error) {
	if api == nil || store == nil || decoder == nil {
		return nil, errors.New("[session New] login api, store and decoder are required")
	}
	s := &Session{
		api:     api,
		store:   store,
		decoder: decoder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close drops the in-memory identity. Stored credentials are left alone.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.closed = true
	s.generation++
}

func (s *Session) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Unauthenticated
}

// Identity returns a copy of the current identity, or nil when signed out.
func (s *Session) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.IsAdmin
}

// SignIn logs in, decodes the access token and persists the returned pair.
// Any failure leaves the identity and the store as they were.
func (s *Session) SignIn(ctx context.Context, creds Credentials) error {
	gen, err := s.begin()
	if err != nil {
		return err
	}

	if err := creds.Validate(); err != nil {
		observe("sign_in", "invalid")
		return err
	}

	pair, err := s.api.Login(ctx, creds)
	if err != nil {
		observe("sign_in", "rejected")
		return errors.Wrap(err, "[Session SignIn] login")
	}

	claims, err := s.decoder.Decode(pair.AccessToken)
	if err != nil {
		observe("sign_in", "malformed_token")
		return errors.Wrap(err, "[Session SignIn] decode access token")
	}
	id := identityFrom(claims)

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	if s.stale(gen) {
		observe("sign_in", "superseded")
		return errors.Wrapf(apperrors.ErrSuperseded, "[Session SignIn] %s", creds.Email)
	}

	if err := s.store.Persist(ctx, pair); err != nil {
		observe("sign_in", "store_error")
		return errors.Wrap(err, "[Session SignIn] persist credentials")
	}

	if !s.apply(id) {
		observe("sign_in", "superseded")
		return errors.Wrapf(apperrors.ErrSuperseded, "[Session SignIn] %s", creds.Email)
	}

	observe("sign_in", "ok")
	log.Info().Str("subject", id.Subject).Bool("admin", id.IsAdmin).Msg("signed in")
	return nil
}

// SignOut clears the store and the identity. The identity is cleared even
// when the store fails, and signing out twice is not an error.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.generation++
	s.mu.Unlock()

	// Wait for a sign in that is already writing the store, then undo it.
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		observe("sign_out", "store_error")
		return errors.Wrap(err, "[Session SignOut] clear credentials")
	}

	observe("sign_out", "ok")
	log.Info().Msg("signed out")
	return nil
}

// Restore rebuilds the identity from a stored access token. It reports
// false without error when nothing is stored. An undecodable stored token
// is cleared.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	gen, err := s.begin()
	if err != nil {
		return false, err
	}

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	if s.stale(gen) {
		observe("restore", "superseded")
		return false, errors.Wrap(apperrors.ErrSuperseded, "[Session Restore]")
	}

	raw, ok, err := s.store.Read(ctx)
	if err != nil {
		observe("restore", "store_error")
		return false, errors.Wrap(err, "[Session Restore] read credentials")
	}
	if !ok {
		observe("restore", "empty")
		return false, nil
	}

	claims, err := s.decoder.Decode(raw)
	if err != nil {
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			log.Error().Err(clearErr).Msg("[Session Restore] clear undecodable credentials")
		}
		observe("restore", "malformed_token")
		return false, errors.Wrap(err, "[Session Restore] decode access token")
	}

	id := identityFrom(claims)
	if !s.apply(id) {
		observe("restore", "superseded")
		return false, errors.Wrap(apperrors.ErrSuperseded, "[Session Restore]")
	}

	observe("restore", "ok")
	log.Debug().Str("subject", id.Subject).Msg("session restored from stored credentials")
	return true, nil
}

// begin claims a generation for an operation that resolves later.
func (s *Session) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errors.New("[Session] closed")
	}
	s.generation++
	return s.generation, nil
}

// stale reports whether the session was closed, or the guard is on and a
// later operation started after gen. Callers hold commitMu; an operation
// that passes this check owns both the store write and the identity.
func (s *Session) stale(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed || (s.guarded && gen != s.generation)
}

// apply installs id unless the session was closed.
func (s *Session) apply(id *Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.identity = id
	return true
}

func identityFrom(c *token.Claims) *Identity {
	return &Identity{
		Subject: c.Subject,
		Email:   c.Email,
		IsAdmin: c.IsAdmin,
	}
}

func observe(operation, outcome string) {
	metrics.SessionTransitions.WithLabelValues(operation, outcome).Inc()
}
