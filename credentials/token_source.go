package credentials

import (
	"context"

	"golang.org/x/oauth2"
)

type storeTokenSource struct {
	ctx   context.Context
	store Store
}

// TokenSource reads the access token from store on every call.
// An absent token yields an empty oauth2.Token rather than an error, so
// callers can send the request without an Authorization header.
func TokenSource(ctx context.Context, store Store) oauth2.TokenSource {
	return &storeTokenSource{ctx: ctx, store: store}
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	access, ok, err := s.store.Read(s.ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &oauth2.Token{}, nil
	}
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer"}, nil
}
