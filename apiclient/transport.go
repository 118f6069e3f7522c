package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/go-storefront-client/credentials"
	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/jrsteele09/go-storefront-client/internal/metrics"
	"golang.org/x/oauth2"
)

// bearerTransport is the outbound interceptor. It reads the current token
// once per request and sets "Authorization: Bearer <token>" only when a
// token is available. It never mutates the caller's request or shared state.
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.source.Token()
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("[bearerTransport] token source: %w", err)
	}

	out := req.Clone(req.Context())
	if tok != nil && tok.AccessToken != "" {
		tok.SetAuthHeader(out)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	metrics.APIRequests.WithLabelValues(req.Method, metrics.StatusClass(status)).Inc()
	metrics.APIRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	return resp, err
}

// StaticTokenSource always yields token. An empty token means no header.
func StaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

// TokenSourceFor picks the interceptor's token source: the static fallback
// admin token when cfg enables it, otherwise the stored access token.
func TokenSourceFor(ctx context.Context, cfg config.APIConfig, store credentials.Store) oauth2.TokenSource {
	if cfg.GetUseStaticToken() {
		return StaticTokenSource(cfg.GetAdminToken())
	}
	return credentials.TokenSource(ctx, store)
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return strconv.Itoa(code)
}
