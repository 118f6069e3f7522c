// Package apiclient is the single outbound channel to the storefront REST API.
// Every request passes through a bearer interceptor before it leaves the process.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const contentTypeJSON = "application/json"

// Client applies a fixed base URL and the bearer interceptor to every call.
// There is no retry policy and no timeout beyond the caller's context.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option defines a function type to modify the Client instance.
type Option func(*clientOptions)

type clientOptions struct {
	base http.RoundTripper
}

// WithBaseTransport sets the transport the interceptor delegates to.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.base = rt
	}
}

// New creates a client for baseURL. source supplies the bearer token per request.
func New(baseURL string, source oauth2.TokenSource, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("[apiclient New] invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[apiclient New] base URL %q must be absolute", baseURL)
	}
	if source == nil {
		return nil, fmt.Errorf("[apiclient New] token source is required")
	}

	opts := clientOptions{base: http.DefaultTransport}
	for _, opt := range options {
		opt(&opts)
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Transport: &bearerTransport{source: source, base: opts.base},
		},
	}, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do sends a JSON request and decodes a JSON response into out (when non-nil).
// Transport failures match apperrors.ErrNetworkFailure; non-2xx responses are *RequestError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[apiclient Do] encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), reader)
	if err != nil {
		return fmt.Errorf("[apiclient Do] building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", apperrors.ErrNetworkFailure, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s %s response: %w", apperrors.ErrNetworkFailure, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := newRequestError(method, path, resp.StatusCode, data)
		log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api request failed")
		return reqErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("[apiclient Do] decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// resolve joins path onto the base URL and drops empty query values.
func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		q := url.Values{}
		for k, values := range query {
			for _, v := range values {
				if v != "" {
					q.Add(k, v)
				}
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}
