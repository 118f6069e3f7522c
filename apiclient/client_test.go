package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-storefront-client/apiclient"
	"github.com/jrsteele09/go-storefront-client/credentials"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type capturedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	ContentType   string
	Body          string
}

// echoServer records each request and replies with status and body.
func echoServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()

	var seen []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = append(seen, capturedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          string(b),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestNew_Validation(t *testing.T) {
	_, err := apiclient.New("not a url", apiclient.StaticTokenSource(""))
	require.Error(t, err)

	_, err = apiclient.New("/relative", apiclient.StaticTokenSource(""))
	require.Error(t, err)

	_, err = apiclient.New("http://localhost:3333", nil)
	require.Error(t, err)
}

func TestClient_StaticTokenHeader(t *testing.T) {
	srv, seen := echoServer(t, http.StatusOK, `[]`)

	c, err := apiclient.New(srv.URL, apiclient.StaticTokenSource("admin-token"))
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, c.Get(context.Background(), "/products", url.Values{"q": {"shoe"}, "empty": {""}}, &out))

	require.Len(t, *seen, 1)
	got := (*seen)[0]
	require.Equal(t, "Bearer admin-token", got.Authorization)
	require.Equal(t, "/products", got.Path)
	require.Equal(t, "shoe", got.Query.Get("q"))
	require.False(t, got.Query.Has("empty"))
}

func TestClient_NoTokenLeavesHeaderUnset(t *testing.T) {
	srv, seen := echoServer(t, http.StatusOK, `{}`)

	c, err := apiclient.New(srv.URL, apiclient.StaticTokenSource(""))
	require.NoError(t, err)
	require.NoError(t, c.Get(context.Background(), "/products", nil, nil))

	require.Empty(t, (*seen)[0].Authorization)
}

func TestClient_StoredTokenHeader(t *testing.T) {
	ctx := context.Background()
	srv, seen := echoServer(t, http.StatusOK, `{}`)
	store := credentials.NewCookieStore(credentials.DefaultOptions())

	c, err := apiclient.New(srv.URL, credentials.TokenSource(ctx, store))
	require.NoError(t, err)

	require.NoError(t, c.Get(ctx, "/orders", nil, nil))
	require.NoError(t, store.Persist(ctx, credentials.Pair{AccessToken: "user-token", RefreshToken: "r1"}))
	require.NoError(t, c.Get(ctx, "/orders", nil, nil))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, c.Get(ctx, "/orders", nil, nil))

	require.Len(t, *seen, 3)
	require.Empty(t, (*seen)[0].Authorization)
	require.Equal(t, "Bearer user-token", (*seen)[1].Authorization)
	require.Empty(t, (*seen)[2].Authorization)
}

func TestClient_BaseURLPath(t *testing.T) {
	srv, seen := echoServer(t, http.StatusOK, `{}`)

	c, err := apiclient.New(srv.URL+"/api/v1", apiclient.StaticTokenSource(""))
	require.NoError(t, err)
	require.NoError(t, c.Delete(context.Background(), "/products/p1"))

	require.Equal(t, "/api/v1/products/p1", (*seen)[0].Path)
	require.Equal(t, http.MethodDelete, (*seen)[0].Method)
}

func TestClient_PostJSON(t *testing.T) {
	srv, seen := echoServer(t, http.StatusCreated, `{"id":"p1","name":"Shoe"}`)

	c, err := apiclient.New(srv.URL, apiclient.StaticTokenSource(""))
	require.NoError(t, err)

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, c.Post(context.Background(), "/products", map[string]any{"name": "Shoe"}, &out))
	require.Equal(t, "p1", out.ID)

	got := (*seen)[0]
	require.Equal(t, "application/json", got.ContentType)
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.Body), &sent))
	require.Equal(t, "Shoe", sent["name"])
}

func TestClient_RequestError(t *testing.T) {
	t.Run("string message", func(t *testing.T) {
		srv, _ := echoServer(t, http.StatusUnauthorized, `{"message":"Invalid credentials","statusCode":401}`)
		c, err := apiclient.New(srv.URL, apiclient.StaticTokenSource(""))
		require.NoError(t, err)

		err = c.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.com"}, nil)

		var reqErr *apiclient.RequestError
		require.ErrorAs(t, err, &reqErr)
		require.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
		require.Equal(t, "Invalid credentials", reqErr.Message)
		require.ErrorIs(t, err, apperrors.ErrRequestFailed)
		require.NotErrorIs(t, err, apperrors.ErrNetworkFailure)
		require.Contains(t, err.Error(), "401")
	})

	t.Run("message list", func(t *testing.T) {
		srv, _ := echoServer(t, http.StatusBadRequest, `{"message":["email must be an email","password should not be empty"]}`)
		c, err := apiclient.New(srv.URL, apiclient.StaticTokenSource(""))
		require.NoError(t, err)

		err = c.Post(context.Background(), "/users/create", map[string]string{}, nil)

		var reqErr *apiclient.RequestError
		require.ErrorAs(t, err, &reqErr)
		require.Equal(t, "email must be an email; password should not be empty", reqErr.Message)
	})

	t.Run("not found sentinel", func(t *testing.T) {
		srv, _ := echoServer(t, http.StatusNotFound, ``)
		c, err := apiclient.New(srv.URL, apiclient.StaticTokenSource(""))
		require.NoError(t, err)

		err = c.Get(context.Background(), "/products/missing", nil, nil)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		require.Contains(t, err.Error(), "Not Found")
	})
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := apiclient.New(addr, apiclient.StaticTokenSource("t"))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/products", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrNetworkFailure)

	var reqErr *apiclient.RequestError
	require.False(t, errors.As(err, &reqErr))
}

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("store unavailable")
}

func TestClient_TokenSourceFailure(t *testing.T) {
	srv, seen := echoServer(t, http.StatusOK, `{}`)

	c, err := apiclient.New(srv.URL, failingSource{})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/products", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrNetworkFailure)
	require.Contains(t, err.Error(), "store unavailable")
	require.Empty(t, *seen)
}
