// internal/github/transport.go
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

const userAgent = "github-contrib-finder"

// Response is the raw outcome of a single GET against the code-hosting API.
type Response struct {
	Status int
	Body   string
}

// Transport issues authenticated GET requests. Implementations make exactly
// one attempt per call; retry policy belongs to the caller.
type Transport interface {
	Get(ctx context.Context, url string) (Response, error)
}

// HTTPTransport is the production Transport. The underlying http.Client
// carries the bearer credential on every request and is safe for concurrent
// use.
type HTTPTransport struct {
	http *http.Client
}

// NewHTTPTransport builds a transport whose requests are authenticated with
// the given token.
func NewHTTPTransport(token string) *HTTPTransport {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &HTTPTransport{
		http: oauth2.NewClient(context.Background(), ts),
	}
}

// Get performs a single GET and returns the status code and body text.
// Non-2xx statuses are not errors at this layer; the caller interprets them.
func (t *HTTPTransport) Get(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("reading github response body: %w", err)
	}

	return Response{Status: resp.StatusCode, Body: string(body)}, nil
}
