package ports

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Requester performs one request against the remote API and decodes the JSON
// response into out (out may be nil when the body is irrelevant).
//
// Implementations own authentication and version negotiation headers, and
// must surface failures as the domain error taxonomy: network trouble as
// *domain.TransportError, non-OK statuses and bodies carrying an "error"
// field as *domain.APIError. The driver never retries; callers apply
// timeouts through ctx or the underlying HTTP client.
type Requester interface {
	Do(ctx context.Context, method, path string, params url.Values, body io.Reader, header http.Header, out any) error
}

// RequesterFunc adapts a function to the Requester interface.
type RequesterFunc func(ctx context.Context, method, path string, params url.Values, body io.Reader, header http.Header, out any) error

// Do implements Requester.
func (f RequesterFunc) Do(ctx context.Context, method, path string, params url.Values, body io.Reader, header http.Header, out any) error {
	return f(ctx, method, path, params, body, header, out)
}
