// Package transport is the outbound request pipeline: a composable
// http.RoundTripper middleware stack that every backend call passes
// through by construction. There is no global interception — callers get
// an *http.Client whose Transport is the assembled chain.
package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/storefront-client/internal/common"
)

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Middleware wraps a RoundTripper with additional behavior.
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain assembles base with the given middlewares. The first middleware
// is the outermost, so Chain(base, a, b) runs a → b → base.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// NewClient returns an *http.Client whose Transport is the assembled
// middleware chain over base.
func NewClient(base http.RoundTripper, mws ...Middleware) *http.Client {
	return &http.Client{Transport: Chain(base, mws...)}
}

// Authentication bootstrap endpoints never carry the bearer credential:
// they are the calls that establish it.
var bootstrapPrefixes = []string{
	"/api/login/",
	"/api/register/",
	"/api/token/",
}

func isBootstrap(path string) bool {
	for _, p := range bootstrapPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// TokenSource yields the current access credential, or "" when absent.
type TokenSource interface {
	Access(ctx context.Context) (string, error)
}

// BearerAuth injects "Authorization: Bearer <token>" into every request
// except those targeting the bootstrap allow-list. When no credential is
// present (or the source fails), the request proceeds unauthenticated and
// the server is expected to reject it if auth is required. The request is
// cloned before its headers are touched.
func BearerAuth(src TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if isBootstrap(req.URL.Path) {
				return next.RoundTrip(req)
			}

			token, err := src.Access(req.Context())
			if err != nil || token == "" {
				return next.RoundTrip(req)
			}

			req = req.Clone(req.Context())
			if req.Header == nil {
				req.Header = http.Header{}
			}
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
			return next.RoundTrip(req)
		})
	}
}
