// Package middleware provides the HTTP middleware chain: request IDs,
// structured request logging, panic recovery, CORS, and submission
// rate limiting.
package middleware

import "net/http"

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware left to right: the first argument becomes
// the outermost wrapper, so Chain(a, b)(h) runs a, then b, then h.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}
