// Package httpx carries the HTTP plumbing shared by handlers: middleware
// chaining, bearer-token authentication, per-key rate limiting and JSON
// response helpers.
package httpx

import "net/http"

// Middleware wraps a handler with extra behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h so the first listed middleware is the
// outermost one.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
