package httpx

import (
	"context"

	"github.com/aussiebroadwan/miniblog/pkg/jwtx"
)

type ctxKey string

// CtxKeyClaims holds the verified *jwtx.Claims for authenticated requests.
const CtxKeyClaims ctxKey = "claims"

// ClaimsFromContext returns the verified token claims attached by
// AuthnMiddleware, or nil for unauthenticated requests.
func ClaimsFromContext(ctx context.Context) *jwtx.Claims {
	if c, ok := ctx.Value(CtxKeyClaims).(*jwtx.Claims); ok {
		return c
	}
	return nil
}
