package auth

import (
	"context"
)

var claimsCtxKey = &contextKey{"claims"}
var tokenErrCtxKey = &contextKey{"token_error"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the AuthClaims in the given context.
func WithClaimsContext(ctx context.Context, claims AuthClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the context.
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}

// WithTokenError records why a presented token failed validation so gated
// operations can surface the precise cause instead of a generic unauthorized.
func WithTokenError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, tokenErrCtxKey, err)
}

// GetTokenError returns the recorded token validation failure, if any.
func GetTokenError(ctx context.Context) (error, bool) {
	raw, ok := ctx.Value(tokenErrCtxKey).(error)
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}
