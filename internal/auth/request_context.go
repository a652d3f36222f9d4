package auth

import "context"

type contextKey string

const claimsKey contextKey = "operator_claims"

// SetOperatorClaims stores claims on the request context
func SetOperatorClaims(ctx context.Context, claims OperatorClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetOperatorClaims returns the claims set by the auth middleware, or nil
func GetOperatorClaims(ctx context.Context) OperatorClaims {
	claims, _ := ctx.Value(claimsKey).(OperatorClaims)
	return claims
}
