package middleware

import (
	"net/http"
	"strings"

	"seda-ops/ledgersync/internal/auth"
	"seda-ops/ledgersync/internal/common"
	"seda-ops/ledgersync/internal/db/repositories"
)

// AuthMiddleware accepts an operator API key (X-API-Key, checked against
// the api_keys table) or a signed dashboard link token (Bearer). Dashboard
// tokens only grant read access to their own progress session.
func AuthMiddleware(keysRepo *repositories.KeysRepo, signer *common.LinkSignerService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.OperatorClaims

			switch {
			case apiKey != "":
				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}

				if !keyRes.Status {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				claims = &auth.APIKeyClaims{KeyID: keyRes.ApiKey}

			case strings.HasPrefix(authHeader, "Bearer "):
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")
				token, err := signer.ValidateToken(tokenString)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid dashboard token", http.StatusUnauthorized)
					return
				}

				claims = &auth.DashboardLinkClaims{
					TokenID:   token.TokenID,
					SessionID: token.SessionID,
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetOperatorClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSyncTrigger rejects dashboard-link callers on mutating endpoints
func RequireSyncTrigger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetOperatorClaims(r.Context())
			if claims == nil || !claims.CanTriggerSync() {
				http.Error(w, "Forbidden. API key required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
