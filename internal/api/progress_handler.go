package api

import (
	"net/http"

	"seda-ops/ledgersync/internal/auth"
	"seda-ops/ledgersync/internal/common"
)

// ProgressHandler returns the snapshot for a session id. Dashboard-link
// callers may only read the session their link was signed for.
func ProgressHandler(tracker *common.ProgressTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			respondWithError(w, http.StatusBadRequest, "session_id is required")
			return
		}

		claims := auth.GetOperatorClaims(r.Context())
		if claims != nil {
			if scope := claims.SessionScope(); scope != "" && scope != sessionID {
				respondWithError(w, http.StatusForbidden, "Token not valid for this session")
				return
			}
		}

		snapshot, ok := tracker.Get(sessionID)
		if !ok {
			respondWithError(w, http.StatusNotFound, "Unknown session id")
			return
		}

		respondWithSuccess(w, http.StatusOK, &snapshot)
	}
}
