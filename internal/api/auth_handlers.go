package api

import (
	"encoding/json"
	"net/http"
	"time"

	"seda-ops/ledgersync/internal/common"
	"seda-ops/ledgersync/internal/models/dtos"
)

const dashboardLinkTTL = 15 * time.Minute

// GenerateDashboardLinkHandler signs a short-lived token the web UI can
// use to poll one session's progress without an API key
func GenerateDashboardLinkHandler(signer *common.LinkSignerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.DashboardLinkReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.SessionID == "" {
			respondWithError(w, http.StatusBadRequest, "session_id is required")
			return
		}

		token, err := signer.GenerateLinkToken(req.SessionID, dashboardLinkTTL)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &dtos.DashboardLinkResponse{
			Token:     token,
			ExpiresIn: int(dashboardLinkTTL.Seconds()),
		})
	}
}
