package api

import (
	"context"
	"encoding/json"
	"net/http"

	"seda-ops/ledgersync/internal/models/dtos"
	"seda-ops/ledgersync/internal/models/entities"
)

type ProblemLister interface {
	List(ctx context.Context) ([]entities.ProblemEntry, error)
	ClearByBubbleID(ctx context.Context, bubbleID string) (int64, error)
	ClearAll(ctx context.Context) (int64, error)
}

// ListProblemsHandler returns every problem entry, newest first
func ListProblemsHandler(problems ProblemLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := problems.List(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &entries)
	}
}

// ClearProblemsHandler clears one id when bubble_id is set, otherwise all
func ClearProblemsHandler(problems ProblemLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.ClearProblemsReq
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
				respondWithError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
		}

		var (
			cleared int64
			err     error
		)
		if req.BubbleID != "" {
			cleared, err = problems.ClearByBubbleID(r.Context(), req.BubbleID)
		} else {
			cleared, err = problems.ClearAll(r.Context())
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &dtos.ProblemListResponse{Count: int(cleared)})
	}
}
