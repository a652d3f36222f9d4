package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"seda-ops/ledgersync/internal/common"
	"seda-ops/ledgersync/internal/constants"
	"seda-ops/ledgersync/internal/logging"
	"seda-ops/ledgersync/internal/models/dtos"
)

// Service contracts the handlers depend on, mocked in tests
type PaymentSyncRunner interface {
	Run(ctx context.Context, sessionID string) (*dtos.SyncSummary, error)
}

type RecalcRunner interface {
	Run(ctx context.Context) (*dtos.RecalcSummary, error)
}

type BackfillRunner interface {
	Run(ctx context.Context) (*dtos.BackfillSummary, error)
}

type MigrationRunner interface {
	Run(ctx context.Context, sessionID, objectType string) (*dtos.SyncSummary, error)
}

type PaymentResetter interface {
	Reset(ctx context.Context) error
}

type SyncListSaver interface {
	Save(ctx context.Context, ids []string) error
}

type SyncListClearer interface {
	Clear(ctx context.Context) error
}

// PaymentSyncHandler starts the orchestrator in the background and returns
// the session id immediately. The run finishes or dies with the process;
// there is no cancellation, callers poll /sync/progress.
func PaymentSyncHandler(runner PaymentSyncRunner, tracker *common.ProgressTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := uuid.New().String()

		// registered up front so a poll racing the goroutine still resolves
		tracker.Create(sessionID, constants.JobPaymentSync, 0)

		go func() {
			if _, err := runner.Run(context.Background(), sessionID); err != nil {
				logging.Error("Payment sync run failed", "session_id", sessionID, "error", err.Error())
			}
		}()

		respondWithSuccess(w, http.StatusAccepted, &dtos.SyncStartedResponse{
			SessionID: sessionID,
		})
	}
}

// PaymentRecalculateHandler runs the invoice recalculation inline; it is
// quick enough that callers wait for the summary.
func PaymentRecalculateHandler(runner RecalcRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := runner.Run(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, summary)
	}
}

// EPPBackfillHandler runs the cost backfill inline and returns the counts
func EPPBackfillHandler(runner BackfillRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := runner.Run(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, summary)
	}
}

// PaymentResetHandler truncates the payment table. The confirm flag is
// checked before any mutation; absent or false means nothing happens.
func PaymentResetHandler(payments PaymentResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.PaymentResetReq
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
				respondWithError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
		}

		if !req.ConfirmDelete {
			respondWithError(w, http.StatusBadRequest, "confirm_delete must be true to reset the payment table")
			return
		}

		if err := payments.Reset(r.Context()); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		logging.Warn("Payment table reset by operator")
		respondWithSuccess[struct{}](w, http.StatusOK, nil)
	}
}

// SaveSyncListHandler replaces the saved id list. The UI submits the raw
// comma-separated textarea value.
func SaveSyncListHandler(list SyncListSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.SaveSyncListReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		ids := parseIDList(req.Ids)
		if len(ids) == 0 {
			respondWithError(w, http.StatusBadRequest, "No ids supplied")
			return
		}

		if err := list.Save(r.Context(), ids); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &dtos.SaveSyncListResponse{Saved: len(ids)})
	}
}

// ClearSyncListHandler drops the saved id list
func ClearSyncListHandler(list SyncListClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := list.Clear(r.Context()); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess[struct{}](w, http.StatusOK, nil)
	}
}

// RecordMigrationHandler starts a collection copy in the background
func RecordMigrationHandler(runner MigrationRunner, tracker *common.ProgressTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.RecordMigrationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.ObjectType == "" {
			respondWithError(w, http.StatusBadRequest, "object_type is required")
			return
		}

		sessionID := uuid.New().String()
		tracker.Create(sessionID, constants.JobRecordMigration, 0)

		objectType := req.ObjectType
		go func() {
			if _, err := runner.Run(context.Background(), sessionID, objectType); err != nil {
				logging.Error("Record migration failed",
					"session_id", sessionID,
					"object_type", objectType,
					"error", err.Error(),
				)
			}
		}()

		respondWithSuccess(w, http.StatusAccepted, &dtos.SyncStartedResponse{
			SessionID: sessionID,
		})
	}
}

// parseIDList splits a comma-separated id string, dropping blanks
func parseIDList(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
