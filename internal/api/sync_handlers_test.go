package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"seda-ops/ledgersync/internal/auth"
	"seda-ops/ledgersync/internal/common"
	"seda-ops/ledgersync/internal/models/dtos"
)

type mockSyncRunner struct {
	mu       sync.Mutex
	sessions []string
}

func (m *mockSyncRunner) Run(ctx context.Context, sessionID string) (*dtos.SyncSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, sessionID)
	return &dtos.SyncSummary{}, nil
}

type mockResetter struct {
	called bool
}

func (m *mockResetter) Reset(ctx context.Context) error {
	m.called = true
	return nil
}

type mockListSaver struct {
	saved   []string
	cleared bool
}

func (m *mockListSaver) Save(ctx context.Context, ids []string) error {
	m.saved = ids
	return nil
}

func (m *mockListSaver) Clear(ctx context.Context) error {
	m.cleared = true
	return nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func TestPaymentSyncHandler_ReturnsSessionID(t *testing.T) {
	runner := &mockSyncRunner{}
	tracker := common.NewProgressTracker(time.Minute)

	handler := PaymentSyncHandler(runner, tracker)

	req := httptest.NewRequest("POST", "/api/v1/sync/payment-sync", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", rec.Code)
	}

	body := decodeResponse(t, rec)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected data object in response")
	}

	sessionID, _ := data["session_id"].(string)
	if sessionID == "" {
		t.Fatal("Expected a session id")
	}

	// session is pollable before the background run makes progress
	if _, ok := tracker.Get(sessionID); !ok {
		t.Error("Expected session registered with the tracker")
	}
}

func TestPaymentResetHandler_RequiresConfirm(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"EmptyBody", ""},
		{"ConfirmFalse", `{"confirm_delete": false}`},
		{"ConfirmAbsent", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resetter := &mockResetter{}
			handler := PaymentResetHandler(resetter)

			req := httptest.NewRequest("POST", "/api/v1/sync/payment-reset", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			if resetter.called {
				t.Error("Reset must not run without confirm_delete")
			}
		})
	}
}

func TestPaymentResetHandler_Confirmed(t *testing.T) {
	resetter := &mockResetter{}
	handler := PaymentResetHandler(resetter)

	req := httptest.NewRequest("POST", "/api/v1/sync/payment-reset",
		strings.NewReader(`{"confirm_delete": true}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !resetter.called {
		t.Error("Expected reset to run")
	}
}

func TestSaveSyncListHandler_ParsesCommaList(t *testing.T) {
	saver := &mockListSaver{}
	handler := SaveSyncListHandler(saver)

	req := httptest.NewRequest("POST", "/api/v1/sync/payment-save-list",
		strings.NewReader(`{"ids": " p1, p2 ,, p3 ,"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	want := []string{"p1", "p2", "p3"}
	if len(saver.saved) != len(want) {
		t.Fatalf("Expected %d ids, got %v", len(want), saver.saved)
	}
	for i, id := range want {
		if saver.saved[i] != id {
			t.Errorf("Expected id %q at %d, got %q", id, i, saver.saved[i])
		}
	}
}

func TestSaveSyncListHandler_EmptyList(t *testing.T) {
	saver := &mockListSaver{}
	handler := SaveSyncListHandler(saver)

	req := httptest.NewRequest("POST", "/api/v1/sync/payment-save-list",
		strings.NewReader(`{"ids": " , ,"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a blank list, got %d", rec.Code)
	}
	if saver.saved != nil {
		t.Error("Nothing should be saved for a blank list")
	}
}

func TestClearSyncListHandler(t *testing.T) {
	saver := &mockListSaver{}
	handler := ClearSyncListHandler(saver)

	req := httptest.NewRequest("POST", "/api/v1/sync/payment-clear-list", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !saver.cleared {
		t.Error("Expected the saved list to be cleared")
	}
}

func TestProgressHandler_KnownSession(t *testing.T) {
	tracker := common.NewProgressTracker(time.Minute)
	tracker.Create("s1", "payment_sync", 10)
	tracker.Increment("s1", 3, 1)

	handler := ProgressHandler(tracker)

	req := httptest.NewRequest("GET", "/api/v1/sync/progress?session_id=s1", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body := decodeResponse(t, rec)
	data := body["data"].(map[string]interface{})
	if data["processed"].(float64) != 3 {
		t.Errorf("Expected 3 processed, got %v", data["processed"])
	}
	if data["errors"].(float64) != 1 {
		t.Errorf("Expected 1 error, got %v", data["errors"])
	}
}

func TestProgressHandler_UnknownSession(t *testing.T) {
	handler := ProgressHandler(common.NewProgressTracker(time.Minute))

	req := httptest.NewRequest("GET", "/api/v1/sync/progress?session_id=nope", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestProgressHandler_MissingSessionID(t *testing.T) {
	handler := ProgressHandler(common.NewProgressTracker(time.Minute))

	req := httptest.NewRequest("GET", "/api/v1/sync/progress", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestProgressHandler_DashboardLinkScope(t *testing.T) {
	tracker := common.NewProgressTracker(time.Minute)
	tracker.Create("s1", "payment_sync", 10)
	tracker.Create("s2", "payment_sync", 10)

	handler := ProgressHandler(tracker)
	claims := &auth.DashboardLinkClaims{TokenID: "tok", SessionID: "s1"}

	// link scoped to s1 may read s1
	req := httptest.NewRequest("GET", "/api/v1/sync/progress?session_id=s1", nil)
	req = req.WithContext(auth.SetOperatorClaims(req.Context(), claims))
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for in-scope session, got %d", rec.Code)
	}

	// but never s2
	req = httptest.NewRequest("GET", "/api/v1/sync/progress?session_id=s2", nil)
	req = req.WithContext(auth.SetOperatorClaims(req.Context(), claims))
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for out-of-scope session, got %d", rec.Code)
	}
}

func TestRecordMigrationHandler_RequiresObjectType(t *testing.T) {
	tracker := common.NewProgressTracker(time.Minute)
	handler := RecordMigrationHandler(&mockMigrationRunner{}, tracker)

	req := httptest.NewRequest("POST", "/api/v1/sync/record-migration",
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without object_type, got %d", rec.Code)
	}
}

type mockMigrationRunner struct{}

func (m *mockMigrationRunner) Run(ctx context.Context, sessionID, objectType string) (*dtos.SyncSummary, error) {
	return &dtos.SyncSummary{}, nil
}

func TestRecordMigrationHandler_Accepted(t *testing.T) {
	tracker := common.NewProgressTracker(time.Minute)
	handler := RecordMigrationHandler(&mockMigrationRunner{}, tracker)

	req := httptest.NewRequest("POST", "/api/v1/sync/record-migration",
		strings.NewReader(`{"object_type": "customer"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", rec.Code)
	}
}
