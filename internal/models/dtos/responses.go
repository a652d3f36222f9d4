package dtos

// SyncStartedResponse is returned by the fire-and-forget trigger endpoints.
// The caller polls /sync/progress with the session id.
type SyncStartedResponse struct {
	SessionID string `json:"session_id"`
	Total     int    `json:"total"`
}

// SyncSummary is the terminal result of a batch run
type SyncSummary struct {
	Updated int           `json:"updated"`
	Skipped int           `json:"skipped"`
	Errored int           `json:"errored"`
	Errors  []RecordError `json:"errors,omitempty"`
}

type RecordError struct {
	BubbleID string `json:"bubble_id"`
	Reason   string `json:"reason"`
}

// BackfillSummary mirrors SyncSummary for the EPP cost backfill
type BackfillSummary struct {
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  int      `json:"errors"`
	Reasons []string `json:"skip_reasons,omitempty"`
}

type RecalcSummary struct {
	Invoices int `json:"invoices"`
	Errors   int `json:"errors"`
}

type SaveSyncListResponse struct {
	Saved int `json:"saved"`
}

type ProblemListResponse struct {
	Count int `json:"count"`
}

type DashboardLinkResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in_seconds"`
}
