package dtos

// SaveSyncListReq carries the operator-pasted id list. Ids is the raw
// comma-separated string exactly as the UI textarea submits it.
type SaveSyncListReq struct {
	Ids string `json:"ids"`
}

type PaymentResetReq struct {
	ConfirmDelete bool `json:"confirm_delete"`
}

type ClearProblemsReq struct {
	// BubbleID clears a single entry when set; empty clears everything
	BubbleID string `json:"bubble_id,omitempty"`
}

type RecordMigrationReq struct {
	ObjectType string `json:"object_type"`
}

type DashboardLinkReq struct {
	SessionID string `json:"session_id"`
}
