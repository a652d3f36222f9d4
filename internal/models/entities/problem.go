package entities

import "time"

// ProblemEntry is one id the sync failed on, kept for operator review
type ProblemEntry struct {
	ID        int64     `db:"id" json:"id"`
	BubbleID  string    `db:"bubble_id" json:"bubble_id"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
