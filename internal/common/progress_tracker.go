package common

import (
	"sync"
	"time"
)

// Progress session lifecycle states
const (
	SessionRunning   = "running"
	SessionCompleted = "completed"
	SessionFailed    = "failed"
)

// ProgressSession is a snapshot of one long-running operation's counters.
// Lifetime is process memory only; nothing survives a restart.
type ProgressSession struct {
	SessionID string    `json:"session_id"`
	Job       string    `json:"job"`
	Total     int       `json:"total"`
	Processed int       `json:"processed"`
	Errors    int       `json:"errors"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressTracker is the process-wide session store polled by the UI.
// Counter updates happen under the lock, so concurrent workers cannot
// lose increments.
type ProgressTracker struct {
	mu       sync.RWMutex
	sessions map[string]*ProgressSession
	ttl      time.Duration
}

// NewProgressTracker starts a tracker whose finished sessions are swept
// after ttl
func NewProgressTracker(ttl time.Duration) *ProgressTracker {
	t := &ProgressTracker{
		sessions: make(map[string]*ProgressSession),
		ttl:      ttl,
	}
	go t.sweep()
	return t
}

// Create registers a session with zeroed counters
func (t *ProgressTracker) Create(sessionID, job string, total int) {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[sessionID] = &ProgressSession{
		SessionID: sessionID,
		Job:       job,
		Total:     total,
		Status:    SessionRunning,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// SetTotal updates the expected item count once it is known (paged jobs
// discover the total on the first page)
func (t *ProgressTracker) SetTotal(sessionID string, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[sessionID]; ok {
		s.Total = total
		s.UpdatedAt = time.Now()
	}
}

// Increment advances the counters. Unknown sessions are ignored rather
// than resurrected.
func (t *ProgressTracker) Increment(sessionID string, processed, errors int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[sessionID]; ok {
		s.Processed += processed
		s.Errors += errors
		s.UpdatedAt = time.Now()
	}
}

// Complete marks a session finished
func (t *ProgressTracker) Complete(sessionID string) {
	t.setStatus(sessionID, SessionCompleted, "")
}

// Fail marks a session failed with an operator-visible detail
func (t *ProgressTracker) Fail(sessionID, detail string) {
	t.setStatus(sessionID, SessionFailed, detail)
}

func (t *ProgressTracker) setStatus(sessionID, status, detail string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[sessionID]; ok {
		s.Status = status
		s.Detail = detail
		s.UpdatedAt = time.Now()
	}
}

// Get returns a copy of the session snapshot
func (t *ProgressTracker) Get(sessionID string) (ProgressSession, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sessions[sessionID]
	if !ok {
		return ProgressSession{}, false
	}
	return *s, true
}

// sweep drops finished sessions that have not been touched within the TTL
func (t *ProgressTracker) sweep() {
	interval := t.ttl
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-t.ttl)
		t.mu.Lock()
		for id, s := range t.sessions {
			if s.Status != SessionRunning && s.UpdatedAt.Before(cutoff) {
				delete(t.sessions, id)
			}
		}
		t.mu.Unlock()
	}
}
