package common

import (
	"sync"
	"testing"
	"time"
)

func TestProgressTracker_CreateAndGet(t *testing.T) {
	tracker := NewProgressTracker(time.Minute)

	tracker.Create("s1", "payment_sync", 10)

	snap, ok := tracker.Get("s1")
	if !ok {
		t.Fatal("Expected session to exist")
	}

	if snap.Total != 10 {
		t.Errorf("Expected total 10, got %d", snap.Total)
	}
	if snap.Processed != 0 || snap.Errors != 0 {
		t.Errorf("Expected zeroed counters, got processed=%d errors=%d", snap.Processed, snap.Errors)
	}
	if snap.Status != SessionRunning {
		t.Errorf("Expected status %s, got %s", SessionRunning, snap.Status)
	}
}

func TestProgressTracker_UnknownSession(t *testing.T) {
	tracker := NewProgressTracker(time.Minute)

	if _, ok := tracker.Get("missing"); ok {
		t.Error("Expected unknown session to report not found")
	}

	// increments on unknown sessions are dropped, not resurrected
	tracker.Increment("missing", 1, 0)
	if _, ok := tracker.Get("missing"); ok {
		t.Error("Increment must not create a session")
	}
}

func TestProgressTracker_ConcurrentIncrements(t *testing.T) {
	tracker := NewProgressTracker(time.Minute)
	tracker.Create("s1", "payment_sync", 10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Increment("s1", 1, 0)
		}()
	}
	wg.Wait()

	snap, _ := tracker.Get("s1")
	if snap.Processed != 10 {
		t.Errorf("Expected 10 processed after 10 concurrent increments, got %d", snap.Processed)
	}
}

func TestProgressTracker_CompleteAndFail(t *testing.T) {
	tracker := NewProgressTracker(time.Minute)

	tracker.Create("done", "payment_sync", 1)
	tracker.Complete("done")
	snap, _ := tracker.Get("done")
	if snap.Status != SessionCompleted {
		t.Errorf("Expected status %s, got %s", SessionCompleted, snap.Status)
	}

	tracker.Create("bad", "payment_sync", 1)
	tracker.Fail("bad", "could not read sync id list")
	snap, _ = tracker.Get("bad")
	if snap.Status != SessionFailed {
		t.Errorf("Expected status %s, got %s", SessionFailed, snap.Status)
	}
	if snap.Detail == "" {
		t.Error("Expected failure detail to be set")
	}
}

func TestProgressTracker_SetTotal(t *testing.T) {
	tracker := NewProgressTracker(time.Minute)
	tracker.Create("s1", "record_migration", 0)

	tracker.SetTotal("s1", 250)

	snap, _ := tracker.Get("s1")
	if snap.Total != 250 {
		t.Errorf("Expected total 250, got %d", snap.Total)
	}
}

func TestProgressTracker_SnapshotIsCopy(t *testing.T) {
	tracker := NewProgressTracker(time.Minute)
	tracker.Create("s1", "payment_sync", 5)

	snap, _ := tracker.Get("s1")
	snap.Processed = 99

	fresh, _ := tracker.Get("s1")
	if fresh.Processed != 0 {
		t.Error("Mutating a snapshot must not affect the stored session")
	}
}
