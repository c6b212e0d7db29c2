package services

import (
	"context"
	"testing"
	"time"
)

func TestAppendUnique(t *testing.T) {
	var days []string
	days = appendUnique(days, []string{"monday", "wednesday"})
	days = appendUnique(days, []string{"wednesday", "friday"})
	days = appendUnique(days, []string{"monday"})

	want := []string{"monday", "wednesday", "friday"}
	if len(days) != len(want) {
		t.Fatalf("got %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("days[%d] = %q, want %q", i, days[i], want[i])
		}
	}
}

func TestBatchCreateActivatesAndRefreshesSchedule(t *testing.T) {
	batches := newFakeBatchRepo()
	teachers := &fakeTeacherRepo{}
	svc := NewBatchService(batches, teachers, testLogger(t))

	batch := testBatch(2)
	batch.IsActive = false

	created, err := svc.Create(context.Background(), batch)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsActive {
		t.Error("expected new batch to be active")
	}

	// Schedule refresh runs on its own goroutine.
	deadline := time.After(2 * time.Second)
	for {
		if _, ok := teachers.schedules.Load(batch.TeacherID); ok {
			return
		}
		select {
		case <-deadline:
			t.Fatal("teacher schedule was not refreshed")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestBatchDeactivateKeepsRecord(t *testing.T) {
	batches := newFakeBatchRepo()
	svc := NewBatchService(batches, &fakeTeacherRepo{}, testLogger(t))

	batch := batches.put(testBatch(2))

	if err := svc.Deactivate(context.Background(), batch.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	stored, err := batches.GetByID(context.Background(), batch.ID)
	if err != nil {
		t.Fatalf("GetByID after deactivate: %v", err)
	}
	if stored.IsActive {
		t.Error("expected batch to be inactive")
	}
}
