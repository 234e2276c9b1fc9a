package service

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestFocusStartAndEnd(t *testing.T) {
	store := newFakeFocusStore()
	svc := NewFocusService(store)
	ctx := context.Background()

	start := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(start)

	session, apiErr := svc.Start(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("start failed: %v", apiErr)
	}
	if session.EndedAt != nil || session.DurationMinutes != 0 {
		t.Fatalf("new session should be open with zero duration, got %+v", session)
	}

	// 90 seconds elapsed: floor(1.5) = 1 minute, not 2.
	svc.now = fixedClock(start.Add(90 * time.Second))
	ended, apiErr := svc.End(ctx, "user-1", session.ID)
	if apiErr != nil {
		t.Fatalf("end failed: %v", apiErr)
	}
	if ended.DurationMinutes != 1 {
		t.Fatalf("expected duration 1 minute, got %d", ended.DurationMinutes)
	}
	if ended.ReclaimedMinutes != ended.DurationMinutes {
		t.Fatalf("reclaimed must equal duration, got %d vs %d", ended.ReclaimedMinutes, ended.DurationMinutes)
	}
	if ended.EndedAt == nil {
		t.Fatal("expected ended session to have an end time")
	}
}

func TestFocusEndUnknownSession(t *testing.T) {
	svc := NewFocusService(newFakeFocusStore())

	_, apiErr := svc.End(context.Background(), "user-1", "missing")
	if apiErr == nil || apiErr.Code != "session_not_found" {
		t.Fatalf("expected session_not_found, got %v", apiErr)
	}
}

func TestFocusEndScopedToOwner(t *testing.T) {
	store := newFakeFocusStore()
	svc := NewFocusService(store)
	ctx := context.Background()

	session, apiErr := svc.Start(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("start failed: %v", apiErr)
	}

	_, apiErr = svc.End(ctx, "user-2", session.ID)
	if apiErr == nil || apiErr.Code != "session_not_found" {
		t.Fatalf("expected session_not_found for foreign user, got %v", apiErr)
	}
}

func TestFocusEndTwiceConflicts(t *testing.T) {
	store := newFakeFocusStore()
	svc := NewFocusService(store)
	ctx := context.Background()

	session, apiErr := svc.Start(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("start failed: %v", apiErr)
	}
	if _, apiErr := svc.End(ctx, "user-1", session.ID); apiErr != nil {
		t.Fatalf("first end failed: %v", apiErr)
	}

	_, apiErr = svc.End(ctx, "user-1", session.ID)
	if apiErr == nil || apiErr.Code != "session_already_ended" {
		t.Fatalf("expected session_already_ended, got %v", apiErr)
	}
	if apiErr.Status != http.StatusConflict {
		t.Fatalf("expected 409 status, got %d", apiErr.Status)
	}
}

func TestFocusToday(t *testing.T) {
	store := newFakeFocusStore()
	svc := NewFocusService(store)
	ctx := context.Background()

	morning := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	svc.now = fixedClock(morning)
	first, _ := svc.Start(ctx, "user-1")
	if _, apiErr := svc.End(ctx, "user-1", first.ID); apiErr != nil {
		t.Fatalf("end failed: %v", apiErr)
	}

	svc.now = fixedClock(morning.Add(2 * time.Hour))
	second, _ := svc.Start(ctx, "user-1")

	today, apiErr := svc.Today(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("today failed: %v", apiErr)
	}
	if len(today.Sessions) != 2 {
		t.Fatalf("expected 2 sessions today, got %d", len(today.Sessions))
	}
	if !today.Sessions[0].StartedAt.Before(today.Sessions[1].StartedAt) {
		t.Fatal("sessions must be ascending by start time")
	}
	if today.Active == nil || today.Active.ID != second.ID {
		t.Fatalf("expected the open session as active, got %+v", today.Active)
	}
}
