package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"reclaim/backend/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSubmitCreatesRecordForEmptyDay(t *testing.T) {
	store := newFakeUsageStore()
	svc := NewUsageService(store)

	usageLog, apiErr := svc.Submit(context.Background(), "user-1", "2026-08-31", []AppUsageInput{
		{Name: "instagram", Minutes: 30},
		{Name: "vscode", Minutes: 45},
	})
	if apiErr != nil {
		t.Fatalf("submit failed: %v", apiErr)
	}

	want := []model.AppUsage{{Name: "instagram", Minutes: 30}, {Name: "vscode", Minutes: 45}}
	if !reflect.DeepEqual(usageLog.Apps, want) {
		t.Fatalf("expected %v, got %v", want, usageLog.Apps)
	}
}

func TestSubmitAccumulatesAcrossSubmissions(t *testing.T) {
	store := newFakeUsageStore()
	svc := NewUsageService(store)
	ctx := context.Background()

	if _, apiErr := svc.Submit(ctx, "user-1", "2026-08-31", []AppUsageInput{
		{Name: "instagram", Minutes: 30},
	}); apiErr != nil {
		t.Fatalf("first submit failed: %v", apiErr)
	}

	usageLog, apiErr := svc.Submit(ctx, "user-1", "2026-08-31", []AppUsageInput{
		{Name: "instagram", Minutes: 20},
		{Name: "youtube", Minutes: 10},
	})
	if apiErr != nil {
		t.Fatalf("second submit failed: %v", apiErr)
	}

	want := []model.AppUsage{{Name: "instagram", Minutes: 50}, {Name: "youtube", Minutes: 10}}
	if !reflect.DeepEqual(usageLog.Apps, want) {
		t.Fatalf("expected accumulated %v, got %v", want, usageLog.Apps)
	}
}

func TestSubmitMergesDuplicateNamesInOneSubmission(t *testing.T) {
	store := newFakeUsageStore()
	svc := NewUsageService(store)

	usageLog, apiErr := svc.Submit(context.Background(), "user-1", "2026-08-31", []AppUsageInput{
		{Name: "instagram", Minutes: 10},
		{Name: "instagram", Minutes: 15},
	})
	if apiErr != nil {
		t.Fatalf("submit failed: %v", apiErr)
	}

	want := []model.AppUsage{{Name: "instagram", Minutes: 25}}
	if !reflect.DeepEqual(usageLog.Apps, want) {
		t.Fatalf("duplicate names must sum, expected %v, got %v", want, usageLog.Apps)
	}
}

func TestSubmitValidation(t *testing.T) {
	store := newFakeUsageStore()
	svc := NewUsageService(store)
	ctx := context.Background()

	cases := []struct {
		name     string
		userID   string
		date     string
		entries  []AppUsageInput
		wantCode string
	}{
		{"missing user", "", "2026-08-31", []AppUsageInput{{Name: "a", Minutes: 1}}, "missing_user"},
		{"missing date", "user-1", "", []AppUsageInput{{Name: "a", Minutes: 1}}, "missing_date"},
		{"bad date", "user-1", "31-08-2026", []AppUsageInput{{Name: "a", Minutes: 1}}, "invalid_date"},
		{"no entries", "user-1", "2026-08-31", nil, "invalid_usage_entries"},
		{"all entries invalid", "user-1", "2026-08-31", []AppUsageInput{
			{Name: "   ", Minutes: 10},
			{Name: "negative", Minutes: -5},
		}, "invalid_usage_entries"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, apiErr := svc.Submit(ctx, tc.userID, tc.date, tc.entries)
			if apiErr == nil {
				t.Fatal("expected validation error")
			}
			if apiErr.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %s", tc.wantCode, apiErr.Code)
			}
		})
	}
}

func TestSubmitDropsInvalidEntriesButKeepsValid(t *testing.T) {
	store := newFakeUsageStore()
	svc := NewUsageService(store)

	usageLog, apiErr := svc.Submit(context.Background(), "user-1", "2026-08-31", []AppUsageInput{
		{Name: "  vscode  ", Minutes: 45.4},
		{Name: "", Minutes: 10},
		{Name: "broken", Minutes: -1},
	})
	if apiErr != nil {
		t.Fatalf("submit failed: %v", apiErr)
	}

	want := []model.AppUsage{{Name: "vscode", Minutes: 45}}
	if !reflect.DeepEqual(usageLog.Apps, want) {
		t.Fatalf("expected %v, got %v", want, usageLog.Apps)
	}
}

func TestWeeklyReportStreakAndTotals(t *testing.T) {
	store := newFakeUsageStore()
	svc := NewUsageService(store)
	ctx := context.Background()

	today := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(today)

	// Oldest to newest: 0, 0, 45, 30, 0, 20, 15.
	minutesByOffset := map[int]int{4: 45, 3: 30, 1: 20, 0: 15}
	for offset, minutes := range minutesByOffset {
		date := today.AddDate(0, 0, -offset).Format(model.DateLayout)
		if _, apiErr := svc.Submit(ctx, "user-1", date, []AppUsageInput{
			{Name: "vscode", Minutes: float64(minutes)},
		}); apiErr != nil {
			t.Fatalf("submit for offset %d failed: %v", offset, apiErr)
		}
	}

	report, apiErr := svc.WeeklyReport(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("report failed: %v", apiErr)
	}

	wantDaily := []int{0, 0, 45, 30, 0, 20, 15}
	if !reflect.DeepEqual(report.Daily, wantDaily) {
		t.Fatalf("expected daily %v, got %v", wantDaily, report.Daily)
	}
	if report.Streak != 2 {
		t.Fatalf("expected streak 2 (stop at first zero scanning backward), got %d", report.Streak)
	}
	if len(report.Apps) != 1 || report.Apps[0].Minutes != 110 {
		t.Fatalf("expected vscode with 110 cross-day minutes, got %v", report.Apps)
	}
	if report.Badges == nil || len(report.Badges) != 0 {
		t.Fatalf("expected empty badges slice, got %v", report.Badges)
	}
}

func TestWeeklyReportAppsSortedDescendingStable(t *testing.T) {
	store := newFakeUsageStore()
	svc := NewUsageService(store)
	ctx := context.Background()

	today := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(today)

	if _, apiErr := svc.Submit(ctx, "user-1", "2026-08-31", []AppUsageInput{
		{Name: "chrome", Minutes: 20},
		{Name: "vscode", Minutes: 20},
		{Name: "slack", Minutes: 50},
	}); apiErr != nil {
		t.Fatalf("submit failed: %v", apiErr)
	}

	report, apiErr := svc.WeeklyReport(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("report failed: %v", apiErr)
	}

	want := []model.AppUsage{
		{Name: "slack", Minutes: 50},
		{Name: "chrome", Minutes: 20},
		{Name: "vscode", Minutes: 20},
	}
	if !reflect.DeepEqual(report.Apps, want) {
		t.Fatalf("expected stable descending sort %v, got %v", want, report.Apps)
	}
}

func TestTodaySummary(t *testing.T) {
	store := newFakeUsageStore()
	svc := NewUsageService(store)
	ctx := context.Background()

	today := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(today)

	summary, apiErr := svc.TodaySummary(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("summary failed: %v", apiErr)
	}
	if summary.TotalMinutes != 0 || len(summary.TopApps) != 0 {
		t.Fatalf("expected empty summary for missing day, got %+v", summary)
	}

	if _, apiErr := svc.Submit(ctx, "user-1", "2026-08-31", []AppUsageInput{
		{Name: "instagram", Minutes: 30},
		{Name: "vscode", Minutes: 45},
	}); apiErr != nil {
		t.Fatalf("submit failed: %v", apiErr)
	}

	summary, apiErr = svc.TodaySummary(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("summary failed: %v", apiErr)
	}
	if summary.TotalMinutes != 75 {
		t.Fatalf("expected 75 total minutes, got %d", summary.TotalMinutes)
	}
	if summary.TopApps[0].Name != "vscode" {
		t.Fatalf("expected vscode first, got %v", summary.TopApps)
	}

	// Reading the rollup twice without writes must be identical.
	again, apiErr := svc.TodaySummary(ctx, "user-1")
	if apiErr != nil {
		t.Fatalf("second summary failed: %v", apiErr)
	}
	if !reflect.DeepEqual(summary, again) {
		t.Fatalf("summary not idempotent: %+v vs %+v", summary, again)
	}
}
