package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "reclaim/backend/internal/errors"
	"reclaim/backend/internal/model"
	"reclaim/backend/internal/repository"
)

const reportDays = 7

type UsageService struct {
	store UsageStore
	now   func() time.Time
}

func NewUsageService(store UsageStore) *UsageService {
	return &UsageService{store: store, now: time.Now}
}

// AppUsageInput is one submitted entry before normalization. Minutes binds
// as a float so any JSON number is accepted and validated here rather than
// rejected by the decoder.
type AppUsageInput struct {
	Name    string  `json:"name"`
	Minutes float64 `json:"minutes"`
}

type DaySummary struct {
	TotalMinutes int              `json:"totalMinutes"`
	TopApps      []model.AppUsage `json:"topApps"`
}

type WeeklyReport struct {
	Daily  []int            `json:"daily"`
	Apps   []model.AppUsage `json:"apps"`
	Streak int              `json:"streak"`
	Badges []string         `json:"badges"`
}

// Submit merges the entries into the user's record for the given day.
// Minutes accumulate per app name across submissions; they never
// overwrite. Exactly one row is written per call.
func (s *UsageService) Submit(ctx context.Context, userID, date string, entries []AppUsageInput) (*model.UsageLog, *apperrors.APIError) {
	if userID == "" {
		return nil, apperrors.BadRequest("missing_user", "userId is required")
	}
	if date == "" {
		return nil, apperrors.BadRequest("missing_date", "date is required")
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperrors.BadRequest("invalid_date", "date must be formatted YYYY-MM-DD")
	}

	normalized := normalizeEntries(entries)
	if len(normalized) == 0 {
		return nil, apperrors.BadRequest("invalid_usage_entries", "no valid usage entries in submission")
	}

	existing, err := s.store.GetByDate(ctx, userID, date)
	if err != nil && err != repository.ErrNotFound {
		return nil, apperrors.Internal("failed to read usage log")
	}

	now := s.now().UTC()
	usageLog := existing
	if usageLog == nil {
		usageLog = &model.UsageLog{
			ID:        uuid.NewString(),
			UserID:    userID,
			Date:      date,
			CreatedAt: now,
		}
	}

	usageLog.Apps = mergeApps(usageLog.Apps, normalized)
	usageLog.UpdatedAt = now

	if err := s.store.Upsert(ctx, usageLog); err != nil {
		return nil, apperrors.Internal("failed to save usage log")
	}

	return usageLog, nil
}

// TodaySummary returns today's total minutes and the full app list sorted
// descending by minutes. A day without a record is an empty summary, not
// an error.
func (s *UsageService) TodaySummary(ctx context.Context, userID string) (*DaySummary, *apperrors.APIError) {
	today := s.now().UTC().Format(model.DateLayout)

	usageLog, err := s.store.GetByDate(ctx, userID, today)
	if err == repository.ErrNotFound {
		return &DaySummary{TopApps: []model.AppUsage{}}, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read usage log")
	}

	topApps := make([]model.AppUsage, len(usageLog.Apps))
	copy(topApps, usageLog.Apps)
	sort.SliceStable(topApps, func(i, j int) bool {
		return topApps[i].Minutes > topApps[j].Minutes
	})

	return &DaySummary{
		TotalMinutes: usageLog.TotalMinutes(),
		TopApps:      topApps,
	}, nil
}

// WeeklyReport covers the closed 7-day window ending today: per-day totals
// oldest to newest, cross-day per-app totals sorted descending, and the
// streak of trailing nonzero days.
func (s *UsageService) WeeklyReport(ctx context.Context, userID string) (*WeeklyReport, *apperrors.APIError) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -(reportDays - 1))

	logs, err := s.store.ListRange(
		ctx,
		userID,
		start.Format(model.DateLayout),
		end.Format(model.DateLayout),
	)
	if err != nil {
		return nil, apperrors.Internal("failed to read usage logs")
	}

	logsByDate := make(map[string]model.UsageLog, len(logs))
	for _, usageLog := range logs {
		logsByDate[usageLog.Date] = usageLog
	}

	daily := make([]int, 0, reportDays)
	appTotals := make(map[string]int)
	appOrder := make([]string, 0)

	for i := 0; i < reportDays; i++ {
		date := start.AddDate(0, 0, i).Format(model.DateLayout)
		usageLog, ok := logsByDate[date]
		if !ok {
			daily = append(daily, 0)
			continue
		}

		dayTotal := 0
		for _, app := range usageLog.Apps {
			if _, seen := appTotals[app.Name]; !seen {
				appOrder = append(appOrder, app.Name)
			}
			appTotals[app.Name] += app.Minutes
			dayTotal += app.Minutes
		}
		daily = append(daily, dayTotal)
	}

	apps := make([]model.AppUsage, 0, len(appOrder))
	for _, name := range appOrder {
		apps = append(apps, model.AppUsage{Name: name, Minutes: appTotals[name]})
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].Minutes > apps[j].Minutes
	})

	return &WeeklyReport{
		Daily:  daily,
		Apps:   apps,
		Streak: streak(daily),
		Badges: []string{},
	}, nil
}

// streak counts trailing days with usage, scanning backward from the most
// recent day and stopping at the first zero.
func streak(daily []int) int {
	count := 0
	for i := len(daily) - 1; i >= 0; i-- {
		if daily[i] <= 0 {
			break
		}
		count++
	}
	return count
}

// normalizeEntries trims names, rejects empty names and non-finite or
// negative minutes, and rounds minutes to whole numbers. Failing entries
// are dropped, not reported.
func normalizeEntries(entries []AppUsageInput) []model.AppUsage {
	normalized := make([]model.AppUsage, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		if math.IsNaN(entry.Minutes) || math.IsInf(entry.Minutes, 0) || entry.Minutes < 0 {
			continue
		}
		normalized = append(normalized, model.AppUsage{
			Name:    name,
			Minutes: int(math.Round(entry.Minutes)),
		})
	}
	return normalized
}

// mergeApps adds new minutes onto existing per-app totals. Existing apps
// keep their position; new names append in submission order.
func mergeApps(existing []model.AppUsage, incoming []model.AppUsage) []model.AppUsage {
	totals := make(map[string]int, len(existing)+len(incoming))
	order := make([]string, 0, len(existing)+len(incoming))

	for _, app := range existing {
		if _, seen := totals[app.Name]; !seen {
			order = append(order, app.Name)
		}
		totals[app.Name] += app.Minutes
	}
	for _, app := range incoming {
		if _, seen := totals[app.Name]; !seen {
			order = append(order, app.Name)
		}
		totals[app.Name] += app.Minutes
	}

	merged := make([]model.AppUsage, 0, len(order))
	for _, name := range order {
		merged = append(merged, model.AppUsage{Name: name, Minutes: totals[name]})
	}
	return merged
}
