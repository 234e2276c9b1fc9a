package service

import (
	"context"
	"sort"
	"time"

	"reclaim/backend/internal/model"
	"reclaim/backend/internal/repository"
)

// In-memory store fakes. They mirror the repository semantics, including
// repository.ErrNotFound for absent rows.

type fakeUsageStore struct {
	logs map[string]map[string]model.UsageLog // userID -> date -> log
}

func newFakeUsageStore() *fakeUsageStore {
	return &fakeUsageStore{logs: make(map[string]map[string]model.UsageLog)}
}

func (f *fakeUsageStore) GetByDate(_ context.Context, userID, date string) (*model.UsageLog, error) {
	usageLog, ok := f.logs[userID][date]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := usageLog
	clone.Apps = append([]model.AppUsage(nil), usageLog.Apps...)
	return &clone, nil
}

func (f *fakeUsageStore) Upsert(_ context.Context, usageLog *model.UsageLog) error {
	if f.logs[usageLog.UserID] == nil {
		f.logs[usageLog.UserID] = make(map[string]model.UsageLog)
	}
	clone := *usageLog
	clone.Apps = append([]model.AppUsage(nil), usageLog.Apps...)
	f.logs[usageLog.UserID][usageLog.Date] = clone
	return nil
}

func (f *fakeUsageStore) ListRange(_ context.Context, userID, from, to string) ([]model.UsageLog, error) {
	var logs []model.UsageLog
	for date, usageLog := range f.logs[userID] {
		if date >= from && date <= to {
			logs = append(logs, usageLog)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })
	return logs, nil
}

type fakeFocusStore struct {
	sessions map[string]model.FocusSession // sessionID -> session
}

func newFakeFocusStore() *fakeFocusStore {
	return &fakeFocusStore{sessions: make(map[string]model.FocusSession)}
}

func (f *fakeFocusStore) Insert(_ context.Context, session *model.FocusSession) error {
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeFocusStore) GetByID(_ context.Context, userID, sessionID string) (*model.FocusSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, repository.ErrNotFound
	}
	clone := session
	return &clone, nil
}

func (f *fakeFocusStore) Update(_ context.Context, session *model.FocusSession) error {
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeFocusStore) ListStartedBetween(_ context.Context, userID string, from, to time.Time) ([]model.FocusSession, error) {
	var sessions []model.FocusSession
	for _, session := range f.sessions {
		if session.UserID != userID {
			continue
		}
		if session.StartedAt.Before(from) || !session.StartedAt.Before(to) {
			continue
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})
	return sessions, nil
}

func (f *fakeFocusStore) Active(_ context.Context, userID string) (*model.FocusSession, error) {
	var active *model.FocusSession
	for id := range f.sessions {
		session := f.sessions[id]
		if session.UserID != userID || session.EndedAt != nil {
			continue
		}
		if active == nil || session.StartedAt.After(active.StartedAt) {
			clone := session
			active = &clone
		}
	}
	if active == nil {
		return nil, repository.ErrNotFound
	}
	return active, nil
}

type fakeInsightStore struct {
	records map[string]map[string]model.InsightRecord // userID -> date -> record
}

func newFakeInsightStore() *fakeInsightStore {
	return &fakeInsightStore{records: make(map[string]map[string]model.InsightRecord)}
}

func (f *fakeInsightStore) Upsert(_ context.Context, record *model.InsightRecord) error {
	if f.records[record.UserID] == nil {
		f.records[record.UserID] = make(map[string]model.InsightRecord)
	}
	f.records[record.UserID][record.Date] = *record
	return nil
}

func (f *fakeInsightStore) GetByDate(_ context.Context, userID, date string) (*model.InsightRecord, error) {
	record, ok := f.records[userID][date]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := record
	return &clone, nil
}

func (f *fakeInsightStore) Latest(_ context.Context, userID string) (*model.InsightRecord, error) {
	var latest *model.InsightRecord
	for date := range f.records[userID] {
		record := f.records[userID][date]
		if latest == nil || record.Date > latest.Date {
			clone := record
			latest = &clone
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

type fakeProfileStore struct {
	users map[string]model.User
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{users: make(map[string]model.User)}
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := user
	return &clone, nil
}

func (f *fakeProfileStore) UpdatePreferences(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	f.users[user.ID] = *user
	return nil
}
