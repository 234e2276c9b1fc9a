package service

import (
	"context"
	"time"

	"reclaim/backend/internal/model"
)

// Store interfaces consumed by the services. The sqlite repositories
// satisfy them in production; tests use in-memory fakes. Absent rows are
// reported as repository.ErrNotFound.

type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdatePreferences(ctx context.Context, user *model.User) error
}

type UsageStore interface {
	GetByDate(ctx context.Context, userID, date string) (*model.UsageLog, error)
	Upsert(ctx context.Context, log *model.UsageLog) error
	ListRange(ctx context.Context, userID, from, to string) ([]model.UsageLog, error)
}

type FocusStore interface {
	Insert(ctx context.Context, session *model.FocusSession) error
	GetByID(ctx context.Context, userID, sessionID string) (*model.FocusSession, error)
	Update(ctx context.Context, session *model.FocusSession) error
	ListStartedBetween(ctx context.Context, userID string, from, to time.Time) ([]model.FocusSession, error)
	Active(ctx context.Context, userID string) (*model.FocusSession, error)
}

type InsightStore interface {
	Upsert(ctx context.Context, record *model.InsightRecord) error
	GetByDate(ctx context.Context, userID, date string) (*model.InsightRecord, error)
	Latest(ctx context.Context, userID string) (*model.InsightRecord, error)
}

// Recommender is the insight engine seam; it always succeeds.
type Recommender interface {
	Generate(ctx context.Context, profile model.Profile, logs []model.UsageLog) model.InsightData
}
