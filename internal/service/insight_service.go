package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "reclaim/backend/internal/errors"
	"reclaim/backend/internal/model"
	"reclaim/backend/internal/repository"
)

type InsightService struct {
	profiles ProfileStore
	usage    UsageStore
	insights InsightStore
	engine   Recommender
	now      func() time.Time
}

func NewInsightService(profiles ProfileStore, usage UsageStore, insights InsightStore, engine Recommender) *InsightService {
	return &InsightService{
		profiles: profiles,
		usage:    usage,
		insights: insights,
		engine:   engine,
		now:      time.Now,
	}
}

// Generate runs the engine over the user's profile and today's usage and
// stores the result keyed on (user, date), replacing any earlier run for
// the same day. The engine itself cannot fail; only missing inputs and
// persistence problems surface here.
func (s *InsightService) Generate(ctx context.Context, userID string) (*model.InsightData, *apperrors.APIError) {
	user, err := s.profiles.GetByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("user_not_found", "user profile not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read user profile")
	}

	today := s.now().UTC().Format(model.DateLayout)
	usageLog, err := s.usage.GetByDate(ctx, userID, today)
	if err == repository.ErrNotFound {
		return nil, apperrors.BadRequest("no_usage_data", "no data to analyze")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read usage log")
	}

	data := s.engine.Generate(ctx, user.Profile(), []model.UsageLog{*usageLog})

	now := s.now().UTC()
	record := &model.InsightRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      today,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.insights.Upsert(ctx, record); err != nil {
		return nil, apperrors.Internal("failed to save insights")
	}

	return &data, nil
}

// Latest returns today's insight record, falling back to the most recent
// one from an earlier day.
func (s *InsightService) Latest(ctx context.Context, userID string) (*model.InsightRecord, *apperrors.APIError) {
	today := s.now().UTC().Format(model.DateLayout)

	record, err := s.insights.GetByDate(ctx, userID, today)
	if err == nil {
		return record, nil
	}
	if err != repository.ErrNotFound {
		return nil, apperrors.Internal("failed to read insights")
	}

	record, err = s.insights.Latest(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("insights_not_found", "no insights generated yet")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read insights")
	}
	return record, nil
}
