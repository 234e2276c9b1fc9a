package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "reclaim/backend/internal/errors"
	"reclaim/backend/internal/model"
	"reclaim/backend/internal/repository"
)

type FocusService struct {
	store FocusStore
	now   func() time.Time
}

func NewFocusService(store FocusStore) *FocusService {
	return &FocusService{store: store, now: time.Now}
}

type TodayFocus struct {
	Sessions []model.FocusSession `json:"sessions"`
	Active   *model.FocusSession  `json:"active,omitempty"`
}

// Start opens a new session. A second session may be started while one is
// still open; clients that want a single active session check the active
// field of Today before starting.
func (s *FocusService) Start(ctx context.Context, userID string) (*model.FocusSession, *apperrors.APIError) {
	now := s.now().UTC()
	session := &model.FocusSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Insert(ctx, session); err != nil {
		return nil, apperrors.Internal("failed to start focus session")
	}
	return session, nil
}

// End closes the session and fixes its duration: whole elapsed minutes,
// rounded down. Reclaimed minutes equal the duration; no discount model
// is applied. A session can only be ended once.
func (s *FocusService) End(ctx context.Context, userID, sessionID string) (*model.FocusSession, *apperrors.APIError) {
	if sessionID == "" {
		return nil, apperrors.BadRequest("missing_session_id", "sessionId is required")
	}

	session, err := s.store.GetByID(ctx, userID, sessionID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("session_not_found", "focus session not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read focus session")
	}

	if session.EndedAt != nil {
		return nil, apperrors.Conflict("session_already_ended", "focus session already ended", nil)
	}

	now := s.now().UTC()
	duration := int(now.Sub(session.StartedAt).Minutes())
	if duration < 0 {
		duration = 0
	}

	session.EndedAt = &now
	session.DurationMinutes = duration
	session.ReclaimedMinutes = duration
	session.UpdatedAt = now

	if err := s.store.Update(ctx, session); err != nil {
		return nil, apperrors.Internal("failed to end focus session")
	}
	return session, nil
}

// Today lists sessions started during the current UTC day, ascending by
// start time, plus the most recent still-open session if any.
func (s *FocusService) Today(ctx context.Context, userID string) (*TodayFocus, *apperrors.APIError) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	sessions, err := s.store.ListStartedBetween(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.Internal("failed to list focus sessions")
	}

	active, err := s.store.Active(ctx, userID)
	if err != nil && err != repository.ErrNotFound {
		return nil, apperrors.Internal("failed to read active focus session")
	}

	return &TodayFocus{Sessions: sessions, Active: active}, nil
}
