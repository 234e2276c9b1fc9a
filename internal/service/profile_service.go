package service

import (
	"context"
	"strings"
	"time"

	apperrors "reclaim/backend/internal/errors"
	"reclaim/backend/internal/model"
	"reclaim/backend/internal/repository"
)

type ProfileService struct {
	store ProfileStore
	now   func() time.Time
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store, now: time.Now}
}

// PreferencesInput carries the onboarding answers. Empty or blank strings
// are stored as null.
type PreferencesInput struct {
	Goal        string
	Skill       string
	Inspiration string
	Distraction string
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.User, *apperrors.APIError) {
	user, err := s.store.GetByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("user_not_found", "user profile not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read user profile")
	}
	return user, nil
}

func (s *ProfileService) UpdatePreferences(ctx context.Context, userID string, input PreferencesInput) (*model.User, *apperrors.APIError) {
	user, err := s.store.GetByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("user_not_found", "user profile not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read user profile")
	}

	user.Goal = blankToNil(input.Goal)
	user.Skill = blankToNil(input.Skill)
	user.Inspiration = blankToNil(input.Inspiration)
	user.Distraction = blankToNil(input.Distraction)
	user.UpdatedAt = s.now().UTC()

	if err := s.store.UpdatePreferences(ctx, user); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("user_not_found", "user profile not found")
		}
		return nil, apperrors.Internal("failed to update user profile")
	}
	return user, nil
}

func blankToNil(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
