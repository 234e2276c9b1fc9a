package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"reclaim/backend/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO users (id, email, password_hash, goal, skill, inspiration, distraction, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		nullableString(user.Goal),
		nullableString(user.Skill),
		nullableString(user.Inspiration),
		nullableString(user.Distraction),
		user.CreatedAt.UTC().Format(time.RFC3339Nano),
		user.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash, goal, skill, inspiration, distraction, created_at, updated_at
		 FROM users
		 WHERE email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash, goal, skill, inspiration, distraction, created_at, updated_at
		 FROM users
		 WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

// UpdatePreferences writes the onboarding preference fields. Nil values
// clear the corresponding column.
func (r *UserRepository) UpdatePreferences(ctx context.Context, user *model.User) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE users
		 SET goal = ?, skill = ?, inspiration = ?, distraction = ?, updated_at = ?
		 WHERE id = ?`,
		nullableString(user.Goal),
		nullableString(user.Skill),
		nullableString(user.Inspiration),
		nullableString(user.Distraction),
		user.UpdatedAt.UTC().Format(time.RFC3339Nano),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(s scanner) (*model.User, error) {
	var user model.User
	var goal, skill, inspiration, distraction sql.NullString
	var createdAt, updatedAt string
	err := s.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&goal,
		&skill,
		&inspiration,
		&distraction,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	user.Goal = stringPtr(goal)
	user.Skill = stringPtr(skill)
	user.Inspiration = stringPtr(inspiration)
	user.Distraction = stringPtr(distraction)

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse user created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse user updated_at: %w", err)
	}
	user.CreatedAt = parsedCreatedAt
	user.UpdatedAt = parsedUpdatedAt

	return &user, nil
}

func nullableString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
