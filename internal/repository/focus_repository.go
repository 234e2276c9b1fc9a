package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"reclaim/backend/internal/model"
)

type FocusRepository struct {
	db *sql.DB
}

func NewFocusRepository(db *sql.DB) *FocusRepository {
	return &FocusRepository{db: db}
}

func (r *FocusRepository) Insert(ctx context.Context, session *model.FocusSession) error {
	var endedAt interface{}
	if session.EndedAt != nil {
		endedAt = session.EndedAt.UTC().Format(time.RFC3339Nano)
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO focus_sessions (
			id, user_id, started_at, ended_at, duration_minutes, reclaimed_minutes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.StartedAt.UTC().Format(time.RFC3339Nano),
		endedAt,
		session.DurationMinutes,
		session.ReclaimedMinutes,
		session.CreatedAt.UTC().Format(time.RFC3339Nano),
		session.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert focus session: %w", err)
	}
	return nil
}

// GetByID loads a session by id scoped to its owner.
func (r *FocusRepository) GetByID(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, started_at, ended_at, duration_minutes, reclaimed_minutes,
		        created_at, updated_at
		 FROM focus_sessions
		 WHERE id = ? AND user_id = ?`,
		sessionID,
		userID,
	)
	return scanFocusSession(row)
}

func (r *FocusRepository) Update(ctx context.Context, session *model.FocusSession) error {
	var endedAt interface{}
	if session.EndedAt != nil {
		endedAt = session.EndedAt.UTC().Format(time.RFC3339Nano)
	}

	_, err := r.db.ExecContext(
		ctx,
		`UPDATE focus_sessions
		 SET ended_at = ?,
		     duration_minutes = ?,
		     reclaimed_minutes = ?,
		     updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		endedAt,
		session.DurationMinutes,
		session.ReclaimedMinutes,
		session.UpdatedAt.UTC().Format(time.RFC3339Nano),
		session.ID,
		session.UserID,
	)
	if err != nil {
		return fmt.Errorf("update focus session: %w", err)
	}
	return nil
}

// ListStartedBetween returns sessions with from <= started_at < to,
// ascending by start time.
func (r *FocusRepository) ListStartedBetween(ctx context.Context, userID string, from, to time.Time) ([]model.FocusSession, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, started_at, ended_at, duration_minutes, reclaimed_minutes,
		        created_at, updated_at
		 FROM focus_sessions
		 WHERE user_id = ? AND started_at >= ? AND started_at < ?
		 ORDER BY started_at ASC`,
		userID,
		from.UTC().Format(time.RFC3339Nano),
		to.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("list focus sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]model.FocusSession, 0, 8)
	for rows.Next() {
		session, scanErr := scanFocusSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate focus sessions: %w", err)
	}

	return sessions, nil
}

// Active returns the most recently started session without an end time.
func (r *FocusRepository) Active(ctx context.Context, userID string) (*model.FocusSession, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, started_at, ended_at, duration_minutes, reclaimed_minutes,
		        created_at, updated_at
		 FROM focus_sessions
		 WHERE user_id = ? AND ended_at IS NULL
		 ORDER BY started_at DESC
		 LIMIT 1`,
		userID,
	)
	return scanFocusSession(row)
}

func scanFocusSession(s scanner) (*model.FocusSession, error) {
	var session model.FocusSession
	var startedAt string
	var endedAt sql.NullString
	var createdAt, updatedAt string
	err := s.Scan(
		&session.ID,
		&session.UserID,
		&startedAt,
		&endedAt,
		&session.DurationMinutes,
		&session.ReclaimedMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan focus session: %w", err)
	}

	parsedStartedAt, err := parseTime(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse focus session started_at: %w", err)
	}
	session.StartedAt = parsedStartedAt

	if endedAt.Valid {
		parsedEndedAt, parseErr := parseTime(endedAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse focus session ended_at: %w", parseErr)
		}
		session.EndedAt = &parsedEndedAt
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse focus session created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse focus session updated_at: %w", err)
	}
	session.CreatedAt = parsedCreatedAt
	session.UpdatedAt = parsedUpdatedAt

	return &session, nil
}
