package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"reclaim/backend/internal/model"
)

type UsageRepository struct {
	db *sql.DB
}

func NewUsageRepository(db *sql.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) GetByDate(ctx context.Context, userID, date string) (*model.UsageLog, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, date, apps, created_at, updated_at
		 FROM usage_logs
		 WHERE user_id = ? AND date = ?`,
		userID,
		date,
	)
	return scanUsageLog(row)
}

// Upsert writes the log's full app set keyed on (user_id, date). An
// existing row keeps its id and created_at; apps is replaced whole, so
// callers must merge before writing.
func (r *UsageRepository) Upsert(ctx context.Context, log *model.UsageLog) error {
	apps, err := json.Marshal(log.Apps)
	if err != nil {
		return fmt.Errorf("marshal apps: %w", err)
	}

	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO usage_logs (id, user_id, date, apps, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		     apps = excluded.apps,
		     updated_at = excluded.updated_at`,
		log.ID,
		log.UserID,
		log.Date,
		string(apps),
		log.CreatedAt.UTC().Format(time.RFC3339Nano),
		log.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert usage log: %w", err)
	}
	return nil
}

// ListRange returns logs with from <= date <= to, ascending by date.
func (r *UsageRepository) ListRange(ctx context.Context, userID, from, to string) ([]model.UsageLog, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, date, apps, created_at, updated_at
		 FROM usage_logs
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC`,
		userID,
		from,
		to,
	)
	if err != nil {
		return nil, fmt.Errorf("list usage logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.UsageLog, 0, 7)
	for rows.Next() {
		log, scanErr := scanUsageLog(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		logs = append(logs, *log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage logs: %w", err)
	}

	return logs, nil
}

// Latest returns the newest log by date, if any.
func (r *UsageRepository) Latest(ctx context.Context, userID string) (*model.UsageLog, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, date, apps, created_at, updated_at
		 FROM usage_logs
		 WHERE user_id = ?
		 ORDER BY date DESC
		 LIMIT 1`,
		userID,
	)
	return scanUsageLog(row)
}

func scanUsageLog(s scanner) (*model.UsageLog, error) {
	var log model.UsageLog
	var apps string
	var createdAt, updatedAt string
	err := s.Scan(
		&log.ID,
		&log.UserID,
		&log.Date,
		&apps,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan usage log: %w", err)
	}

	if err := json.Unmarshal([]byte(apps), &log.Apps); err != nil {
		return nil, fmt.Errorf("unmarshal apps: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse usage log created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse usage log updated_at: %w", err)
	}
	log.CreatedAt = parsedCreatedAt
	log.UpdatedAt = parsedUpdatedAt

	return &log, nil
}
