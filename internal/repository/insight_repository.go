package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"reclaim/backend/internal/model"
)

type InsightRepository struct {
	db *sql.DB
}

func NewInsightRepository(db *sql.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

// Upsert stores the record's payload keyed on (user_id, date). Repeated
// generation runs for the same day overwrite the previous payload.
func (r *InsightRepository) Upsert(ctx context.Context, record *model.InsightRecord) error {
	payload, err := json.Marshal(record.Data)
	if err != nil {
		return fmt.Errorf("marshal insight payload: %w", err)
	}

	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO insights (id, user_id, date, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		     payload = excluded.payload,
		     updated_at = excluded.updated_at`,
		record.ID,
		record.UserID,
		record.Date,
		string(payload),
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		record.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert insight: %w", err)
	}
	return nil
}

func (r *InsightRepository) GetByDate(ctx context.Context, userID, date string) (*model.InsightRecord, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, date, payload, created_at, updated_at
		 FROM insights
		 WHERE user_id = ? AND date = ?`,
		userID,
		date,
	)
	return scanInsightRecord(row)
}

// Latest returns the newest record by date, if any.
func (r *InsightRepository) Latest(ctx context.Context, userID string) (*model.InsightRecord, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, date, payload, created_at, updated_at
		 FROM insights
		 WHERE user_id = ?
		 ORDER BY date DESC
		 LIMIT 1`,
		userID,
	)
	return scanInsightRecord(row)
}

func scanInsightRecord(s scanner) (*model.InsightRecord, error) {
	var record model.InsightRecord
	var payload string
	var createdAt, updatedAt string
	err := s.Scan(
		&record.ID,
		&record.UserID,
		&record.Date,
		&payload,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan insight: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &record.Data); err != nil {
		return nil, fmt.Errorf("unmarshal insight payload: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse insight created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse insight updated_at: %w", err)
	}
	record.CreatedAt = parsedCreatedAt
	record.UpdatedAt = parsedUpdatedAt

	return &record, nil
}
