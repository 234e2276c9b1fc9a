package model

import "time"

// Suggestion is one actionable recommendation.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// InsightData is the payload produced by one insight-generation run.
// Summary and Nudges are filled by the local heuristic path; the remote
// provider path supplies suggestions only.
type InsightData struct {
	Summary     string       `json:"summary,omitempty"`
	Nudges      []string     `json:"nudges,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// InsightRecord is the stored insight for one user and one calendar day.
// At most one record exists per (userId, date).
type InsightRecord struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Date      string      `json:"date"`
	Data      InsightData `json:"data"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
