package model

import "time"

// FocusSession is one timed distraction-free interval. EndedAt is nil while
// the session is in progress; DurationMinutes and ReclaimedMinutes are
// computed once on end and the row is immutable afterward.
type FocusSession struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	StartedAt        time.Time  `json:"startedAt"`
	EndedAt          *time.Time `json:"endedAt,omitempty"`
	DurationMinutes  int        `json:"duration"`
	ReclaimedMinutes int        `json:"reclaimed"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
