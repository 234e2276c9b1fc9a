package model

import "time"

// DateLayout is the calendar-day key used by usage logs and insights.
// Days are the server's current UTC date; there are no finer time zone
// semantics.
const DateLayout = "2006-01-02"

// AppUsage is minutes spent in one named application.
type AppUsage struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

// UsageLog is the single record for one user and one calendar day.
// App names are unique within Apps; repeated submissions accumulate
// minutes per name.
type UsageLog struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Date      string     `json:"date"`
	Apps      []AppUsage `json:"apps"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TotalMinutes sums minutes across all apps in the log.
func (l *UsageLog) TotalMinutes() int {
	total := 0
	for _, app := range l.Apps {
		total += app.Minutes
	}
	return total
}
