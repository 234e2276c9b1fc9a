package model

import "time"

// User is an account plus its onboarding preferences. The four preference
// fields are nil until onboarding completes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Goal         *string   `json:"goal"`
	Skill        *string   `json:"skill"`
	Inspiration  *string   `json:"inspiration"`
	Distraction  *string   `json:"distraction"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the preference slice of a User consumed by the
// recommendation engine.
type Profile struct {
	Goal        *string `json:"goal"`
	Skill       *string `json:"skill"`
	Inspiration *string `json:"inspiration"`
	Distraction *string `json:"distraction"`
}

func (u *User) Profile() Profile {
	return Profile{
		Goal:        u.Goal,
		Skill:       u.Skill,
		Inspiration: u.Inspiration,
		Distraction: u.Distraction,
	}
}
