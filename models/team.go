package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	EventID   int       `json:"event_id" db:"event_id"`
	Name      string    `json:"name" db:"name"`
	CaptainID *int      `json:"captain_id,omitempty" db:"captain_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Captain *User              `json:"captain,omitempty" db:"-"`
	Members []EventParticipant `json:"members,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
