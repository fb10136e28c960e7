package models

import "time"

// TeeTime is a four-player starting group within a round. Slots 1-2 form
// side A, slots 3-4 side B; the two sides also act as the ad-hoc scoring
// pairs on the current-day leaderboard.
type TeeTime struct {
	ID        int       `json:"id" db:"id"`
	RoundID   int       `json:"round_id" db:"round_id"`
	Time      string    `json:"time" db:"time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Pairings []Pairing `json:"pairings,omitempty" db:"-"`
}

// Pairing is one of the four slots of a tee time. PlayerID is nil while
// the slot is open.
type Pairing struct {
	ID         int  `json:"id" db:"id"`
	TeeTimeID  int  `json:"tee_time_id" db:"tee_time_id"`
	SlotNumber int  `json:"slot_number" db:"slot_number"`
	PlayerID   *int `json:"player_id,omitempty" db:"player_id"`

	Player *User `json:"player,omitempty" db:"-"`
}
