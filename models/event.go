package models

import "time"

// HandicapPolicy selects how handicap strokes are spread across the course.
// Values map one-to-one onto scoring.AllocationPolicy.
type HandicapPolicy string

const (
	HandicapPolicyStandard HandicapPolicy = "standard"
	HandicapPolicyPar3     HandicapPolicy = "par3_first"
)

// Event is a multi-day golf competition.
type Event struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Location    *string   `json:"location,omitempty" db:"location"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	OrganizerID int       `json:"organizer_id" db:"organizer_id"`

	// HandicapCap caps the profile handicap when an event handicap is
	// locked in. Nil means uncapped.
	HandicapCap       *float64       `json:"handicap_cap,omitempty" db:"handicap_cap"`
	HandicapPolicy    HandicapPolicy `json:"handicap_policy" db:"handicap_policy"`
	LeaderboardActive bool           `json:"leaderboard_active" db:"leaderboard_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	LogoKey   *string   `json:"-" db:"logo_key"`
	LogoURL   *string   `json:"logo_url,omitempty" db:"-"`

	Organizer    *User              `json:"organizer,omitempty" db:"-"`
	Participants []EventParticipant `json:"participants,omitempty" db:"-"`
	Teams        []Team             `json:"teams,omitempty" db:"-"`
	Rounds       []Round            `json:"rounds,omitempty" db:"-"`
}

// HandicapLockWindowOpen reports whether automatic event-handicap locking
// may run: from seven days before the event start date onward.
func (e *Event) HandicapLockWindowOpen(now time.Time) bool {
	if e.StartDate.IsZero() {
		return false
	}
	lockStart := e.StartDate.AddDate(0, 0, -7)
	return !now.Before(lockStart)
}
