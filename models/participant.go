package models

import "time"

type ParticipantRole string

const (
	ParticipantRoleOrganizer ParticipantRole = "organizer"
	ParticipantRolePlayer    ParticipantRole = "player"
)

// EventParticipant links a user to an event together with the handicap
// state used for scoring. EventHandicap is written once by the automatic
// lock sweep, or overridden at any time by an organizer; while it is nil
// the capped profile handicap applies.
type EventParticipant struct {
	ID               int             `json:"id" db:"id"`
	EventID          int             `json:"event_id" db:"event_id"`
	UserID           int             `json:"user_id" db:"user_id"`
	TeamID           *int            `json:"team_id,omitempty" db:"team_id"`
	Role             ParticipantRole `json:"role" db:"role"`
	EventHandicap    *float64        `json:"event_handicap,omitempty" db:"event_handicap"`
	HandicapLockedAt *time.Time      `json:"handicap_locked_at,omitempty" db:"handicap_locked_at"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
	Team *Team `json:"team,omitempty" db:"-"`
}
