package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEventNameRequired     = errors.New("event name is required")
	ErrEventInvalidDateRange = errors.New("event end date must be on or after start date")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrInvalidGameMode       = errors.New("unknown game mode key")
	ErrInvalidCourseData     = errors.New("course hole data is invalid")
	ErrInvalidHandicapCap    = errors.New("handicap cap must not be negative")
	ErrInvalidHandicapPolicy = errors.New("unknown handicap allocation policy")
	ErrInvalidHoleScore      = errors.New("hole number or stroke count out of range")
	ErrScoringLocked         = errors.New("scoring is locked for this round")
	ErrInviteExpired         = errors.New("invite has expired")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")
	ErrAlreadyJoined        = errors.New("user has already joined this event")
	ErrRoundDateOutOfRange  = errors.New("round date falls outside the event dates")

	// Authentication and authorization
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrOrganizerOnly          = errors.New("only an event organizer can perform this action")

	// Entity-specific not-founds, mapped straight from the repositories
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrParticipantNotFound  = errors.New("event participant not found")
	ErrRoundNotFound        = errors.New("round not found")
	ErrScoreCardNotFound    = errors.New("scorecard not found")
	ErrTeeTimeNotFound      = errors.New("tee time not found")
	ErrPairingSlotNotFound  = errors.New("pairing slot not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInviteNotFound       = errors.New("invite not found")
)
