package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
	"github.com/house7784/golf-trip-app/scoring"
)

type ParticipantService interface {
	Join(ctx context.Context, eventID, userID int) (*models.EventParticipant, error)
	ListRoster(ctx context.Context, eventID int) ([]*models.EventParticipant, error)
	SetTeam(ctx context.Context, eventID, participantID, currentUserID int, teamID *int) (*models.EventParticipant, error)
	OverrideEventHandicap(ctx context.Context, eventID, participantID, currentUserID int, handicap *float64) (*models.EventParticipant, error)
	Remove(ctx context.Context, eventID, participantID, currentUserID int) error

	// AutoLockEventHandicaps snapshots the capped profile handicap of every
	// participant whose event enters the seven-day lock window. The write is
	// once-only per participant; organizer overrides stay untouched.
	AutoLockEventHandicaps(ctx context.Context, now time.Time) (int, error)
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	eventRepo       repositories.EventRepository
	teamRepo        repositories.TeamRepository
	logger          *slog.Logger
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	eventRepo repositories.EventRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		teamRepo:        teamRepo,
		logger:          logger,
	}
}

func (s *participantService) requireOrganizer(ctx context.Context, eventID, userID int) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event %d: %w", eventID, err)
	}
	if event.OrganizerID == userID {
		return nil
	}
	p, err := s.participantRepo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrOrganizerOnly
		}
		return fmt.Errorf("failed to check participant role: %w", err)
	}
	if p.Role != models.ParticipantRoleOrganizer {
		return ErrOrganizerOnly
	}
	return nil
}

func (s *participantService) findInEvent(ctx context.Context, eventID, participantID int) (*models.EventParticipant, error) {
	p, err := s.participantRepo.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant %d: %w", participantID, err)
	}
	if p.EventID != eventID {
		return nil, ErrParticipantNotFound
	}
	return p, nil
}

func (s *participantService) Join(ctx context.Context, eventID, userID int) (*models.EventParticipant, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event %d: %w", eventID, err)
	}

	p := &models.EventParticipant{
		EventID: eventID,
		UserID:  userID,
		Role:    models.ParticipantRolePlayer,
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantConflict):
			return nil, ErrAlreadyJoined
		case errors.Is(err, repositories.ErrParticipantInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to join event %d: %w", eventID, err)
	}
	return p, nil
}

func (s *participantService) ListRoster(ctx context.Context, eventID int) ([]*models.EventParticipant, error) {
	roster, err := s.participantRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster for event %d: %w", eventID, err)
	}
	return roster, nil
}

func (s *participantService) SetTeam(ctx context.Context, eventID, participantID, currentUserID int, teamID *int) (*models.EventParticipant, error) {
	if err := s.requireOrganizer(ctx, eventID, currentUserID); err != nil {
		return nil, err
	}
	p, err := s.findInEvent(ctx, eventID, participantID)
	if err != nil {
		return nil, err
	}

	if teamID != nil {
		team, err := s.teamRepo.FindByID(ctx, *teamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to find team %d: %w", *teamID, err)
		}
		if team.EventID != eventID {
			return nil, ErrTeamNotFound
		}
	}

	if err := s.participantRepo.SetTeam(ctx, participantID, teamID); err != nil {
		return nil, fmt.Errorf("failed to move participant %d: %w", participantID, err)
	}
	p.TeamID = teamID
	return p, nil
}

// OverrideEventHandicap pins (or with nil clears) the handicap used for this
// event, taking precedence over the automatic lock. The value is stored
// verbatim; the cap applies only to automatic snapshots.
func (s *participantService) OverrideEventHandicap(ctx context.Context, eventID, participantID, currentUserID int, handicap *float64) (*models.EventParticipant, error) {
	if err := s.requireOrganizer(ctx, eventID, currentUserID); err != nil {
		return nil, err
	}
	p, err := s.findInEvent(ctx, eventID, participantID)
	if err != nil {
		return nil, err
	}

	if handicap != nil && (math.IsNaN(*handicap) || math.IsInf(*handicap, 0)) {
		return nil, fmt.Errorf("%w: event handicap must be a finite number", ErrValidationFailed)
	}

	var lockedAt *time.Time
	if handicap != nil {
		now := time.Now()
		lockedAt = &now
	}
	if err := s.participantRepo.SetEventHandicap(ctx, participantID, handicap, lockedAt); err != nil {
		return nil, fmt.Errorf("failed to set event handicap for participant %d: %w", participantID, err)
	}
	p.EventHandicap = handicap
	p.HandicapLockedAt = lockedAt
	return p, nil
}

func (s *participantService) Remove(ctx context.Context, eventID, participantID, currentUserID int) error {
	p, err := s.findInEvent(ctx, eventID, participantID)
	if err != nil {
		return err
	}

	// Players may leave on their own; removing anyone else takes an organizer.
	if p.UserID != currentUserID {
		if err := s.requireOrganizer(ctx, eventID, currentUserID); err != nil {
			return err
		}
	}

	if err := s.participantRepo.Delete(ctx, participantID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to remove participant %d: %w", participantID, err)
	}
	return nil
}

func (s *participantService) AutoLockEventHandicaps(ctx context.Context, now time.Time) (int, error) {
	events, err := s.eventRepo.ListStartingWithin(ctx, 7)
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming events: %w", err)
	}

	locked := 0
	for _, event := range events {
		if !event.HandicapLockWindowOpen(now) {
			continue
		}
		roster, err := s.participantRepo.ListByEvent(ctx, event.ID)
		if err != nil {
			return locked, fmt.Errorf("failed to list roster for event %d: %w", event.ID, err)
		}
		for _, p := range roster {
			if p.EventHandicap != nil || p.User == nil {
				continue
			}
			value := scoring.ClampHandicap(p.User.HandicapIndex, event.HandicapCap)
			err := s.participantRepo.LockEventHandicap(ctx, p.ID, value, now)
			if err != nil {
				if errors.Is(err, repositories.ErrParticipantNotFound) {
					// Already locked or removed since listing; skip.
					continue
				}
				return locked, fmt.Errorf("failed to lock handicap for participant %d: %w", p.ID, err)
			}
			locked++
			s.logger.Info("event handicap locked",
				slog.Int("event_id", event.ID),
				slog.Int("participant_id", p.ID),
				slog.Float64("handicap", value))
		}
	}
	return locked, nil
}
