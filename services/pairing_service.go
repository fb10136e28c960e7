package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/house7784/golf-trip-app/live"
	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
	"github.com/house7784/golf-trip-app/scoring"
)

type PairingService interface {
	CreateTeeTime(ctx context.Context, roundID, currentUserID int, teeTime string) (*models.TeeTime, error)
	ListTeeTimes(ctx context.Context, roundID int) ([]*models.TeeTime, error)
	DeleteTeeTime(ctx context.Context, teeTimeID, currentUserID int) error

	// AssignSlot places a player into (or with nil clears) a tee-time slot,
	// enforcing the team-fairness rules. A refused assignment surfaces as a
	// *scoring.PairingError and changes nothing.
	AssignSlot(ctx context.Context, teeTimeID, slotNumber int, playerID *int, currentUserID int) (*models.TeeTime, error)
}

type pairingService struct {
	teeTimeRepo     repositories.TeeTimeRepository
	roundRepo       repositories.RoundRepository
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
	teamRepo        repositories.TeamRepository
	hub             *live.Hub
}

func NewPairingService(
	teeTimeRepo repositories.TeeTimeRepository,
	roundRepo repositories.RoundRepository,
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	teamRepo repositories.TeamRepository,
	hub *live.Hub,
) PairingService {
	return &pairingService{
		teeTimeRepo:     teeTimeRepo,
		roundRepo:       roundRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		teamRepo:        teamRepo,
		hub:             hub,
	}
}

func (s *pairingService) requireOrganizer(ctx context.Context, eventID, userID int) error {
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

func (s *pairingService) findRound(ctx context.Context, roundID int) (*models.Round, error) {
	round, err := s.roundRepo.FindByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to find round %d: %w", roundID, err)
	}
	return round, nil
}

func (s *pairingService) CreateTeeTime(ctx context.Context, roundID, currentUserID int, teeTime string) (*models.TeeTime, error) {
	round, err := s.findRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrganizer(ctx, round.EventID, currentUserID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(teeTime) == "" {
		return nil, fmt.Errorf("%w: tee time is required", ErrValidationFailed)
	}

	tt := &models.TeeTime{RoundID: roundID, Time: teeTime}
	if err := s.teeTimeRepo.Create(ctx, tt); err != nil {
		if errors.Is(err, repositories.ErrTeeTimeInvalid) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to create tee time: %w", err)
	}
	return tt, nil
}

func (s *pairingService) ListTeeTimes(ctx context.Context, roundID int) ([]*models.TeeTime, error) {
	teeTimes, err := s.teeTimeRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tee times for round %d: %w", roundID, err)
	}
	return teeTimes, nil
}

func (s *pairingService) DeleteTeeTime(ctx context.Context, teeTimeID, currentUserID int) error {
	teeTime, err := s.teeTimeRepo.FindByID(ctx, teeTimeID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeeTimeNotFound) {
			return ErrTeeTimeNotFound
		}
		return fmt.Errorf("failed to find tee time %d: %w", teeTimeID, err)
	}
	round, err := s.findRound(ctx, teeTime.RoundID)
	if err != nil {
		return err
	}
	if err := s.requireOrganizer(ctx, round.EventID, currentUserID); err != nil {
		return err
	}

	if err := s.teeTimeRepo.Delete(ctx, teeTimeID); err != nil {
		if errors.Is(err, repositories.ErrTeeTimeNotFound) {
			return ErrTeeTimeNotFound
		}
		return fmt.Errorf("failed to delete tee time %d: %w", teeTimeID, err)
	}
	return nil
}

func (s *pairingService) AssignSlot(ctx context.Context, teeTimeID, slotNumber int, playerID *int, currentUserID int) (*models.TeeTime, error) {
	teeTime, err := s.teeTimeRepo.FindByID(ctx, teeTimeID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeeTimeNotFound) {
			return nil, ErrTeeTimeNotFound
		}
		return nil, fmt.Errorf("failed to find tee time %d: %w", teeTimeID, err)
	}
	round, err := s.findRound(ctx, teeTime.RoundID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrganizer(ctx, round.EventID, currentUserID); err != nil {
		return nil, err
	}

	if playerID != nil {
		if _, err := s.participantRepo.FindByEventAndUser(ctx, round.EventID, *playerID); err != nil {
			if errors.Is(err, repositories.ErrParticipantNotFound) {
				return nil, ErrParticipantNotFound
			}
			return nil, fmt.Errorf("failed to check participant: %w", err)
		}
	}

	check, err := s.buildCheck(ctx, round.EventID, teeTime, slotNumber, playerID)
	if err != nil {
		return nil, err
	}
	if err := scoring.ValidateAssignment(check); err != nil {
		return nil, err
	}

	if err := s.teeTimeRepo.SetPairingPlayer(ctx, teeTimeID, slotNumber, playerID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPairingNotFound):
			return nil, ErrPairingSlotNotFound
		case errors.Is(err, repositories.ErrPairingInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update pairing: %w", err)
	}

	updated, err := s.teeTimeRepo.FindByID(ctx, teeTimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload tee time %d: %w", teeTimeID, err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(eventRoom(round.EventID), live.Message{
			Type: live.MessagePairingsUpdated,
			Payload: map[string]any{
				"event_id":    round.EventID,
				"round_id":    round.ID,
				"tee_time_id": teeTimeID,
			},
		})
	}
	return updated, nil
}

// buildCheck assembles the occupancy snapshot the fairness check runs over.
func (s *pairingService) buildCheck(ctx context.Context, eventID int, teeTime *models.TeeTime, slotNumber int, playerID *int) (scoring.AssignmentCheck, error) {
	roster, err := s.participantRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return scoring.AssignmentCheck{}, fmt.Errorf("failed to list roster for event %d: %w", eventID, err)
	}
	teamCount, err := s.teamRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return scoring.AssignmentCheck{}, fmt.Errorf("failed to count teams for event %d: %w", eventID, err)
	}

	teamByPlayer := make(map[int]int, len(roster))
	for _, p := range roster {
		if p.TeamID != nil {
			teamByPlayer[p.UserID] = *p.TeamID
		}
	}

	slots := make(map[int]int, len(teeTime.Pairings))
	for _, pairing := range teeTime.Pairings {
		if pairing.PlayerID != nil {
			slots[pairing.SlotNumber] = *pairing.PlayerID
		}
	}

	return scoring.AssignmentCheck{
		Slots:        slots,
		TeamByPlayer: teamByPlayer,
		TeamCount:    teamCount,
		SlotNumber:   slotNumber,
		PlayerID:     playerID,
	}, nil
}
