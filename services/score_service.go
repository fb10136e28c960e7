package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/house7784/golf-trip-app/live"
	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
)

// maxStrokesPerHole guards against fat-fingered entries; nobody needs more.
const maxStrokesPerHole = 30

type ScoreService interface {
	// UpsertScores replaces the target player's scorecard for the round.
	// Players edit their own card; organizers may edit anyone's.
	UpsertScores(ctx context.Context, roundID, currentUserID, targetUserID int, holeScores map[int]int) (*models.ScoreCard, error)
	GetScoreCard(ctx context.Context, roundID, userID int) (*models.ScoreCard, error)
	ListByRound(ctx context.Context, roundID int) ([]*models.ScoreCard, error)
}

type scoreService struct {
	scoreRepo       repositories.ScoreRepository
	roundRepo       repositories.RoundRepository
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
	hub             *live.Hub
}

func NewScoreService(
	scoreRepo repositories.ScoreRepository,
	roundRepo repositories.RoundRepository,
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	hub *live.Hub,
) ScoreService {
	return &scoreService{
		scoreRepo:       scoreRepo,
		roundRepo:       roundRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		hub:             hub,
	}
}

func (s *scoreService) isOrganizer(ctx context.Context, eventID, userID int) (bool, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("failed to find event %d: %w", eventID, err)
	}
	if event.OrganizerID == userID {
		return true, nil
	}
	p, err := s.participantRepo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check participant role: %w", err)
	}
	return p.Role == models.ParticipantRoleOrganizer, nil
}

func validateHoleScores(holeScores map[int]int) error {
	for hole, gross := range holeScores {
		if hole < 1 || hole > 18 {
			return fmt.Errorf("%w: hole %d", ErrInvalidHoleScore, hole)
		}
		if gross < 1 || gross > maxStrokesPerHole {
			return fmt.Errorf("%w: %d strokes on hole %d", ErrInvalidHoleScore, gross, hole)
		}
	}
	return nil
}

func (s *scoreService) UpsertScores(ctx context.Context, roundID, currentUserID, targetUserID int, holeScores map[int]int) (*models.ScoreCard, error) {
	round, err := s.roundRepo.FindByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to find round %d: %w", roundID, err)
	}
	if round.ScoringLocked {
		return nil, ErrScoringLocked
	}

	if currentUserID != targetUserID {
		organizer, err := s.isOrganizer(ctx, round.EventID, currentUserID)
		if err != nil {
			return nil, err
		}
		if !organizer {
			return nil, ErrForbiddenOperation
		}
	}

	// The target must actually play this event.
	if _, err := s.participantRepo.FindByEventAndUser(ctx, round.EventID, targetUserID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}

	if err := validateHoleScores(holeScores); err != nil {
		return nil, err
	}

	card := &models.ScoreCard{
		RoundID:    roundID,
		UserID:     targetUserID,
		HoleScores: holeScores,
	}
	if err := s.scoreRepo.Upsert(ctx, card); err != nil {
		if errors.Is(err, repositories.ErrScoreCardInvalid) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to save scorecard: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(eventRoom(round.EventID), live.Message{
			Type: live.MessageStandingsUpdated,
			Payload: map[string]any{
				"event_id": round.EventID,
				"round_id": roundID,
				"user_id":  targetUserID,
			},
		})
	}
	return card, nil
}

func (s *scoreService) GetScoreCard(ctx context.Context, roundID, userID int) (*models.ScoreCard, error) {
	card, err := s.scoreRepo.FindByRoundAndUser(ctx, roundID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreCardNotFound) {
			return nil, ErrScoreCardNotFound
		}
		return nil, fmt.Errorf("failed to find scorecard: %w", err)
	}
	return card, nil
}

func (s *scoreService) ListByRound(ctx context.Context, roundID int) ([]*models.ScoreCard, error) {
	cards, err := s.scoreRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecards for round %d: %w", roundID, err)
	}
	return cards, nil
}
