package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
)

const (
	inviteTokenLength = 16 // bytes, 32 hex characters
	inviteDuration    = 7 * 24 * time.Hour
)

var ErrInviteTokenGeneration = errors.New("failed to generate unique invite token")

type InviteService interface {
	// CreateInvite mints a shareable join link token for the event.
	CreateInvite(ctx context.Context, eventID, currentUserID int) (*models.Invite, error)
	// AcceptInvite joins the current user to the invite's event.
	AcceptInvite(ctx context.Context, token string, currentUserID int) (*models.EventParticipant, error)
}

type inviteService struct {
	inviteRepo         repositories.InviteRepository
	eventRepo          repositories.EventRepository
	participantRepo    repositories.ParticipantRepository
	participantService ParticipantService
}

func NewInviteService(
	inviteRepo repositories.InviteRepository,
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	participantService ParticipantService,
) InviteService {
	return &inviteService{
		inviteRepo:         inviteRepo,
		eventRepo:          eventRepo,
		participantRepo:    participantRepo,
		participantService: participantService,
	}
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *inviteService) CreateInvite(ctx context.Context, eventID, currentUserID int) (*models.Invite, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event %d: %w", eventID, err)
	}

	if event.OrganizerID != currentUserID {
		p, err := s.participantRepo.FindByEventAndUser(ctx, eventID, currentUserID)
		if err != nil || p.Role != models.ParticipantRoleOrganizer {
			return nil, ErrOrganizerOnly
		}
	}

	// Retry on the (vanishingly unlikely) token collision.
	for attempt := 0; attempt < 3; attempt++ {
		token, err := generateSecureToken(inviteTokenLength)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInviteTokenGeneration, err)
		}
		invite := &models.Invite{
			EventID:   eventID,
			Token:     token,
			ExpiresAt: time.Now().Add(inviteDuration),
		}
		err = s.inviteRepo.Create(ctx, invite)
		if err == nil {
			return invite, nil
		}
		if !errors.Is(err, repositories.ErrInviteTokenConflict) {
			return nil, fmt.Errorf("failed to create invite: %w", err)
		}
	}
	return nil, ErrInviteTokenGeneration
}

func (s *inviteService) AcceptInvite(ctx context.Context, token string, currentUserID int) (*models.EventParticipant, error) {
	invite, err := s.inviteRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteExpired
	}
	return s.participantService.Join(ctx, invite.EventID, currentUserID)
}
