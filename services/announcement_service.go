package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/house7784/golf-trip-app/live"
	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
)

type AnnouncementService interface {
	Post(ctx context.Context, eventID, authorID int, message string) (*models.Announcement, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Announcement, error)
	Delete(ctx context.Context, announcementID, currentUserID int) error
}

type announcementService struct {
	announcementRepo repositories.AnnouncementRepository
	eventRepo        repositories.EventRepository
	participantRepo  repositories.ParticipantRepository
	hub              *live.Hub
}

func NewAnnouncementService(
	announcementRepo repositories.AnnouncementRepository,
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	hub *live.Hub,
) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		eventRepo:        eventRepo,
		participantRepo:  participantRepo,
		hub:              hub,
	}
}

func (s *announcementService) requireOrganizer(ctx context.Context, eventID, userID int) error {
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

func (s *announcementService) Post(ctx context.Context, eventID, authorID int, message string) (*models.Announcement, error) {
	if err := s.requireOrganizer(ctx, eventID, authorID); err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: announcement message is required", ErrValidationFailed)
	}

	announcement := &models.Announcement{
		EventID:  eventID,
		AuthorID: authorID,
		Message:  message,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementInvalid) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to post announcement: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(eventRoom(eventID), live.Message{
			Type:    live.MessageAnnouncementPosted,
			Payload: announcement,
		})
	}
	return announcement, nil
}

func (s *announcementService) ListByEvent(ctx context.Context, eventID int) ([]*models.Announcement, error) {
	announcements, err := s.announcementRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements for event %d: %w", eventID, err)
	}
	return announcements, nil
}

func (s *announcementService) Delete(ctx context.Context, announcementID, currentUserID int) error {
	announcement, err := s.announcementRepo.FindByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to find announcement %d: %w", announcementID, err)
	}
	if err := s.requireOrganizer(ctx, announcement.EventID, currentUserID); err != nil {
		return err
	}

	if err := s.announcementRepo.Delete(ctx, announcementID); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to delete announcement %d: %w", announcementID, err)
	}
	return nil
}
