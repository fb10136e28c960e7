package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/house7784/golf-trip-app/live"
	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
	"github.com/house7784/golf-trip-app/storage"
)

type EventService interface {
	Create(ctx context.Context, creatorID int, input CreateEventInput) (*models.Event, error)
	GetByID(ctx context.Context, id int) (*models.Event, error)
	ListForUser(ctx context.Context, userID int) ([]*models.Event, error)
	Update(ctx context.Context, eventID, currentUserID int, input UpdateEventInput) (*models.Event, error)
	SetLeaderboardActive(ctx context.Context, eventID, currentUserID int, active bool) error
	UpdateHandicapSettings(ctx context.Context, eventID, currentUserID int, input HandicapSettingsInput) (*models.Event, error)
	UploadLogo(ctx context.Context, eventID, currentUserID int, contentType string, file io.Reader) (*models.Event, error)
	Delete(ctx context.Context, eventID, currentUserID int) error
}

type CreateEventInput struct {
	Name      string    `json:"name"`
	Location  *string   `json:"location"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type UpdateEventInput struct {
	Name      *string    `json:"name"`
	Location  *string    `json:"location"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type HandicapSettingsInput struct {
	Cap    *float64 `json:"cap"`
	Policy string   `json:"policy"`
}

type eventService struct {
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
	uploader        storage.FileUploader
	hub             *live.Hub
}

func NewEventService(
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	uploader storage.FileUploader,
	hub *live.Hub,
) EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		uploader:        uploader,
		hub:             hub,
	}
}

// eventRoom is the websocket room key shared by every live update of an event.
func eventRoom(eventID int) string {
	return fmt.Sprintf("event:%d", eventID)
}

func (s *eventService) requireOrganizer(ctx context.Context, event *models.Event, userID int) error {
	if event.OrganizerID == userID {
		return nil
	}
	p, err := s.participantRepo.FindByEventAndUser(ctx, event.ID, userID)
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

func (s *eventService) populateLogoURL(event *models.Event) {
	if event.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*event.LogoKey)
		event.LogoURL = &url
	}
}

func (s *eventService) Create(ctx context.Context, creatorID int, input CreateEventInput) (*models.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEventNameRequired
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrEventInvalidDateRange
	}

	event := &models.Event{
		Name:           name,
		Location:       input.Location,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		OrganizerID:    creatorID,
		HandicapPolicy: models.HandicapPolicyStandard,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	// The creator joins their own event as organizer right away.
	participant := &models.EventParticipant{
		EventID: event.ID,
		UserID:  creatorID,
		Role:    models.ParticipantRoleOrganizer,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to register organizer for event %d: %w", event.ID, err)
	}

	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event %d: %w", id, err)
	}
	s.populateLogoURL(event)
	return event, nil
}

func (s *eventService) ListForUser(ctx context.Context, userID int) ([]*models.Event, error) {
	events, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for user %d: %w", userID, err)
	}
	for _, event := range events {
		s.populateLogoURL(event)
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, eventID, currentUserID int, input UpdateEventInput) (*models.Event, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrganizer(ctx, event, currentUserID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrEventNameRequired
		}
		event.Name = name
	}
	if input.Location != nil {
		event.Location = input.Location
	}
	if input.StartDate != nil {
		event.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = *input.EndDate
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, ErrEventInvalidDateRange
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event %d: %w", eventID, err)
	}
	return event, nil
}

func (s *eventService) SetLeaderboardActive(ctx context.Context, eventID, currentUserID int, active bool) error {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.requireOrganizer(ctx, event, currentUserID); err != nil {
		return err
	}

	if err := s.eventRepo.SetLeaderboardActive(ctx, eventID, active); err != nil {
		return fmt.Errorf("failed to toggle leaderboard for event %d: %w", eventID, err)
	}

	if s.hub != nil {
		msgType := live.MessageLeaderboardVisible
		if !active {
			msgType = live.MessageLeaderboardHidden
		}
		s.hub.BroadcastToRoom(eventRoom(eventID), live.Message{
			Type:    msgType,
			Payload: map[string]any{"event_id": eventID, "active": active},
		})
	}
	return nil
}

func (s *eventService) UpdateHandicapSettings(ctx context.Context, eventID, currentUserID int, input HandicapSettingsInput) (*models.Event, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrganizer(ctx, event, currentUserID); err != nil {
		return nil, err
	}

	if input.Cap != nil && *input.Cap < 0 {
		return nil, ErrInvalidHandicapCap
	}
	policy := models.HandicapPolicy(input.Policy)
	if policy != models.HandicapPolicyStandard && policy != models.HandicapPolicyPar3 {
		return nil, ErrInvalidHandicapPolicy
	}

	if err := s.eventRepo.UpdateHandicapSettings(ctx, eventID, input.Cap, policy); err != nil {
		return nil, fmt.Errorf("failed to update handicap settings for event %d: %w", eventID, err)
	}

	event.HandicapCap = input.Cap
	event.HandicapPolicy = policy
	return event, nil
}

func (s *eventService) UploadLogo(ctx context.Context, eventID, currentUserID int, contentType string, file io.Reader) (*models.Event, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrganizer(ctx, event, currentUserID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("events/%d/logo", eventID)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload logo for event %d: %w", eventID, err)
	}

	event.LogoKey = &key
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save logo key for event %d: %w", eventID, err)
	}
	s.populateLogoURL(event)
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, currentUserID int) error {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != currentUserID {
		return ErrOrganizerOnly
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}
	return nil
}
