package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
	"github.com/house7784/golf-trip-app/storage"
)

type TeamService interface {
	Create(ctx context.Context, eventID, currentUserID int, input CreateTeamInput) (*models.Team, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Team, error)
	Rename(ctx context.Context, teamID, currentUserID int, name string) (*models.Team, error)
	// SetCaptain assigns (or with nil clears) the team captain. The captain
	// must be a member of the team.
	SetCaptain(ctx context.Context, teamID, currentUserID int, captainID *int) (*models.Team, error)
	UploadLogo(ctx context.Context, teamID, currentUserID int, contentType string, file io.Reader) (*models.Team, error)
	Delete(ctx context.Context, teamID, currentUserID int) error
}

type CreateTeamInput struct {
	Name      string `json:"name"`
	CaptainID *int   `json:"captain_id"`
}

type teamService struct {
	teamRepo        repositories.TeamRepository
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
	uploader        storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:        teamRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		uploader:        uploader,
	}
}

func (s *teamService) requireEventOrganizer(ctx context.Context, eventID, userID int) error {
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

func (s *teamService) populateLogoURL(team *models.Team) {
	if team.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}

func (s *teamService) Create(ctx context.Context, eventID, currentUserID int, input CreateTeamInput) (*models.Team, error) {
	if err := s.requireEventOrganizer(ctx, eventID, currentUserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		EventID:   eventID,
		Name:      name,
		CaptainID: input.CaptainID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) ListByEvent(ctx context.Context, eventID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for event %d: %w", eventID, err)
	}
	for _, team := range teams {
		s.populateLogoURL(team)
	}
	return teams, nil
}

func (s *teamService) Rename(ctx context.Context, teamID, currentUserID int, name string) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team %d: %w", teamID, err)
	}
	if err := s.requireEventOrganizer(ctx, team.EventID, currentUserID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team.Name = name

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to rename team %d: %w", teamID, err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) SetCaptain(ctx context.Context, teamID, currentUserID int, captainID *int) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team %d: %w", teamID, err)
	}
	if err := s.requireEventOrganizer(ctx, team.EventID, currentUserID); err != nil {
		return nil, err
	}

	if captainID != nil {
		p, err := s.participantRepo.FindByEventAndUser(ctx, team.EventID, *captainID)
		if err != nil {
			if errors.Is(err, repositories.ErrParticipantNotFound) {
				return nil, ErrParticipantNotFound
			}
			return nil, fmt.Errorf("failed to check captain membership: %w", err)
		}
		if p.TeamID == nil || *p.TeamID != teamID {
			return nil, fmt.Errorf("%w: captain must belong to the team", ErrValidationFailed)
		}
	}
	team.CaptainID = captainID

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to set captain for team %d: %w", teamID, err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID, currentUserID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team %d: %w", teamID, err)
	}
	if err := s.requireEventOrganizer(ctx, team.EventID, currentUserID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo", teamID)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", teamID, err)
	}

	team.LogoKey = &key
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to save logo key for team %d: %w", teamID, err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, teamID, currentUserID int) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team %d: %w", teamID, err)
	}
	if err := s.requireEventOrganizer(ctx, team.EventID, currentUserID); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", teamID, err)
	}
	return nil
}
