package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
)

type RoundService interface {
	// UpsertByDate creates the round for the given competition day, or
	// switches its game mode if the day is already scheduled.
	UpsertByDate(ctx context.Context, eventID, currentUserID int, input UpsertRoundInput) (*models.Round, error)
	GetByID(ctx context.Context, roundID int) (*models.Round, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Round, error)
	SetCourse(ctx context.Context, roundID, currentUserID int, input CourseInput) (*models.Round, error)
	SetScoringLocked(ctx context.Context, roundID, currentUserID int, locked bool) (*models.Round, error)
	Delete(ctx context.Context, roundID, currentUserID int) error
	ListGameModes() []models.GameMode
}

type UpsertRoundInput struct {
	Date    time.Time `json:"date"`
	ModeKey string    `json:"mode_key"`
}

type CourseInput struct {
	CourseName string              `json:"course_name"`
	Holes      []models.CourseHole `json:"holes"`
}

type roundService struct {
	roundRepo       repositories.RoundRepository
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
}

func NewRoundService(
	roundRepo repositories.RoundRepository,
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
) RoundService {
	return &roundService{
		roundRepo:       roundRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
	}
}

func (s *roundService) requireOrganizer(ctx context.Context, eventID, userID int) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event %d: %w", eventID, err)
	}
	if event.OrganizerID == userID {
		return event, nil
	}
	p, err := s.participantRepo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrOrganizerOnly
		}
		return nil, fmt.Errorf("failed to check participant role: %w", err)
	}
	if p.Role != models.ParticipantRoleOrganizer {
		return nil, ErrOrganizerOnly
	}
	return event, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// startOfDay pins the timestamp's calendar day to UTC midnight. The day
// is read in the timestamp's own location, so zoned input near midnight
// stays on its own day, and stored round dates compare as calendar days.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (s *roundService) UpsertByDate(ctx context.Context, eventID, currentUserID int, input UpsertRoundInput) (*models.Round, error) {
	event, err := s.requireOrganizer(ctx, eventID, currentUserID)
	if err != nil {
		return nil, err
	}
	if !models.ValidGameMode(input.ModeKey) {
		return nil, ErrInvalidGameMode
	}

	day := startOfDay(input.Date)
	start := startOfDay(event.StartDate)
	end := startOfDay(event.EndDate)
	if day.Before(start) || day.After(end) {
		return nil, ErrRoundDateOutOfRange
	}

	round := &models.Round{
		EventID: eventID,
		Date:    day,
		ModeKey: input.ModeKey,
	}
	if err := s.roundRepo.UpsertByDate(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to upsert round for event %d: %w", eventID, err)
	}
	return round, nil
}

func (s *roundService) GetByID(ctx context.Context, roundID int) (*models.Round, error) {
	round, err := s.roundRepo.FindByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to find round %d: %w", roundID, err)
	}
	course, err := round.ParseCourse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse course for round %d: %w", roundID, err)
	}
	round.Course = course
	return round, nil
}

func (s *roundService) ListByEvent(ctx context.Context, eventID int) ([]*models.Round, error) {
	rounds, err := s.roundRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds for event %d: %w", eventID, err)
	}
	for _, round := range rounds {
		course, err := round.ParseCourse()
		if err != nil {
			return nil, fmt.Errorf("failed to parse course for round %d: %w", round.ID, err)
		}
		round.Course = course
	}
	return rounds, nil
}

// validateCourse enforces the shape net scoring relies on: unique hole
// numbers 1-18, positive par, stroke index within 1-18.
func validateCourse(holes []models.CourseHole) error {
	if len(holes) == 0 || len(holes) > 18 {
		return fmt.Errorf("%w: a course has between 1 and 18 holes", ErrInvalidCourseData)
	}
	seen := make(map[int]bool, len(holes))
	for _, hole := range holes {
		if hole.Number < 1 || hole.Number > 18 {
			return fmt.Errorf("%w: hole number %d out of range", ErrInvalidCourseData, hole.Number)
		}
		if seen[hole.Number] {
			return fmt.Errorf("%w: duplicate hole number %d", ErrInvalidCourseData, hole.Number)
		}
		seen[hole.Number] = true
		if hole.Par < 3 || hole.Par > 6 {
			return fmt.Errorf("%w: par %d on hole %d out of range", ErrInvalidCourseData, hole.Par, hole.Number)
		}
		if hole.StrokeIndex < 1 || hole.StrokeIndex > 18 {
			return fmt.Errorf("%w: stroke index %d on hole %d out of range", ErrInvalidCourseData, hole.StrokeIndex, hole.Number)
		}
	}
	return nil
}

func (s *roundService) SetCourse(ctx context.Context, roundID, currentUserID int, input CourseInput) (*models.Round, error) {
	round, err := s.GetByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOrganizer(ctx, round.EventID, currentUserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.CourseName)
	if name == "" {
		return nil, fmt.Errorf("%w: course name is required", ErrInvalidCourseData)
	}
	if err := validateCourse(input.Holes); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(models.CourseData{Holes: input.Holes})
	if err != nil {
		return nil, fmt.Errorf("failed to encode course data: %w", err)
	}
	if err := s.roundRepo.SetCourse(ctx, roundID, name, string(payload)); err != nil {
		return nil, fmt.Errorf("failed to save course for round %d: %w", roundID, err)
	}

	raw := string(payload)
	round.CourseName = &name
	round.CourseJSON = &raw
	round.Course = &models.CourseData{Holes: input.Holes}
	return round, nil
}

func (s *roundService) SetScoringLocked(ctx context.Context, roundID, currentUserID int, locked bool) (*models.Round, error) {
	round, err := s.GetByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOrganizer(ctx, round.EventID, currentUserID); err != nil {
		return nil, err
	}

	if err := s.roundRepo.SetScoringLocked(ctx, roundID, locked); err != nil {
		return nil, fmt.Errorf("failed to set scoring lock for round %d: %w", roundID, err)
	}
	round.ScoringLocked = locked
	return round, nil
}

func (s *roundService) Delete(ctx context.Context, roundID, currentUserID int) error {
	round, err := s.GetByID(ctx, roundID)
	if err != nil {
		return err
	}
	if _, err := s.requireOrganizer(ctx, round.EventID, currentUserID); err != nil {
		return err
	}

	if err := s.roundRepo.Delete(ctx, roundID); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return ErrRoundNotFound
		}
		return fmt.Errorf("failed to delete round %d: %w", roundID, err)
	}
	return nil
}

func (s *roundService) ListGameModes() []models.GameMode {
	return models.GameModes
}
