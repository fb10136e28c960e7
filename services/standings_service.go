package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
	"github.com/house7784/golf-trip-app/scoring"
)

// RoundBlock is one round's leaderboard inside the event snapshot.
type RoundBlock struct {
	Round     *models.Round           `json:"round"`
	Standings []scoring.RoundStanding `json:"standings"`
}

// EventStandings is the full dashboard payload: the highlighted round's
// leaderboard (pair-based while the live leaderboard is on and tee sheets
// exist), every round's leaderboard, and the overall points race.
type EventStandings struct {
	EventID      int                       `json:"event_id"`
	CurrentRound *models.Round             `json:"current_round,omitempty"`
	PairMode     bool                      `json:"pair_mode"`
	Current      []scoring.RoundStanding   `json:"current,omitempty"`
	Rounds       []RoundBlock              `json:"rounds"`
	Overall      []scoring.OverallStanding `json:"overall"`
}

type StandingsService interface {
	RoundStandings(ctx context.Context, roundID int) ([]scoring.RoundStanding, error)
	EventStandings(ctx context.Context, eventID int) (*EventStandings, error)
}

type standingsService struct {
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
	teamRepo        repositories.TeamRepository
	roundRepo       repositories.RoundRepository
	scoreRepo       repositories.ScoreRepository
	teeTimeRepo     repositories.TeeTimeRepository
	now             func() time.Time
}

func NewStandingsService(
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	teamRepo repositories.TeamRepository,
	roundRepo repositories.RoundRepository,
	scoreRepo repositories.ScoreRepository,
	teeTimeRepo repositories.TeeTimeRepository,
) StandingsService {
	return &standingsService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		teamRepo:        teamRepo,
		roundRepo:       roundRepo,
		scoreRepo:       scoreRepo,
		teeTimeRepo:     teeTimeRepo,
		now:             time.Now,
	}
}

// buildPlayers resolves each participant to an engine player with the
// effective handicap: a locked or overridden event handicap wins verbatim,
// otherwise the capped profile handicap applies.
func buildPlayers(event *models.Event, roster []*models.EventParticipant) []scoring.Player {
	players := make([]scoring.Player, 0, len(roster))
	for _, p := range roster {
		if p.User == nil {
			continue
		}
		handicap := scoring.ClampHandicap(p.User.HandicapIndex, event.HandicapCap)
		if p.EventHandicap != nil {
			handicap = *p.EventHandicap
		}
		players = append(players, scoring.Player{
			UserID:      p.UserID,
			DisplayName: p.User.DisplayName(),
			Handicap:    handicap,
			TeamID:      p.TeamID,
		})
	}
	return players
}

func buildTeams(teams []*models.Team) []scoring.Team {
	out := make([]scoring.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, scoring.Team{ID: t.ID, Name: t.Name})
	}
	return out
}

func roundHoles(round *models.Round) ([]scoring.Hole, error) {
	course, err := round.ParseCourse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse course for round %d: %w", round.ID, err)
	}
	if course == nil {
		return nil, nil
	}
	holes := make([]scoring.Hole, 0, len(course.Holes))
	for _, h := range course.Holes {
		holes = append(holes, scoring.Hole{Number: h.Number, Par: h.Par, StrokeIndex: h.StrokeIndex})
	}
	return holes, nil
}

func cardsByUser(cards []*models.ScoreCard, roundID int) map[int]map[int]int {
	byUser := make(map[int]map[int]int)
	for _, card := range cards {
		if card.RoundID != roundID {
			continue
		}
		byUser[card.UserID] = card.HoleScores
	}
	return byUser
}

// selectCurrentRound picks the round the dashboard highlights: today's
// round when one exists, otherwise the most recent past round, otherwise
// the first scheduled round. Rounds arrive ordered by date.
func selectCurrentRound(rounds []*models.Round, now time.Time) *models.Round {
	if len(rounds) == 0 {
		return nil
	}
	var latestPast *models.Round
	for _, round := range rounds {
		if sameDay(round.Date, now) {
			return round
		}
		if round.Date.Before(now) {
			latestPast = round
		}
	}
	if latestPast != nil {
		return latestPast
	}
	return rounds[0]
}

func (s *standingsService) RoundStandings(ctx context.Context, roundID int) ([]scoring.RoundStanding, error) {
	round, err := s.roundRepo.FindByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to find round %d: %w", roundID, err)
	}

	event, err := s.eventRepo.FindByID(ctx, round.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to find event %d: %w", round.EventID, err)
	}

	var roster []*models.EventParticipant
	var teams []*models.Team
	var cards []*models.ScoreCard

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.participantRepo.ListByEvent(gCtx, event.ID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByEvent(gCtx, event.ID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.scoreRepo.ListByRound(gCtx, roundID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble standings snapshot: %w", err)
	}

	holes, err := roundHoles(round)
	if err != nil {
		return nil, err
	}

	players := buildPlayers(event, roster)
	entries := scoring.BuildEntries(players, buildTeams(teams))
	return scoring.BuildRoundStandings(entries, scoring.RoundInput{
		Holes:      holes,
		Policy:     scoring.AllocationPolicy(event.HandicapPolicy),
		Players:    players,
		ScoreCards: cardsByUser(cards, roundID),
	})
}

func (s *standingsService) EventStandings(ctx context.Context, eventID int) (*EventStandings, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event %d: %w", eventID, err)
	}

	var roster []*models.EventParticipant
	var teams []*models.Team
	var rounds []*models.Round

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.participantRepo.ListByEvent(gCtx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByEvent(gCtx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		rounds, err = s.roundRepo.ListByEvent(gCtx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble standings snapshot: %w", err)
	}

	roundIDs := make([]int, 0, len(rounds))
	for _, round := range rounds {
		roundIDs = append(roundIDs, round.ID)
	}
	cards, err := s.scoreRepo.ListByRounds(ctx, roundIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecards: %w", err)
	}

	players := buildPlayers(event, roster)
	scoringTeams := buildTeams(teams)
	policy := scoring.AllocationPolicy(event.HandicapPolicy)

	result := &EventStandings{
		EventID: eventID,
		Rounds:  make([]RoundBlock, 0, len(rounds)),
		Overall: []scoring.OverallStanding{},
	}

	perRound := make([][]scoring.RoundStanding, 0, len(rounds))
	for _, round := range rounds {
		holes, err := roundHoles(round)
		if err != nil {
			return nil, err
		}
		entries := scoring.BuildEntries(players, scoringTeams)
		standings, err := scoring.BuildRoundStandings(entries, scoring.RoundInput{
			Holes:      holes,
			Policy:     policy,
			Players:    players,
			ScoreCards: cardsByUser(cards, round.ID),
		})
		if err != nil {
			return nil, err
		}
		perRound = append(perRound, standings)
		result.Rounds = append(result.Rounds, RoundBlock{Round: round, Standings: standings})
	}
	result.Overall = scoring.AggregatePoints(perRound)

	current := selectCurrentRound(rounds, s.now())
	if current == nil {
		return result, nil
	}
	result.CurrentRound = current

	// Default current view: the round's team/solo leaderboard.
	for i, round := range rounds {
		if round.ID == current.ID {
			result.Current = perRound[i]
			break
		}
	}

	// While the live leaderboard is on and a tee sheet exists, the current
	// view switches to ad-hoc pairs built from the tee-time sides.
	if event.LeaderboardActive {
		pairStandings, ok, err := s.pairStandings(ctx, event, current, players, cardsByUser(cards, current.ID))
		if err != nil {
			return nil, err
		}
		if ok {
			result.PairMode = true
			result.Current = pairStandings
		}
	}

	return result, nil
}

func (s *standingsService) pairStandings(
	ctx context.Context,
	event *models.Event,
	round *models.Round,
	players []scoring.Player,
	cards map[int]map[int]int,
) ([]scoring.RoundStanding, bool, error) {
	teeTimes, err := s.teeTimeRepo.ListByRound(ctx, round.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list tee times for round %d: %w", round.ID, err)
	}

	groups := make([]scoring.TeeGroup, 0, len(teeTimes))
	assigned := false
	for _, tt := range teeTimes {
		group := scoring.TeeGroup{ID: tt.ID}
		for _, pairing := range tt.Pairings {
			if pairing.PlayerID != nil {
				assigned = true
			}
			group.Slots = append(group.Slots, scoring.PairingSlot{
				SlotNumber: pairing.SlotNumber,
				PlayerID:   pairing.PlayerID,
			})
		}
		groups = append(groups, group)
	}
	if !assigned {
		return nil, false, nil
	}

	holes, err := roundHoles(round)
	if err != nil {
		return nil, false, err
	}
	entries := scoring.BuildPairEntries(groups, players)
	standings, err := scoring.BuildRoundStandings(entries, scoring.RoundInput{
		Holes:      holes,
		Policy:     scoring.AllocationPolicy(event.HandicapPolicy),
		Players:    players,
		ScoreCards: cards,
	})
	if err != nil {
		return nil, false, err
	}
	return standings, true, nil
}
