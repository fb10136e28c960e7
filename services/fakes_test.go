package services

import (
	"context"
	"time"

	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/repositories"
)

// In-memory repository fakes. They implement just enough of the contracts
// for the service tests; unsupported paths return the repository sentinels.

type fakeEventRepo struct {
	events map[int]*models.Event
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	m := make(map[int]*models.Event)
	for _, e := range events {
		m[e.ID] = e
	}
	return &fakeEventRepo{events: m}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	event.ID = len(r.events) + 1
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id int) (*models.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEventRepo) ListByUser(_ context.Context, _ int) ([]*models.Event, error) {
	out := make([]*models.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEventRepo) ListStartingWithin(_ context.Context, _ int) ([]*models.Event, error) {
	return r.ListByUser(nil, 0)
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return repositories.ErrEventNotFound
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) SetLeaderboardActive(_ context.Context, id int, active bool) error {
	e, ok := r.events[id]
	if !ok {
		return repositories.ErrEventNotFound
	}
	e.LeaderboardActive = active
	return nil
}

func (r *fakeEventRepo) UpdateHandicapSettings(_ context.Context, id int, cap *float64, policy models.HandicapPolicy) error {
	e, ok := r.events[id]
	if !ok {
		return repositories.ErrEventNotFound
	}
	e.HandicapCap = cap
	e.HandicapPolicy = policy
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type fakeParticipantRepo struct {
	participants []*models.EventParticipant
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *models.EventParticipant) error {
	for _, existing := range r.participants {
		if existing.EventID == p.EventID && existing.UserID == p.UserID {
			return repositories.ErrParticipantConflict
		}
	}
	p.ID = len(r.participants) + 1
	r.participants = append(r.participants, p)
	return nil
}

func (r *fakeParticipantRepo) FindByID(_ context.Context, id int) (*models.EventParticipant, error) {
	for _, p := range r.participants {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) FindByEventAndUser(_ context.Context, eventID, userID int) (*models.EventParticipant, error) {
	for _, p := range r.participants {
		if p.EventID == eventID && p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) ListByEvent(_ context.Context, eventID int) ([]*models.EventParticipant, error) {
	out := make([]*models.EventParticipant, 0)
	for _, p := range r.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) SetTeam(_ context.Context, id int, teamID *int) error {
	p, err := r.FindByID(nil, id)
	if err != nil {
		return err
	}
	p.TeamID = teamID
	return nil
}

func (r *fakeParticipantRepo) SetEventHandicap(_ context.Context, id int, handicap *float64, lockedAt *time.Time) error {
	p, err := r.FindByID(nil, id)
	if err != nil {
		return err
	}
	p.EventHandicap = handicap
	p.HandicapLockedAt = lockedAt
	return nil
}

func (r *fakeParticipantRepo) LockEventHandicap(_ context.Context, id int, handicap float64, lockedAt time.Time) error {
	p, err := r.FindByID(nil, id)
	if err != nil {
		return err
	}
	if p.EventHandicap != nil {
		return repositories.ErrParticipantNotFound
	}
	p.EventHandicap = &handicap
	p.HandicapLockedAt = &lockedAt
	return nil
}

func (r *fakeParticipantRepo) Delete(_ context.Context, id int) error {
	for i, p := range r.participants {
		if p.ID == id {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return nil
		}
	}
	return repositories.ErrParticipantNotFound
}

type fakeTeamRepo struct {
	teams []*models.Team
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	team.ID = len(r.teams) + 1
	r.teams = append(r.teams, team)
	return nil
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id int) (*models.Team, error) {
	for _, t := range r.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) ListByEvent(_ context.Context, eventID int) ([]*models.Team, error) {
	out := make([]*models.Team, 0)
	for _, t := range r.teams {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) CountByEvent(ctx context.Context, eventID int) (int, error) {
	teams, _ := r.ListByEvent(ctx, eventID)
	return len(teams), nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	for i, t := range r.teams {
		if t.ID == team.ID {
			r.teams[i] = team
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	for i, t := range r.teams {
		if t.ID == id {
			r.teams = append(r.teams[:i], r.teams[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

type fakeRoundRepo struct {
	rounds []*models.Round
}

func (r *fakeRoundRepo) UpsertByDate(_ context.Context, round *models.Round) error {
	for _, existing := range r.rounds {
		if existing.EventID == round.EventID && existing.Date.Equal(round.Date) {
			existing.ModeKey = round.ModeKey
			*round = *existing
			return nil
		}
	}
	round.ID = len(r.rounds) + 1
	r.rounds = append(r.rounds, round)
	return nil
}

func (r *fakeRoundRepo) FindByID(_ context.Context, id int) (*models.Round, error) {
	for _, round := range r.rounds {
		if round.ID == id {
			return round, nil
		}
	}
	return nil, repositories.ErrRoundNotFound
}

func (r *fakeRoundRepo) ListByEvent(_ context.Context, eventID int) ([]*models.Round, error) {
	out := make([]*models.Round, 0)
	for _, round := range r.rounds {
		if round.EventID == eventID {
			out = append(out, round)
		}
	}
	return out, nil
}

func (r *fakeRoundRepo) SetCourse(_ context.Context, id int, courseName string, courseJSON string) error {
	round, err := r.FindByID(nil, id)
	if err != nil {
		return err
	}
	round.CourseName = &courseName
	round.CourseJSON = &courseJSON
	return nil
}

func (r *fakeRoundRepo) SetScoringLocked(_ context.Context, id int, locked bool) error {
	round, err := r.FindByID(nil, id)
	if err != nil {
		return err
	}
	round.ScoringLocked = locked
	return nil
}

func (r *fakeRoundRepo) Delete(_ context.Context, id int) error {
	for i, round := range r.rounds {
		if round.ID == id {
			r.rounds = append(r.rounds[:i], r.rounds[i+1:]...)
			return nil
		}
	}
	return repositories.ErrRoundNotFound
}

type fakeScoreRepo struct {
	cards []*models.ScoreCard
}

func (r *fakeScoreRepo) Upsert(_ context.Context, card *models.ScoreCard) error {
	for _, existing := range r.cards {
		if existing.RoundID == card.RoundID && existing.UserID == card.UserID {
			existing.HoleScores = card.HoleScores
			*card = *existing
			return nil
		}
	}
	card.ID = len(r.cards) + 1
	r.cards = append(r.cards, card)
	return nil
}

func (r *fakeScoreRepo) FindByRoundAndUser(_ context.Context, roundID, userID int) (*models.ScoreCard, error) {
	for _, card := range r.cards {
		if card.RoundID == roundID && card.UserID == userID {
			return card, nil
		}
	}
	return nil, repositories.ErrScoreCardNotFound
}

func (r *fakeScoreRepo) ListByRound(_ context.Context, roundID int) ([]*models.ScoreCard, error) {
	out := make([]*models.ScoreCard, 0)
	for _, card := range r.cards {
		if card.RoundID == roundID {
			out = append(out, card)
		}
	}
	return out, nil
}

func (r *fakeScoreRepo) ListByRounds(ctx context.Context, roundIDs []int) ([]*models.ScoreCard, error) {
	out := make([]*models.ScoreCard, 0)
	for _, id := range roundIDs {
		cards, _ := r.ListByRound(ctx, id)
		out = append(out, cards...)
	}
	return out, nil
}

type fakeTeeTimeRepo struct {
	teeTimes []*models.TeeTime
}

func (r *fakeTeeTimeRepo) Create(_ context.Context, teeTime *models.TeeTime) error {
	teeTime.ID = len(r.teeTimes) + 1
	teeTime.Pairings = make([]models.Pairing, 0, 4)
	for slot := 1; slot <= 4; slot++ {
		teeTime.Pairings = append(teeTime.Pairings, models.Pairing{
			ID:         teeTime.ID*10 + slot,
			TeeTimeID:  teeTime.ID,
			SlotNumber: slot,
		})
	}
	r.teeTimes = append(r.teeTimes, teeTime)
	return nil
}

func (r *fakeTeeTimeRepo) FindByID(_ context.Context, id int) (*models.TeeTime, error) {
	for _, tt := range r.teeTimes {
		if tt.ID == id {
			return tt, nil
		}
	}
	return nil, repositories.ErrTeeTimeNotFound
}

func (r *fakeTeeTimeRepo) ListByRound(_ context.Context, roundID int) ([]*models.TeeTime, error) {
	out := make([]*models.TeeTime, 0)
	for _, tt := range r.teeTimes {
		if tt.RoundID == roundID {
			out = append(out, tt)
		}
	}
	return out, nil
}

func (r *fakeTeeTimeRepo) Delete(_ context.Context, id int) error {
	for i, tt := range r.teeTimes {
		if tt.ID == id {
			r.teeTimes = append(r.teeTimes[:i], r.teeTimes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTeeTimeNotFound
}

func (r *fakeTeeTimeRepo) SetPairingPlayer(ctx context.Context, teeTimeID, slotNumber int, playerID *int) error {
	tt, err := r.FindByID(ctx, teeTimeID)
	if err != nil {
		return err
	}
	for i := range tt.Pairings {
		if tt.Pairings[i].SlotNumber == slotNumber {
			tt.Pairings[i].PlayerID = playerID
			return nil
		}
	}
	return repositories.ErrPairingNotFound
}

func (r *fakeTeeTimeRepo) ListPairingsByRound(ctx context.Context, roundID int) ([]*models.Pairing, error) {
	out := make([]*models.Pairing, 0)
	teeTimes, _ := r.ListByRound(ctx, roundID)
	for _, tt := range teeTimes {
		for i := range tt.Pairings {
			out = append(out, &tt.Pairings[i])
		}
	}
	return out, nil
}
