package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/house7784/golf-trip-app/models"
)

func testCourseJSON(t *testing.T) string {
	t.Helper()
	holes := make([]models.CourseHole, 0, 18)
	for n := 1; n <= 18; n++ {
		holes = append(holes, models.CourseHole{Number: n, Par: 4, StrokeIndex: n})
	}
	payload, err := json.Marshal(models.CourseData{Holes: holes})
	require.NoError(t, err)
	return string(payload)
}

func evenCard(gross int) map[int]int {
	card := make(map[int]int, 18)
	for n := 1; n <= 18; n++ {
		card[n] = gross
	}
	return card
}

func float64Ptr(v float64) *float64 { return &v }

type standingsFixture struct {
	service      *standingsService
	events       *fakeEventRepo
	participants *fakeParticipantRepo
	teams        *fakeTeamRepo
	rounds       *fakeRoundRepo
	scores       *fakeScoreRepo
	teeTimes     *fakeTeeTimeRepo
}

func newStandingsFixture(t *testing.T, now time.Time) *standingsFixture {
	t.Helper()
	f := &standingsFixture{
		events:       newFakeEventRepo(),
		participants: &fakeParticipantRepo{},
		teams:        &fakeTeamRepo{},
		rounds:       &fakeRoundRepo{},
		scores:       &fakeScoreRepo{},
		teeTimes:     &fakeTeeTimeRepo{},
	}
	svc := NewStandingsService(f.events, f.participants, f.teams, f.rounds, f.scores, f.teeTimes)
	f.service = svc.(*standingsService)
	f.service.now = func() time.Time { return now }
	return f
}

func (f *standingsFixture) addPlayer(eventID, userID int, name string, handicap float64, teamID *int) {
	f.participants.participants = append(f.participants.participants, &models.EventParticipant{
		ID:      len(f.participants.participants) + 1,
		EventID: eventID,
		UserID:  userID,
		TeamID:  teamID,
		Role:    models.ParticipantRolePlayer,
		User:    &models.User{ID: userID, FullName: name, HandicapIndex: handicap},
	})
}

func TestEventStandings_SoloRound(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	f := newStandingsFixture(t, now)

	course := testCourseJSON(t)
	f.events.events[1] = &models.Event{
		ID:             1,
		Name:           "Spring Trip",
		StartDate:      now.AddDate(0, 0, -1),
		EndDate:        now.AddDate(0, 0, 1),
		OrganizerID:    1,
		HandicapPolicy: models.HandicapPolicyStandard,
	}
	f.addPlayer(1, 1, "Alice", 9, nil)
	f.addPlayer(1, 2, "Bob", 0, nil)
	f.addPlayer(1, 3, "Cara", 4, nil)
	f.rounds.rounds = append(f.rounds.rounds, &models.Round{
		ID: 1, EventID: 1, Date: now, ModeKey: "best_ball", CourseJSON: &course,
	})
	f.scores.cards = append(f.scores.cards,
		&models.ScoreCard{ID: 1, RoundID: 1, UserID: 1, HoleScores: evenCard(5)},
		&models.ScoreCard{ID: 2, RoundID: 1, UserID: 2, HoleScores: evenCard(4)},
	)

	result, err := f.service.EventStandings(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, result.Rounds, 1)
	standings := result.Rounds[0].Standings
	require.Len(t, standings, 3)

	// Bob: gross 72, no strokes. Alice: gross 90 minus 9 strokes. Cara: no card.
	assert.Equal(t, "Bob", standings[0].Entry.Label)
	require.NotNil(t, standings[0].Score)
	assert.Equal(t, 72, *standings[0].Score)
	assert.Equal(t, 1, standings[0].Rank)

	assert.Equal(t, "Alice", standings[1].Entry.Label)
	require.NotNil(t, standings[1].Score)
	assert.Equal(t, 81, *standings[1].Score)
	assert.Equal(t, 2, standings[1].Rank)

	assert.Equal(t, "Cara", standings[2].Entry.Label)
	assert.Nil(t, standings[2].Score)
	assert.Zero(t, standings[2].Rank)

	// Two scored entries: winner earns 2 points, runner-up 1, unscored 0.
	require.Len(t, result.Overall, 3)
	assert.Equal(t, "Bob", result.Overall[0].Entry.Label)
	assert.Equal(t, 2, result.Overall[0].TotalPoints)
	assert.Equal(t, "Alice", result.Overall[1].Entry.Label)
	assert.Equal(t, 1, result.Overall[1].TotalPoints)
	assert.Equal(t, "Cara", result.Overall[2].Entry.Label)
	assert.Zero(t, result.Overall[2].TotalPoints)

	// Today's round is the current one, in plain team/solo view.
	require.NotNil(t, result.CurrentRound)
	assert.Equal(t, 1, result.CurrentRound.ID)
	assert.False(t, result.PairMode)
	assert.Equal(t, standings, result.Current)
}

func TestEventStandings_EventHandicapOverridesProfile(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	f := newStandingsFixture(t, now)

	course := testCourseJSON(t)
	f.events.events[1] = &models.Event{
		ID:             1,
		StartDate:      now,
		EndDate:        now,
		OrganizerID:    1,
		HandicapCap:    float64Ptr(18),
		HandicapPolicy: models.HandicapPolicyStandard,
	}
	// Profile handicap 30 would be capped to 18, but the locked event
	// handicap of 25 applies verbatim.
	f.addPlayer(1, 1, "Alice", 30, nil)
	f.participants.participants[0].EventHandicap = float64Ptr(25)
	f.addPlayer(1, 2, "Bob", 30, nil)

	f.rounds.rounds = append(f.rounds.rounds, &models.Round{
		ID: 1, EventID: 1, Date: now, ModeKey: "scramble", CourseJSON: &course,
	})
	f.scores.cards = append(f.scores.cards,
		&models.ScoreCard{ID: 1, RoundID: 1, UserID: 1, HoleScores: evenCard(5)},
		&models.ScoreCard{ID: 2, RoundID: 1, UserID: 2, HoleScores: evenCard(5)},
	)

	result, err := f.service.EventStandings(context.Background(), 1)
	require.NoError(t, err)

	standings := result.Rounds[0].Standings
	require.Len(t, standings, 2)
	assert.Equal(t, "Alice", standings[0].Entry.Label)
	assert.Equal(t, 90-25, *standings[0].Score)
	assert.Equal(t, "Bob", standings[1].Entry.Label)
	assert.Equal(t, 90-18, *standings[1].Score)
}

func TestEventStandings_PairModeOnActiveLeaderboard(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	f := newStandingsFixture(t, now)

	course := testCourseJSON(t)
	f.events.events[1] = &models.Event{
		ID:                1,
		StartDate:         now,
		EndDate:           now,
		OrganizerID:       1,
		HandicapPolicy:    models.HandicapPolicyStandard,
		LeaderboardActive: true,
	}
	f.addPlayer(1, 1, "Alice", 0, nil)
	f.addPlayer(1, 2, "Bob", 0, nil)
	f.addPlayer(1, 3, "Cara", 0, nil)
	f.rounds.rounds = append(f.rounds.rounds, &models.Round{
		ID: 1, EventID: 1, Date: now, ModeKey: "best_ball", CourseJSON: &course,
	})
	f.scores.cards = append(f.scores.cards,
		&models.ScoreCard{ID: 1, RoundID: 1, UserID: 1, HoleScores: evenCard(5)},
		&models.ScoreCard{ID: 2, RoundID: 1, UserID: 2, HoleScores: evenCard(4)},
		&models.ScoreCard{ID: 3, RoundID: 1, UserID: 3, HoleScores: evenCard(4)},
	)

	tt := &models.TeeTime{RoundID: 1, Time: "08:30"}
	require.NoError(t, f.teeTimes.Create(context.Background(), tt))
	one, two, three := 1, 2, 3
	tt.Pairings[0].PlayerID = &one   // slot 1, side A
	tt.Pairings[1].PlayerID = &two   // slot 2, side A
	tt.Pairings[2].PlayerID = &three // slot 3, side B

	result, err := f.service.EventStandings(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, result.PairMode)
	require.Len(t, result.Current, 2)
	// Side B is Cara alone at 72; side A combines Alice and Bob at 162.
	assert.Equal(t, "Pair 2", result.Current[0].Entry.Label)
	assert.Equal(t, 72, *result.Current[0].Score)
	assert.Equal(t, "Pair 1", result.Current[1].Entry.Label)
	assert.Equal(t, 162, *result.Current[1].Score)

	// A full-history view stays in team/solo entries.
	for _, row := range result.Rounds[0].Standings {
		assert.Contains(t, []string{"Alice", "Bob", "Cara"}, row.Entry.Label)
	}
}

func TestEventStandings_InactiveLeaderboardIgnoresTeeSheet(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	f := newStandingsFixture(t, now)

	course := testCourseJSON(t)
	f.events.events[1] = &models.Event{
		ID: 1, StartDate: now, EndDate: now, OrganizerID: 1,
		HandicapPolicy: models.HandicapPolicyStandard,
	}
	f.addPlayer(1, 1, "Alice", 0, nil)
	f.rounds.rounds = append(f.rounds.rounds, &models.Round{
		ID: 1, EventID: 1, Date: now, ModeKey: "skins", CourseJSON: &course,
	})

	tt := &models.TeeTime{RoundID: 1, Time: "09:00"}
	require.NoError(t, f.teeTimes.Create(context.Background(), tt))
	one := 1
	tt.Pairings[0].PlayerID = &one

	result, err := f.service.EventStandings(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, result.PairMode)
}

func TestEventStandings_CurrentRoundSelection(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		dates     []time.Time
		wantRound int // index into dates, 1-based round ID
	}{
		{
			name:      "today wins",
			dates:     []time.Time{now.AddDate(0, 0, -1), now, now.AddDate(0, 0, 1)},
			wantRound: 2,
		},
		{
			name:      "latest past when no round today",
			dates:     []time.Time{now.AddDate(0, 0, -3), now.AddDate(0, 0, -1), now.AddDate(0, 0, 2)},
			wantRound: 2,
		},
		{
			name:      "first round before the event starts",
			dates:     []time.Time{now.AddDate(0, 0, 5), now.AddDate(0, 0, 6)},
			wantRound: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStandingsFixture(t, now)
			f.events.events[1] = &models.Event{
				ID: 1, StartDate: now.AddDate(0, 0, -7), EndDate: now.AddDate(0, 0, 7),
				OrganizerID: 1, HandicapPolicy: models.HandicapPolicyStandard,
			}
			for i, date := range tt.dates {
				f.rounds.rounds = append(f.rounds.rounds, &models.Round{
					ID: i + 1, EventID: 1, Date: date, ModeKey: "scramble",
				})
			}

			result, err := f.service.EventStandings(context.Background(), 1)
			require.NoError(t, err)
			require.NotNil(t, result.CurrentRound)
			assert.Equal(t, tt.wantRound, result.CurrentRound.ID)
		})
	}
}

func TestEventStandings_NoRounds(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	f := newStandingsFixture(t, now)
	f.events.events[1] = &models.Event{
		ID: 1, StartDate: now, EndDate: now, OrganizerID: 1,
		HandicapPolicy: models.HandicapPolicyStandard,
	}
	f.addPlayer(1, 1, "Alice", 5, nil)

	result, err := f.service.EventStandings(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, result.CurrentRound)
	assert.Empty(t, result.Rounds)
	assert.Empty(t, result.Overall)
}

func TestEventStandings_EventNotFound(t *testing.T) {
	f := newStandingsFixture(t, time.Now())
	_, err := f.service.EventStandings(context.Background(), 42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRoundStandings_TeamEntries(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	f := newStandingsFixture(t, now)

	course := testCourseJSON(t)
	f.events.events[1] = &models.Event{
		ID: 1, StartDate: now, EndDate: now, OrganizerID: 1,
		HandicapPolicy: models.HandicapPolicyStandard,
	}
	f.teams.teams = append(f.teams.teams,
		&models.Team{ID: 1, EventID: 1, Name: "Birdies"},
		&models.Team{ID: 2, EventID: 1, Name: "Eagles"},
	)
	teamA, teamB := 1, 2
	f.addPlayer(1, 1, "Alice", 0, &teamA)
	f.addPlayer(1, 2, "Bob", 0, &teamA)
	f.addPlayer(1, 3, "Cara", 0, &teamB)
	f.rounds.rounds = append(f.rounds.rounds, &models.Round{
		ID: 1, EventID: 1, Date: now, ModeKey: "best_ball", CourseJSON: &course,
	})
	f.scores.cards = append(f.scores.cards,
		&models.ScoreCard{ID: 1, RoundID: 1, UserID: 1, HoleScores: evenCard(4)},
		&models.ScoreCard{ID: 2, RoundID: 1, UserID: 2, HoleScores: evenCard(5)},
		&models.ScoreCard{ID: 3, RoundID: 1, UserID: 3, HoleScores: evenCard(4)},
	)

	standings, err := f.service.RoundStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	// Eagles: Cara's 72. Birdies: 72 + 90.
	assert.Equal(t, "Eagles", standings[0].Entry.Label)
	assert.Equal(t, 72, *standings[0].Score)
	assert.Equal(t, "Birdies", standings[1].Entry.Label)
	assert.Equal(t, 162, *standings[1].Score)
}

func TestRoundStandings_GrossFallbackWithoutCourse(t *testing.T) {
	now := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	f := newStandingsFixture(t, now)

	f.events.events[1] = &models.Event{
		ID: 1, StartDate: now, EndDate: now, OrganizerID: 1,
		HandicapPolicy: models.HandicapPolicyStandard,
	}
	f.addPlayer(1, 1, "Alice", 10, nil)
	f.rounds.rounds = append(f.rounds.rounds, &models.Round{
		ID: 1, EventID: 1, Date: now, ModeKey: "scramble",
	})
	f.scores.cards = append(f.scores.cards,
		&models.ScoreCard{ID: 1, RoundID: 1, UserID: 1, HoleScores: map[int]int{1: 5, 2: 4}},
	)

	standings, err := f.service.RoundStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	// No course configured: the handicap cannot be spread, totals stay gross.
	assert.Equal(t, 9, *standings[0].Score)
}

func TestRoundStandings_RoundNotFound(t *testing.T) {
	f := newStandingsFixture(t, time.Now())
	_, err := f.service.RoundStandings(context.Background(), 7)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}
