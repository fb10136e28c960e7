package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/house7784/golf-trip-app/models"
	"github.com/house7784/golf-trip-app/scoring"
)

type pairingFixture struct {
	service      PairingService
	events       *fakeEventRepo
	participants *fakeParticipantRepo
	teams        *fakeTeamRepo
	rounds       *fakeRoundRepo
	teeTimes     *fakeTeeTimeRepo
}

// newPairingFixture builds an event with two teams of two and one solo
// player, one round, and one empty tee time.
func newPairingFixture(t *testing.T) *pairingFixture {
	t.Helper()
	now := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

	f := &pairingFixture{
		events:       newFakeEventRepo(),
		participants: &fakeParticipantRepo{},
		teams:        &fakeTeamRepo{},
		rounds:       &fakeRoundRepo{},
		teeTimes:     &fakeTeeTimeRepo{},
	}
	f.events.events[1] = &models.Event{
		ID: 1, StartDate: now, EndDate: now, OrganizerID: 1,
		HandicapPolicy: models.HandicapPolicyStandard,
	}
	f.teams.teams = append(f.teams.teams,
		&models.Team{ID: 1, EventID: 1, Name: "Birdies"},
		&models.Team{ID: 2, EventID: 1, Name: "Eagles"},
	)
	teamA, teamB := 1, 2
	add := func(userID int, name string, teamID *int) {
		f.participants.participants = append(f.participants.participants, &models.EventParticipant{
			ID: userID, EventID: 1, UserID: userID, TeamID: teamID,
			Role: models.ParticipantRolePlayer,
			User: &models.User{ID: userID, FullName: name},
		})
	}
	add(1, "Alice", &teamA)
	add(2, "Bob", &teamA)
	add(3, "Cara", &teamB)
	add(4, "Dan", &teamB)
	add(5, "Eve", nil)
	// The organizer participates too.
	f.participants.participants = append(f.participants.participants, &models.EventParticipant{
		ID: 6, EventID: 1, UserID: 1000, Role: models.ParticipantRoleOrganizer,
		User: &models.User{ID: 1000, FullName: "Org"},
	})

	f.rounds.rounds = append(f.rounds.rounds, &models.Round{
		ID: 1, EventID: 1, Date: now, ModeKey: "best_ball",
	})
	require.NoError(t, f.teeTimes.Create(context.Background(), &models.TeeTime{RoundID: 1, Time: "08:30"}))

	f.service = NewPairingService(f.teeTimes, f.rounds, f.events, f.participants, f.teams, nil)
	return f
}

const organizerID = 1000

func TestAssignSlot_FillsAlternatingSides(t *testing.T) {
	f := newPairingFixture(t)
	ctx := context.Background()

	alice, cara, bob := 1, 3, 2

	tt, err := f.service.AssignSlot(ctx, 1, 1, &alice, organizerID)
	require.NoError(t, err)
	assert.Equal(t, &alice, tt.Pairings[0].PlayerID)

	// Cara must go to the opposite side, then Bob may join Alice.
	_, err = f.service.AssignSlot(ctx, 1, 3, &cara, organizerID)
	require.NoError(t, err)
	tt, err = f.service.AssignSlot(ctx, 1, 2, &bob, organizerID)
	require.NoError(t, err)
	assert.Equal(t, &bob, tt.Pairings[1].PlayerID)
}

func TestAssignSlot_RejectsMixedSide(t *testing.T) {
	f := newPairingFixture(t)
	ctx := context.Background()

	alice, cara := 1, 3
	_, err := f.service.AssignSlot(ctx, 1, 1, &alice, organizerID)
	require.NoError(t, err)

	_, err = f.service.AssignSlot(ctx, 1, 2, &cara, organizerID)
	var pairingErr *scoring.PairingError
	require.ErrorAs(t, err, &pairingErr)
	assert.Equal(t, scoring.RejectMixedSide, pairingErr.Reason)

	// Nothing was written.
	stored, err := f.teeTimes.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored.Pairings[1].PlayerID)
}

func TestAssignSlot_RejectsSameTeamDuplication(t *testing.T) {
	f := newPairingFixture(t)
	ctx := context.Background()

	alice, bob := 1, 2
	_, err := f.service.AssignSlot(ctx, 1, 1, &alice, organizerID)
	require.NoError(t, err)

	// Side B is empty and side A holds only Bob's own team.
	_, err = f.service.AssignSlot(ctx, 1, 3, &bob, organizerID)
	var pairingErr *scoring.PairingError
	require.ErrorAs(t, err, &pairingErr)
	assert.Equal(t, scoring.RejectSameTeamDuplication, pairingErr.Reason)
}

func TestAssignSlot_RejectsPlayerWithoutTeam(t *testing.T) {
	f := newPairingFixture(t)

	eve := 5
	_, err := f.service.AssignSlot(context.Background(), 1, 1, &eve, organizerID)
	var pairingErr *scoring.PairingError
	require.ErrorAs(t, err, &pairingErr)
	assert.Equal(t, scoring.RejectPlayerWithoutTeam, pairingErr.Reason)
}

func TestAssignSlot_RuleDisabledBelowTwoTeams(t *testing.T) {
	f := newPairingFixture(t)
	f.teams.teams = f.teams.teams[:1]

	// Eve has no team, yet with a single team the rule does not apply.
	eve := 5
	_, err := f.service.AssignSlot(context.Background(), 1, 1, &eve, organizerID)
	require.NoError(t, err)
}

func TestAssignSlot_RemovalAlwaysAllowed(t *testing.T) {
	f := newPairingFixture(t)
	ctx := context.Background()

	alice := 1
	_, err := f.service.AssignSlot(ctx, 1, 1, &alice, organizerID)
	require.NoError(t, err)

	tt, err := f.service.AssignSlot(ctx, 1, 1, nil, organizerID)
	require.NoError(t, err)
	assert.Nil(t, tt.Pairings[0].PlayerID)
}

func TestAssignSlot_OrganizerOnly(t *testing.T) {
	f := newPairingFixture(t)

	alice := 1
	_, err := f.service.AssignSlot(context.Background(), 1, 1, &alice, 2)
	assert.ErrorIs(t, err, ErrOrganizerOnly)
}

func TestAssignSlot_RejectsNonParticipant(t *testing.T) {
	f := newPairingFixture(t)

	stranger := 99
	_, err := f.service.AssignSlot(context.Background(), 1, 1, &stranger, organizerID)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestCreateTeeTime_FourEmptySlots(t *testing.T) {
	f := newPairingFixture(t)

	tt, err := f.service.CreateTeeTime(context.Background(), 1, organizerID, "10:15")
	require.NoError(t, err)
	require.Len(t, tt.Pairings, 4)
	for i, pairing := range tt.Pairings {
		assert.Equal(t, i+1, pairing.SlotNumber)
		assert.Nil(t, pairing.PlayerID)
	}
}

func TestCreateTeeTime_RequiresTime(t *testing.T) {
	f := newPairingFixture(t)

	_, err := f.service.CreateTeeTime(context.Background(), 1, organizerID, "  ")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
