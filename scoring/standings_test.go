package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBuildEntries(t *testing.T) {
	players := []Player{
		{UserID: 1, DisplayName: "Alice", TeamID: intPtr(10)},
		{UserID: 2, DisplayName: "Bob", TeamID: intPtr(10)},
		{UserID: 3, DisplayName: "Cara", TeamID: intPtr(20)},
		{UserID: 4, DisplayName: "Dan"},
	}
	teams := []Team{{ID: 10, Name: "Eagles"}, {ID: 20, Name: "Birdies"}}

	t.Run("team mode groups rosters and keeps unassigned players solo", func(t *testing.T) {
		entries := BuildEntries(players, teams)
		require.Len(t, entries, 3)

		assert.Equal(t, "team-10", entries[0].Key)
		assert.Equal(t, "Eagles", entries[0].Label)
		assert.Equal(t, []int{1, 2}, entries[0].MemberIDs)

		assert.Equal(t, "team-20", entries[1].Key)
		assert.Equal(t, []int{3}, entries[1].MemberIDs)

		assert.Equal(t, "solo-4", entries[2].Key)
		assert.Equal(t, "Dan", entries[2].Label)
	})

	t.Run("no teams means everyone plays solo", func(t *testing.T) {
		entries := BuildEntries(players, nil)
		require.Len(t, entries, 4)
		for i, entry := range entries {
			assert.Equal(t, []int{players[i].UserID}, entry.MemberIDs)
		}
	})
}

func TestBuildPairEntries(t *testing.T) {
	players := []Player{
		{UserID: 1, DisplayName: "Alice"},
		{UserID: 2, DisplayName: "Bob"},
		{UserID: 3, DisplayName: "Cara"},
	}
	groups := []TeeGroup{
		{
			ID: 7,
			Slots: []PairingSlot{
				{SlotNumber: 1, PlayerID: intPtr(1)},
				{SlotNumber: 2, PlayerID: intPtr(2)},
				{SlotNumber: 3, PlayerID: nil},
				{SlotNumber: 4, PlayerID: intPtr(3)},
			},
		},
		{
			ID: 8,
			Slots: []PairingSlot{
				{SlotNumber: 1, PlayerID: nil},
				{SlotNumber: 2, PlayerID: nil},
				{SlotNumber: 3, PlayerID: nil},
				{SlotNumber: 4, PlayerID: nil},
			},
		},
	}

	entries := BuildPairEntries(groups, players)
	require.Len(t, entries, 2, "empty sides and empty tee times are omitted")

	assert.Equal(t, "tee7-side1", entries[0].Key)
	assert.Equal(t, "Pair 1", entries[0].Label)
	assert.Equal(t, []int{1, 2}, entries[0].MemberIDs)
	assert.Equal(t, []string{"Alice", "Bob"}, entries[0].MemberNames)

	assert.Equal(t, "tee7-side2", entries[1].Key)
	assert.Equal(t, "Pair 2", entries[1].Label)
	assert.Equal(t, []int{3}, entries[1].MemberIDs)
}

func TestBuildRoundStandings(t *testing.T) {
	holes := testCourse()
	players := []Player{
		{UserID: 1, DisplayName: "Alice", Handicap: 9, TeamID: intPtr(10)},
		{UserID: 2, DisplayName: "Bob", Handicap: 0, TeamID: intPtr(10)},
		{UserID: 3, DisplayName: "Cara", Handicap: 0, TeamID: intPtr(20)},
		{UserID: 4, DisplayName: "Dan", Handicap: 0},
	}
	teams := []Team{{ID: 10, Name: "Eagles"}, {ID: 20, Name: "Birdies"}}
	entries := BuildEntries(players, teams)

	input := RoundInput{
		Holes:   holes,
		Policy:  PolicyStandard,
		Players: players,
		ScoreCards: map[int]map[int]int{
			1: fullCard(5), // net 81
			// Bob has no card: contributes nothing, not zero.
			3: fullCard(4), // net 72
			// Dan has an empty card: still unscored.
			4: {},
		},
	}

	rows, err := BuildRoundStandings(entries, input)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Birdies 72, Eagles 81 (Alice only), Dan unscored last.
	assert.Equal(t, "Birdies", rows[0].Entry.Label)
	require.NotNil(t, rows[0].Score)
	assert.Equal(t, 72, *rows[0].Score)
	assert.Equal(t, 1, rows[0].Rank)

	assert.Equal(t, "Eagles", rows[1].Entry.Label)
	require.NotNil(t, rows[1].Score)
	assert.Equal(t, 81, *rows[1].Score)
	assert.Equal(t, 2, rows[1].Rank)

	assert.Equal(t, "Dan", rows[2].Entry.Label)
	assert.Nil(t, rows[2].Score)
	assert.Zero(t, rows[2].Rank)
}

func TestBuildRoundStandings_TieRanks(t *testing.T) {
	players := []Player{
		{UserID: 1, DisplayName: "Alpha"},
		{UserID: 2, DisplayName: "Bravo"},
		{UserID: 3, DisplayName: "Charlie"},
		{UserID: 4, DisplayName: "Delta"},
	}
	entries := BuildEntries(players, nil)

	// No course configured: gross totals stand in for nets.
	input := RoundInput{
		Policy:  PolicyStandard,
		Players: players,
		ScoreCards: map[int]map[int]int{
			1: {1: 70},
			2: {1: 70},
			3: {1: 75},
			4: {1: 75},
		},
	}

	rows, err := BuildRoundStandings(entries, input)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Tied group shares its starting rank; the next group resumes at
	// groupStart + groupSize.
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 1, rows[1].Rank)
	assert.Equal(t, 3, rows[2].Rank)
	assert.Equal(t, 3, rows[3].Rank)

	// Ties break alphabetically by label.
	assert.Equal(t, "Alpha", rows[0].Entry.Label)
	assert.Equal(t, "Bravo", rows[1].Entry.Label)
}

func TestBuildRoundStandings_AllUnscoredSortAlphabetically(t *testing.T) {
	players := []Player{
		{UserID: 1, DisplayName: "Zed"},
		{UserID: 2, DisplayName: "Amy"},
	}
	entries := BuildEntries(players, nil)

	rows, err := BuildRoundStandings(entries, RoundInput{Policy: PolicyStandard, Players: players})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Amy", rows[0].Entry.Label)
	assert.Equal(t, "Zed", rows[1].Entry.Label)
	assert.Nil(t, rows[0].Score)
	assert.Nil(t, rows[1].Score)
}

func TestBuildRoundStandings_Idempotent(t *testing.T) {
	players := []Player{
		{UserID: 1, DisplayName: "Alice", Handicap: 4.5},
		{UserID: 2, DisplayName: "Bob", Handicap: 11},
	}
	entries := BuildEntries(players, nil)
	input := RoundInput{
		Holes:   testCourse(5, 11),
		Policy:  PolicyPar3First,
		Players: players,
		ScoreCards: map[int]map[int]int{
			1: {1: 4, 2: 5, 5: 3},
			2: {1: 6, 2: 6},
		},
	}

	first, err := BuildRoundStandings(entries, input)
	require.NoError(t, err)
	second, err := BuildRoundStandings(entries, input)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated call diverged (-first +second):\n%s", diff)
	}
}

func TestBuildRoundStandings_PropagatesPolicyError(t *testing.T) {
	players := []Player{{UserID: 1, DisplayName: "Alice"}}
	entries := BuildEntries(players, nil)
	input := RoundInput{
		Holes:      testCourse(),
		Policy:     AllocationPolicy("bogus"),
		Players:    players,
		ScoreCards: map[int]map[int]int{1: {1: 4}},
	}

	_, err := BuildRoundStandings(entries, input)
	require.ErrorIs(t, err, ErrUnknownPolicy)
}
