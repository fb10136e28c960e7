package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAssignment(t *testing.T) {
	// Players 1,2 on team X (100); players 3,4 on team Y (200); player 9
	// has no team.
	teamByPlayer := map[int]int{1: 100, 2: 100, 3: 200, 4: 200}

	tests := []struct {
		name       string
		slots      map[int]int
		slotNumber int
		playerID   *int
		teamCount  int
		wantReason PairingRejectionReason
	}{
		{
			name:       "empty tee time accepts anyone",
			slots:      map[int]int{},
			slotNumber: 1,
			playerID:   intPtr(1),
			teamCount:  2,
		},
		{
			name:       "same team may share a side",
			slots:      map[int]int{1: 1},
			slotNumber: 2,
			playerID:   intPtr(2),
			teamCount:  2,
		},
		{
			name:       "opposing team may not join the side",
			slots:      map[int]int{1: 1},
			slotNumber: 2,
			playerID:   intPtr(3),
			teamCount:  2,
			wantReason: RejectMixedSide,
		},
		{
			name:       "empty side rejects the team already holding the opposite side",
			slots:      map[int]int{1: 1, 2: 2},
			slotNumber: 3,
			playerID:   intPtr(2),
			teamCount:  2,
			wantReason: RejectSameTeamDuplication,
		},
		{
			name:       "empty side accepts the other team",
			slots:      map[int]int{1: 1, 2: 2},
			slotNumber: 3,
			playerID:   intPtr(3),
			teamCount:  2,
		},
		{
			name:       "mixed opposite side disables the duplication heuristic",
			slots:      map[int]int{3: 1, 4: 3},
			slotNumber: 1,
			playerID:   intPtr(2),
			teamCount:  2,
		},
		{
			name:       "teamless candidate rejected while enforcement is on",
			slots:      map[int]int{},
			slotNumber: 1,
			playerID:   intPtr(9),
			teamCount:  2,
			wantReason: RejectPlayerWithoutTeam,
		},
		{
			name:       "single-team event disables the rule",
			slots:      map[int]int{1: 1},
			slotNumber: 2,
			playerID:   intPtr(9),
			teamCount:  1,
		},
		{
			name:       "removal is always permitted",
			slots:      map[int]int{1: 1, 2: 2, 3: 3, 4: 4},
			slotNumber: 2,
			playerID:   nil,
			teamCount:  2,
		},
		{
			name:       "slot out of range",
			slots:      map[int]int{},
			slotNumber: 5,
			playerID:   intPtr(1),
			teamCount:  2,
			wantReason: RejectInvalidSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignment(AssignmentCheck{
				Slots:        tt.slots,
				TeamByPlayer: teamByPlayer,
				TeamCount:    tt.teamCount,
				SlotNumber:   tt.slotNumber,
				PlayerID:     tt.playerID,
			})

			if tt.wantReason == "" {
				assert.NoError(t, err)
				return
			}

			var pairingErr *PairingError
			require.ErrorAs(t, err, &pairingErr)
			assert.Equal(t, tt.wantReason, pairingErr.Reason)
		})
	}
}

func TestValidateAssignment_MixedSideThenSameTeamSucceeds(t *testing.T) {
	// Side A holds a team X player in slot 1. A team Y player is refused
	// for slot 2, another team X player is accepted.
	teamByPlayer := map[int]int{1: 100, 2: 100, 3: 200}
	base := AssignmentCheck{
		Slots:        map[int]int{1: 1},
		TeamByPlayer: teamByPlayer,
		TeamCount:    2,
		SlotNumber:   2,
	}

	rejected := base
	rejected.PlayerID = intPtr(3)
	var pairingErr *PairingError
	require.ErrorAs(t, ValidateAssignment(rejected), &pairingErr)
	assert.Equal(t, RejectMixedSide, pairingErr.Reason)

	accepted := base
	accepted.PlayerID = intPtr(2)
	assert.NoError(t, ValidateAssignment(accepted))
}

func TestValidateAssignment_StatelessAndIdempotent(t *testing.T) {
	check := AssignmentCheck{
		Slots:        map[int]int{1: 1, 2: 2},
		TeamByPlayer: map[int]int{1: 100, 2: 100, 3: 200},
		TeamCount:    2,
		SlotNumber:   3,
		PlayerID:     intPtr(3),
	}

	first := ValidateAssignment(check)
	second := ValidateAssignment(check)
	assert.Equal(t, first, second)
	assert.NoError(t, first)
}
