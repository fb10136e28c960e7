package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetTotal(t *testing.T) {
	holes := testCourse()

	tests := []struct {
		name       string
		holeScores map[int]int
		holes      []Hole
		handicap   float64
		want       int
	}{
		{
			name:       "full card minus nine allocated strokes",
			holeScores: fullCard(5), // 18 holes, 5 gross each
			holes:      holes,
			handicap:   9,
			want:       18*5 - 9,
		},
		{
			name:       "partial card counts only played holes",
			holeScores: map[int]int{1: 5, 2: 4, 3: 6},
			holes:      holes,
			handicap:   9,
			// Holes 1-3 carry stroke indexes 1-3, one stroke each.
			want: (5 - 1) + (4 - 1) + (6 - 1),
		},
		{
			name:       "missing course falls back to gross sum",
			holeScores: map[int]int{1: 5, 2: 4, 7: 3},
			holes:      nil,
			handicap:   12,
			want:       12,
		},
		{
			name:       "scorecard hole outside the course counts gross",
			holeScores: map[int]int{1: 5, 19: 4},
			holes:      holes,
			handicap:   1,
			want:       (5 - 1) + 4,
		},
		{
			name:       "empty card is zero",
			holeScores: nil,
			holes:      holes,
			handicap:   9,
			want:       0,
		},
		{
			name:       "extreme handicap may push the net negative",
			holeScores: map[int]int{1: 3},
			holes:      holes,
			handicap:   36,
			want:       3 - 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NetTotal(tt.holeScores, tt.holes, tt.handicap, PolicyStandard)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNetTotal_InvalidPolicy(t *testing.T) {
	_, err := NetTotal(map[int]int{1: 4}, testCourse(), 9, AllocationPolicy("bogus"))
	require.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestNetTotal_Idempotent(t *testing.T) {
	card := map[int]int{3: 4, 9: 5, 14: 6}
	holes := testCourse(5, 11, 14, 17)

	first, err := NetTotal(card, holes, 11.4, PolicyPar3First)
	require.NoError(t, err)
	second, err := NetTotal(card, holes, 11.4, PolicyPar3First)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func fullCard(grossPerHole int) map[int]int {
	card := make(map[int]int, 18)
	for n := 1; n <= 18; n++ {
		card[n] = grossPerHole
	}
	return card
}
