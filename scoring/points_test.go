package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standing(key, label string, score *int, rank int) RoundStanding {
	return RoundStanding{
		Entry: Entry{Key: key, Label: label, MemberIDs: []int{1}},
		Score: score,
		Rank:  rank,
	}
}

func TestAggregatePoints_SingleRound(t *testing.T) {
	// Four scored entries, no ties: points 4,3,2,1 summing to 10.
	round := []RoundStanding{
		standing("a", "Alpha", intPtr(68), 1),
		standing("b", "Bravo", intPtr(70), 2),
		standing("c", "Charlie", intPtr(72), 3),
		standing("d", "Delta", intPtr(75), 4),
	}

	overall := AggregatePoints([][]RoundStanding{round})
	require.Len(t, overall, 4)

	sum := 0
	for i, want := range []int{4, 3, 2, 1} {
		assert.Equal(t, want, overall[i].TotalPoints)
		sum += overall[i].TotalPoints
	}
	assert.Equal(t, 10, sum)
}

func TestAggregatePoints_TiesShareRankPoints(t *testing.T) {
	// A and B tie at 70, C trails at 75: ranks 1,1,3 and points 3,3,1.
	round := []RoundStanding{
		standing("a", "Alpha", intPtr(70), 1),
		standing("b", "Bravo", intPtr(70), 1),
		standing("c", "Charlie", intPtr(75), 3),
	}

	overall := AggregatePoints([][]RoundStanding{round})
	require.Len(t, overall, 3)

	assert.Equal(t, 3, overall[0].TotalPoints)
	assert.Equal(t, 3, overall[1].TotalPoints)
	assert.Equal(t, 1, overall[2].TotalPoints)
	// Tied totals order alphabetically.
	assert.Equal(t, "Alpha", overall[0].Entry.Label)
	assert.Equal(t, "Bravo", overall[1].Entry.Label)
}

func TestAggregatePoints_UnscoredEarnNothingButAppear(t *testing.T) {
	round := []RoundStanding{
		standing("a", "Alpha", intPtr(70), 1),
		standing("d", "Delta", nil, 0),
	}

	overall := AggregatePoints([][]RoundStanding{round})
	require.Len(t, overall, 2)

	assert.Equal(t, "Alpha", overall[0].Entry.Label)
	assert.Equal(t, 1, overall[0].TotalPoints, "k=1 scored entry earns 1 point")
	assert.Equal(t, "Delta", overall[1].Entry.Label)
	assert.Zero(t, overall[1].TotalPoints)
}

func TestAggregatePoints_AccumulatesAcrossRounds(t *testing.T) {
	day1 := []RoundStanding{
		standing("a", "Alpha", intPtr(70), 1),
		standing("b", "Bravo", intPtr(72), 2),
		standing("c", "Charlie", intPtr(74), 3),
	}
	day2 := []RoundStanding{
		standing("a", "Alpha", intPtr(80), 2),
		standing("b", "Bravo", intPtr(71), 1),
		standing("c", "Charlie", nil, 0),
	}

	overall := AggregatePoints([][]RoundStanding{day1, day2})
	require.Len(t, overall, 3)

	// Day 1 k=3: Alpha 3, Bravo 2, Charlie 1. Day 2 k=2: Bravo 2, Alpha 1.
	assert.Equal(t, "Alpha", overall[0].Entry.Label)
	assert.Equal(t, 4, overall[0].TotalPoints)
	assert.Equal(t, "Bravo", overall[1].Entry.Label)
	assert.Equal(t, 4, overall[1].TotalPoints)
	assert.Equal(t, "Charlie", overall[2].Entry.Label)
	assert.Equal(t, 1, overall[2].TotalPoints)
}

func TestAggregatePoints_EmptyInput(t *testing.T) {
	assert.Empty(t, AggregatePoints(nil))
	assert.Empty(t, AggregatePoints([][]RoundStanding{{}}))
}
