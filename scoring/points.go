package scoring

import "sort"

// OverallStanding is one row of the cross-round points leaderboard.
type OverallStanding struct {
	Entry       Entry
	TotalPoints int
}

// AggregatePoints converts each round's ranked standings into points and
// accumulates an overall leaderboard. Within a round with k scored entries
// the entry ranked r earns k-r+1 points, tied entries sharing r; unscored
// entries earn nothing for that round but still appear overall with their
// accumulated total. Rank-based points bound the damage of one bad round
// to at most k points, which is the competition format this engine exists
// to preserve.
//
// The result sorts by points descending, labels breaking ties.
func AggregatePoints(rounds [][]RoundStanding) []OverallStanding {
	totals := make(map[string]int)
	entryByKey := make(map[string]Entry)
	var order []string

	for _, standings := range rounds {
		scored := 0
		for _, row := range standings {
			if _, seen := entryByKey[row.Entry.Key]; !seen {
				entryByKey[row.Entry.Key] = row.Entry
				order = append(order, row.Entry.Key)
			}
			if row.Score != nil {
				scored++
			}
		}
		for _, row := range standings {
			if row.Score == nil {
				continue
			}
			totals[row.Entry.Key] += scored - row.Rank + 1
		}
	}

	overall := make([]OverallStanding, 0, len(order))
	for _, key := range order {
		overall = append(overall, OverallStanding{
			Entry:       entryByKey[key],
			TotalPoints: totals[key],
		})
	}

	sort.SliceStable(overall, func(i, j int) bool {
		if overall[i].TotalPoints != overall[j].TotalPoints {
			return overall[i].TotalPoints > overall[j].TotalPoints
		}
		return overall[i].Entry.Label < overall[j].Entry.Label
	})
	return overall
}
