package scoring

// NetTotal applies a stroke allocation to a sparse gross scorecard and
// returns the net total over the holes actually played. Unscored holes
// contribute nothing, which keeps in-progress rounds comparable.
//
// When holes is empty the course has not been configured yet and the raw
// gross sum is returned instead; that fallback is deliberate, not an error.
// The result is not clamped, so extreme inputs can produce a negative net.
func NetTotal(holeScores map[int]int, holes []Hole, handicap float64, policy AllocationPolicy) (int, error) {
	if len(holeScores) == 0 {
		return 0, nil
	}

	if len(holes) == 0 {
		total := 0
		for _, gross := range holeScores {
			total += gross
		}
		return total, nil
	}

	allocation, err := AllocateStrokes(holes, handicap, policy)
	if err != nil {
		return 0, err
	}

	total := 0
	for hole, gross := range holeScores {
		total += gross - allocation[hole]
	}
	return total, nil
}
