package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// AllocationPolicy selects how handicap strokes are spread over the course.
type AllocationPolicy string

const (
	// PolicyStandard grants strokes in strict difficulty order, wrapping
	// around for handicaps above the hole count.
	PolicyStandard AllocationPolicy = "standard"
	// PolicyPar3First grants one stroke to each par 3 (hardest first)
	// before falling back to the standard walk over the remaining holes.
	PolicyPar3First AllocationPolicy = "par3_first"
)

var (
	ErrUnknownPolicy  = errors.New("unknown handicap allocation policy")
	ErrNonFiniteInput = errors.New("handicap must be a finite number")
)

// Hole is one course hole. StrokeIndex ranks difficulty, 1 = hardest; it is
// trusted to be a permutation of 1..len(holes) and is not re-validated here.
type Hole struct {
	Number      int
	Par         int
	StrokeIndex int
}

func sortedByStrokeIndex(holes []Hole) []Hole {
	sorted := make([]Hole, len(holes))
	copy(sorted, holes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StrokeIndex < sorted[j].StrokeIndex
	})
	return sorted
}

// ClampHandicap normalizes a raw handicap value against an optional event
// cap. Negative and NaN values collapse to zero; a nil cap leaves the value
// uncapped. This is the precedence helper callers use when resolving a
// participant's effective handicap.
func ClampHandicap(value float64, cap *float64) float64 {
	if math.IsNaN(value) {
		value = 0
	}
	base := math.Max(0, value)
	if cap == nil || math.IsNaN(*cap) {
		return base
	}
	return math.Min(base, math.Max(0, *cap))
}

// AllocateStrokes maps a handicap onto per-hole extra strokes under the
// given policy. The returned map has an entry for every hole in holes and
// its values always sum to floor(max(0, handicap)).
//
// A negative handicap is clamped to zero rather than rejected; an unknown
// policy or a non-finite handicap is an error.
func AllocateStrokes(holes []Hole, handicap float64, policy AllocationPolicy) (map[int]int, error) {
	if math.IsNaN(handicap) || math.IsInf(handicap, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrNonFiniteInput, handicap)
	}
	switch policy {
	case PolicyStandard, PolicyPar3First:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}

	allocation := make(map[int]int, len(holes))
	for _, hole := range holes {
		allocation[hole.Number] = 0
	}

	remaining := int(math.Floor(math.Max(0, handicap)))
	if remaining == 0 || len(holes) == 0 {
		return allocation, nil
	}

	if policy == PolicyPar3First {
		var par3, rest []Hole
		for _, hole := range holes {
			if hole.Par == 3 {
				par3 = append(par3, hole)
			} else {
				rest = append(rest, hole)
			}
		}

		// One stroke per par 3 in difficulty order, then round-robin over
		// the remaining holes. On an all-par-3 course the walk continues
		// over the par 3s so no stroke is ever dropped.
		for _, hole := range sortedByStrokeIndex(par3) {
			if remaining == 0 {
				break
			}
			allocation[hole.Number]++
			remaining--
		}
		if len(rest) == 0 {
			rest = par3
		}
		for idx, sorted := 0, sortedByStrokeIndex(rest); remaining > 0; idx++ {
			allocation[sorted[idx%len(sorted)].Number]++
			remaining--
		}
		return allocation, nil
	}

	byIndex := sortedByStrokeIndex(holes)
	for idx := 0; remaining > 0; idx++ {
		allocation[byIndex[idx%len(byIndex)].Number]++
		remaining--
	}
	return allocation, nil
}
