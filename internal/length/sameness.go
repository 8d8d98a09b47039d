package length

import "math"

// Sameness scores how uniform a set of lengths is, in (0, 1].
//
// The score is 1/(1+cv) where cv is the coefficient of variation (population
// standard deviation over mean). Identical lengths give 1; any spread lowers
// the score, and more spread lowers it further. An empty set scores 0. A set
// whose mean is zero (every post empty) is perfectly uniform and scores 1.
func Sameness(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}

	n := float64(len(counts))
	var sum float64
	for _, c := range counts {
		sum += float64(c)
	}
	mean := sum / n
	if mean == 0 {
		return 1
	}

	var sq float64
	for _, c := range counts {
		d := float64(c) - mean
		sq += d * d
	}
	cv := math.Sqrt(sq/n) / mean
	return 1 / (1 + cv)
}
