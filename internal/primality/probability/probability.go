// Package probability converts algorithm-specific error bounds into
// human-meaningful confidence figures, and back. Everything here is pure and
// stateless.
package probability

import (
	"fmt"
	"math"

	"primelab/internal/primality/models"
)

// maxRecommendRounds caps the incremental search in RecommendRounds. Hitting
// it returns the documented fallback rather than searching forever.
const maxRecommendRounds = 1000

// fallbackRounds is returned when the recommendation search hits its cap.
const fallbackRounds = 100

// ErrorBound returns the per-run probability that the given algorithm
// reports "probably prime" for a composite after the given number of rounds.
// Deterministic algorithms have a zero bound.
func ErrorBound(id models.AlgorithmID, rounds int) float64 {
	if rounds < 1 {
		rounds = 1
	}
	switch id {
	case models.AlgorithmFermat:
		return math.Pow(0.5, float64(rounds))
	case models.AlgorithmMillerRabin:
		return math.Pow(4, -float64(rounds))
	default:
		return 0
	}
}

// Reliability returns the confidence percentage for a probable-prime verdict
// after the given rounds: (1 - error) * 100. Deterministic algorithms report
// 100 outright.
func Reliability(id models.AlgorithmID, rounds int) float64 {
	e := ErrorBound(id, rounds)
	if e == 0 {
		return 100
	}
	return (1 - e) * 100
}

// RecommendRounds searches upward from one round for the smallest count
// whose error bound meets the target reliability percentage. The search is
// capped; capped reports whether the fallback value was returned instead of
// a computed one.
func RecommendRounds(id models.AlgorithmID, targetReliability float64) (rounds int, capped bool) {
	if ErrorBound(id, 1) == 0 {
		// Deterministic: one pass is already certain.
		return 1, false
	}

	targetError := (100 - targetReliability) / 100
	for k := 1; k <= maxRecommendRounds; k++ {
		if ErrorBound(id, k) <= targetError {
			return k, false
		}
	}
	return fallbackRounds, true
}

// FormatReliability renders a confidence percentage for display. Figures
// close to certainty collapse to threshold labels so twelve nines don't
// masquerade as exactly 100%.
func FormatReliability(p float64) string {
	switch {
	case p >= 99.999:
		return "> 99.999%"
	case p >= 99.99:
		return "> 99.99%"
	case p/100 < 0.0001:
		return fmt.Sprintf("%.4e%%", p)
	default:
		return fmt.Sprintf("%.4f%%", p)
	}
}
