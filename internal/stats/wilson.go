package stats

import "math"

// Confidence used for every success-rate interval on the dashboard.
const Confidence = 0.95

// Rate is a binomial success rate with its Wilson score interval.
type Rate struct {
	Successes int     `json:"successes"`
	Trials    int     `json:"trials"`
	Value     float64 `json:"value"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
}

// SuccessRate returns successes/trials with a Wilson interval at Confidence.
// Zero trials yields the zero Rate.
func SuccessRate(successes, trials int) Rate {
	if trials == 0 {
		return Rate{}
	}
	lower, upper := WilsonInterval(successes, trials, Confidence)
	return Rate{
		Successes: successes,
		Trials:    trials,
		Value:     float64(successes) / float64(trials),
		Lower:     lower,
		Upper:     upper,
	}
}

// WilsonInterval calculates the Wilson score confidence interval
// for a binomial proportion. It behaves better than the normal
// approximation for the small per-site launch counts.
func WilsonInterval(successes, trials int, confidence float64) (lower, upper float64) {
	if trials == 0 {
		return 0, 0
	}

	z := ZScore(confidence)
	n := float64(trials)
	p := float64(successes) / n
	z2 := z * z

	denominator := 1 + z2/n
	center := (p + z2/(2*n)) / denominator
	spread := (z / denominator) * math.Sqrt(p*(1-p)/n+z2/(4*n*n))

	return math.Max(0, center-spread), math.Min(1, center+spread)
}

// ZScore returns the two-sided z-score for the common confidence levels.
// Anything below 0.80 falls back to 0.80.
func ZScore(confidence float64) float64 {
	switch {
	case confidence >= 0.99:
		return 2.576
	case confidence >= 0.95:
		return 1.96
	case confidence >= 0.90:
		return 1.645
	case confidence >= 0.85:
		return 1.44
	default:
		return 1.282
	}
}
