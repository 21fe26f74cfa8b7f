// Package confidence classifies extraction confidence scores into
// review tiers.
package confidence

// Tier is the classification of a confidence score.
type Tier string

// Confidence tiers.
const (
	High   Tier = "high"
	Medium Tier = "medium"
	Low    Tier = "low"
)

// Tier thresholds. Boundary values belong to the higher tier.
const (
	highThreshold   = 0.9
	mediumThreshold = 0.7
)

// Classify maps a confidence score to its tier. Pure and total: any
// score outside [0,1] still lands in a tier rather than failing.
func Classify(score float64) Tier {
	switch {
	case score >= highThreshold:
		return High
	case score >= mediumThreshold:
		return Medium
	default:
		return Low
	}
}

// Hint returns the presentation hint consumed by rendering.
func (t Tier) Hint() string {
	switch t {
	case High:
		return "green"
	case Medium:
		return "amber"
	default:
		return "red"
	}
}

// NeedsReview reports whether a field in this tier starts pre-flagged
// for reviewer attention.
func (t Tier) NeedsReview() bool {
	return t == Low
}
