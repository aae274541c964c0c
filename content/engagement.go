package content

import "strings"

// EngagementDisclaimer accompanies every estimate.
const EngagementDisclaimer = "Simulated estimate for illustration only; not a prediction of actual engagement."

// Estimator produces simulated engagement numbers.
type Estimator struct {
	rnd *lockedRand
}

// NewEstimator returns an Estimator. A zero seed uses the current time.
func NewEstimator(seed uint64) *Estimator {
	return &Estimator{rnd: newLockedRand(seed)}
}

// Estimate draws base values from fixed ranges and scales them by score/100, by 1.5
// when the text asks a question and by 1.2 when it contains emoji.
func (e *Estimator) Estimate(text string, score int) EstimatedEngagement {
	multiplier := float64(score) / 100
	if strings.Contains(text, "?") {
		multiplier *= 1.5
	}
	if HasEmoji(text) {
		multiplier *= 1.2
	}

	draw := func(lo, span float64) int {
		return int((lo + e.rnd.Float64()*span) * multiplier)
	}
	return EstimatedEngagement{
		Engagement: Engagement{
			Likes:    draw(50, 100),
			Comments: draw(10, 30),
			Shares:   draw(5, 15),
			Views:    draw(1000, 2000),
		},
		Simulated:  true,
		Disclaimer: EngagementDisclaimer,
	}
}
