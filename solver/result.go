package solver

import (
	"time"

	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/poker"
)

// HoldResult is the exact outcome distribution of one hold decision.
type HoldResult struct {
	Pattern HoldPattern
	Held    []poker.Card

	// ExpectedValue is the mean payout multiplier over every possible draw.
	ExpectedValue float64
	// Probabilities holds the chance of finishing in each category; the entries sum to 1.
	Probabilities [poker.NumCategories]float64
	// Counts holds the number of draws finishing in each category.
	Counts [poker.NumCategories]int64
	// Draws is the number of replacement draws enumerated, C(47, discards).
	Draws int64
}

// Probability returns the chance of finishing with category c.
func (r HoldResult) Probability(c poker.Category) float64 {
	return r.Probabilities[c]
}

// PlayResult ranks all 32 hold decisions for a hand.
type PlayResult struct {
	Hand     poker.Hand
	PayTable string

	Optimal HoldResult
	// Alternatives holds the other 31 decisions, best first.
	Alternatives []HoldResult

	Elapsed time.Duration
}

// Ranked returns all 32 decisions, best first.
func (r PlayResult) Ranked() []HoldResult {
	return append([]HoldResult{r.Optimal}, r.Alternatives...)
}

// Find returns the result for a specific pattern.
func (r PlayResult) Find(p HoldPattern) (HoldResult, bool) {
	for _, hr := range r.Ranked() {
		if hr.Pattern == p {
			return hr, true
		}
	}
	return HoldResult{}, false
}

// newHoldResult derives EV and probabilities from per-category counts. The
// arithmetic runs in category order over integer counts, so two holds with the
// same counts always get bit-identical values.
func newHoldResult(p HoldPattern, held []poker.Card, counts [poker.NumCategories]int64, pays paytable.Vector) HoldResult {
	r := HoldResult{Pattern: p, Held: held, Counts: counts}
	for _, n := range counts {
		r.Draws += n
	}
	if r.Draws == 0 {
		return r
	}

	total := 0.0
	for c, n := range counts {
		total += float64(n) * pays[c]
		r.Probabilities[c] = float64(n) / float64(r.Draws)
	}
	r.ExpectedValue = total / float64(r.Draws)
	return r
}
