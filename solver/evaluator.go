package solver

import (
	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/poker"
)

// Evaluator computes exact hold results by enumerating every replacement draw.
type Evaluator struct {
	cache *Cache
}

// NewEvaluator creates an evaluator. A nil cache disables memoization; results
// are identical either way.
func NewEvaluator(cache *Cache) *Evaluator {
	return &Evaluator{cache: cache}
}

// Cache returns the evaluator's cache, which may be nil.
func (e *Evaluator) Cache() *Cache {
	return e.cache
}

// Evaluate returns the exact result of holding pattern from hand under table.
// Inputs are validated before any enumeration begins.
func (e *Evaluator) Evaluate(hand poker.Hand, pattern HoldPattern, table paytable.PayTable) (HoldResult, error) {
	if err := pattern.Validate(); err != nil {
		return HoldResult{}, err
	}
	pays, err := table.Vector()
	if err != nil {
		return HoldResult{}, err
	}
	if err := hand.Validate(); err != nil {
		return HoldResult{}, err
	}
	return e.evaluate(hand, pattern, pays), nil
}

// evaluate assumes validated inputs.
func (e *Evaluator) evaluate(hand poker.Hand, pattern HoldPattern, pays paytable.Vector) HoldResult {
	held, _ := pattern.Split(hand)
	key := drawKey{hand: hand.Set(), held: poker.NewCardSet(held...)}

	counts, ok := e.cache.counts(key)
	if !ok {
		counts = e.enumerate(key, pattern.Discards())
		e.cache.storeCounts(key, counts)
	}
	return newHoldResult(pattern, held, counts, pays)
}

// enumerate counts final categories over every draw of discards cards from
// the cards not dealt.
func (e *Evaluator) enumerate(key drawKey, discards int) [poker.NumCategories]int64 {
	var counts [poker.NumCategories]int64
	if discards == 0 {
		counts[e.cache.category(key.hand)] = 1
		return counts
	}

	// The dealt hand is validated, so the remaining deck cannot fail.
	pool, _ := poker.RemainingDeck(key.hand.Cards())
	for draw := range poker.Combinations(pool, discards) {
		final := key.held
		for _, c := range draw {
			final |= poker.CardSet(c)
		}
		counts[poker.CategoryOf(final)]++
	}
	return counts
}
