// Package paytable defines the payout schedules that map a hand category to
// a multiplier of the bet, with the standard Jacks-or-Better presets.
package paytable

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/lox/videopoker/poker"
)

var (
	// ErrInvalidPayTable reports a table with a missing or negative entry.
	ErrInvalidPayTable = errors.New("invalid pay table")
	// ErrUnknownPayTable reports a lookup for a name that is not registered.
	ErrUnknownPayTable = errors.New("unknown pay table")
)

// PayTable maps each hand category to a payout multiplier per coin bet.
type PayTable struct {
	Name    string
	Payouts map[poker.Category]float64
}

// Vector is the dense form of a validated pay table, indexed by category.
type Vector [poker.NumCategories]float64

// New creates a pay table, copying payouts so later changes to the map do not leak in.
func New(name string, payouts map[poker.Category]float64) PayTable {
	return PayTable{Name: name, Payouts: maps.Clone(payouts)}
}

// Validate checks that every category has a finite, non-negative payout.
func (pt PayTable) Validate() error {
	var missing []string
	for _, c := range poker.Categories() {
		v, ok := pt.Payouts[c]
		if !ok {
			missing = append(missing, c.Key())
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s: payout %g for %s is not finite", ErrInvalidPayTable, pt.Name, v, c.Key())
		}
		if v < 0 {
			return fmt.Errorf("%w: %s: negative payout %g for %s", ErrInvalidPayTable, pt.Name, v, c.Key())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s: missing %s", ErrInvalidPayTable, pt.Name, strings.Join(missing, ", "))
	}
	for c := range pt.Payouts {
		if !c.Valid() {
			return fmt.Errorf("%w: %s: unknown category %d", ErrInvalidPayTable, pt.Name, c)
		}
	}
	return nil
}

// Vector validates the table and returns its dense form.
func (pt PayTable) Vector() (Vector, error) {
	var v Vector
	if err := pt.Validate(); err != nil {
		return v, err
	}
	for c, pay := range pt.Payouts {
		v[c] = pay
	}
	return v, nil
}

// Payout returns the multiplier for a category (0 when absent).
func (pt PayTable) Payout(c poker.Category) float64 {
	return pt.Payouts[c]
}

// Clone returns a deep copy of the table under a new name.
func (pt PayTable) Clone(name string) PayTable {
	return New(name, pt.Payouts)
}

func (pt PayTable) String() string {
	return fmt.Sprintf("%s (full house %g, flush %g)", pt.Name, pt.Payout(poker.FullHouse), pt.Payout(poker.Flush))
}

// jacksOrBetter builds the standard schedule with the given full house and flush payouts.
func jacksOrBetter(name string, fullHouse, flush float64) PayTable {
	return PayTable{
		Name: name,
		Payouts: map[poker.Category]float64{
			poker.RoyalFlush:    800,
			poker.StraightFlush: 50,
			poker.FourOfAKind:   25,
			poker.FullHouse:     fullHouse,
			poker.Flush:         flush,
			poker.Straight:      4,
			poker.ThreeOfAKind:  3,
			poker.TwoPair:       2,
			poker.JacksOrBetter: 1,
			poker.HighCard:      0,
		},
	}
}

// NineSix is the full-pay table: full house 9, flush 6.
func NineSix() PayTable { return jacksOrBetter("9/6", 9, 6) }

// EightFive pays 8 for a full house and 5 for a flush.
func EightFive() PayTable { return jacksOrBetter("8/5", 8, 5) }

// SevenFive pays 7 for a full house and 5 for a flush.
func SevenFive() PayTable { return jacksOrBetter("7/5", 7, 5) }

// SixFive pays 6 for a full house and 5 for a flush.
func SixFive() PayTable { return jacksOrBetter("6/5", 6, 5) }

// Presets returns fresh copies of the built-in tables, best paying first.
func Presets() []PayTable {
	return []PayTable{NineSix(), EightFive(), SevenFive(), SixFive()}
}
