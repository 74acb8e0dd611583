package poker

import (
	"fmt"
	"math/bits"
	"slices"
)

const (
	wheelMask = 0x100F // Ace + 2-3-4-5
	royalMask = 0x1F00 // T-J-Q-K-A
	jackBit   = 1 << (Jack - Two)
)

// Classification is the result of ranking a five-card hand.
type Classification struct {
	Category Category
	// Kickers lists the ranks for display and tie-breaking: grouped ranks first
	// (largest group, then highest rank), straights from the top card down with
	// the wheel as 5-4-3-2-A.
	Kickers []Rank
	// Rank is the primary rank of the hand: the rank of the quad, trip or top
	// pair, or the top card of a straight or high-card hand.
	Rank Rank
}

func (c Classification) String() string {
	switch c.Category {
	case FourOfAKind, ThreeOfAKind, JacksOrBetter:
		return fmt.Sprintf("%s (%s)", c.Category, c.Rank.Name())
	case FullHouse:
		return fmt.Sprintf("%s (%s full of %s)", c.Category, c.Rank.Name(), c.Kickers[3].Name())
	case TwoPair:
		return fmt.Sprintf("%s (%s and %s)", c.Category, c.Rank.Name(), c.Kickers[2].Name())
	default:
		return c.Category.String()
	}
}

// Classify ranks exactly five distinct cards. It fails with ErrInvalidHand
// for any other input.
func Classify(cards []Card) (Classification, error) {
	if len(cards) != HandSize {
		return Classification{}, fmt.Errorf("%w: need %d cards, got %d", ErrInvalidHand, HandSize, len(cards))
	}
	cs, err := distinctSet(cards)
	if err != nil {
		return Classification{}, err
	}

	category := CategoryOf(cs)
	kickers := kickersOf(cs, category)
	return Classification{Category: category, Kickers: kickers, Rank: kickers[0]}, nil
}

// CategoryOf classifies a set of exactly five cards without validation.
// It is the hot path of draw enumeration.
func CategoryOf(cs CardSet) Category {
	s0, s1, s2, s3 := cs.SuitMask(Clubs), cs.SuitMask(Diamonds), cs.SuitMask(Hearts), cs.SuitMask(Spades)
	ranks := s0 | s1 | s2 | s3

	switch bits.OnesCount16(ranks) {
	case 5:
		flush := ranks == s0 || ranks == s1 || ranks == s2 || ranks == s3
		straight := straightHighMask(ranks) > 0
		switch {
		case flush && straight && ranks == royalMask:
			return RoyalFlush
		case flush && straight:
			return StraightFlush
		case flush:
			return Flush
		case straight:
			return Straight
		default:
			return HighCard
		}
	case 4:
		pairs := (s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)
		if pairs >= jackBit {
			return JacksOrBetter
		}
		return HighCard
	case 3:
		if s0&s1&s2|s0&s1&s3|s0&s2&s3|s1&s2&s3 != 0 {
			return ThreeOfAKind
		}
		return TwoPair
	default:
		if s0&s1&s2&s3 != 0 {
			return FourOfAKind
		}
		return FullHouse
	}
}

// kickersOf orders the ranks of a five-card set for display.
func kickersOf(cs CardSet, category Category) []Rank {
	ranks := cs.RankMask()
	switch category {
	case Straight, StraightFlush, RoyalFlush:
		high := Two + Rank(straightHighMask(ranks))
		kickers := make([]Rank, 0, HandSize)
		for r := high; len(kickers) < HandSize-1; r-- {
			kickers = append(kickers, r)
		}
		if high == Five {
			return append(kickers, Ace)
		}
		return append(kickers, high-HandSize+1)
	}

	var counts [Ace + 1]int
	for _, c := range cs.Cards() {
		counts[c.Rank()]++
	}

	kickers := make([]Rank, 0, HandSize)
	for _, c := range cs.Cards() {
		kickers = append(kickers, c.Rank())
	}
	slices.SortFunc(kickers, func(a, b Rank) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return int(b) - int(a)
	})
	return kickers
}

// straightHighMask returns the high-card rank offset (0 = deuce) of the
// straight present in the mask, or 0 if there is none. The wheel reports 3 (the five).
func straightHighMask(mask uint16) uint8 {
	mask &= rankMask

	if mask&wheelMask == wheelMask {
		return 3
	}

	// Bitwise cascade identifies consecutive sequences in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq == 0 {
		return 0
	}

	low := uint8(bits.Len16(seq) - 1)
	return low + 4
}
