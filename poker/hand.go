package poker

import (
	"fmt"
	"strings"
)

// Hand is an ordered five-card draw poker hand. Positions matter only for
// mapping hold decisions back to the dealt slots.
type Hand [HandSize]Card

// NewHand builds a hand from exactly five distinct cards.
func NewHand(cards ...Card) (Hand, error) {
	var h Hand
	if len(cards) != HandSize {
		return h, fmt.Errorf("%w: need %d cards, got %d", ErrInvalidHand, HandSize, len(cards))
	}
	if _, err := distinctSet(cards); err != nil {
		return h, err
	}
	copy(h[:], cards)
	return h, nil
}

// ParseHand parses five cards of notation, e.g. "7s 7h Ac Kd Qs".
func ParseHand(s string) (Hand, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Hand{}, fmt.Errorf("%w: %w", ErrInvalidHand, err)
	}
	return NewHand(cards...)
}

// MustParseHand parses a hand and panics on error (for tests)
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse hand '%s': %v", s, err))
	}
	return h
}

// Validate checks the hand invariant: five distinct cards of the deck.
func (h Hand) Validate() error {
	_, err := distinctSet(h[:])
	return err
}

// Set returns the canonical, order-independent encoding of the hand.
func (h Hand) Set() CardSet {
	return NewCardSet(h[:]...)
}

// Cards returns the hand as a slice.
func (h Hand) Cards() []Card {
	return append([]Card(nil), h[:]...)
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
