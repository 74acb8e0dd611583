package poker

import (
	"fmt"
	"math/rand"
)

// FullDeck returns the 52 cards of a standard deck, clubs first, deuce to ace within each suit.
func FullDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// RemainingDeck returns the cards of FullDeck that are not in cards, in deck
// order. It accepts partial hands; duplicate or invalid cards fail with ErrInvalidHand.
func RemainingDeck(cards []Card) ([]Card, error) {
	used, err := distinctSet(cards)
	if err != nil {
		return nil, err
	}
	return remaining(used), nil
}

func remaining(used CardSet) []Card {
	return (deckMask &^ used).Cards()
}

// distinctSet folds cards into a set, rejecting duplicates and invalid cards.
func distinctSet(cards []Card) (CardSet, error) {
	var cs CardSet
	for i, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: invalid card at position %d", ErrInvalidHand, i)
		}
		if cs.Contains(c) {
			return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		cs.Add(c)
	}
	return cs, nil
}

// Deck represents a standard 52-card deck
type Deck struct {
	cards [DeckSize]Card // Fixed size array
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	copy(d.cards[:], FullDeck())
	d.Shuffle()
	return d
}

// Shuffle shuffles the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealHand deals the next five cards as a Hand.
func (d *Deck) DealHand() (Hand, error) {
	cards := d.Deal(HandSize)
	if cards == nil {
		return Hand{}, fmt.Errorf("deck exhausted: %d cards remaining", d.CardsRemaining())
	}
	return NewHand(cards...)
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
