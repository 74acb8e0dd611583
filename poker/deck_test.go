package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullDeck(t *testing.T) {
	t.Parallel()

	cards := FullDeck()
	require.Len(t, cards, DeckSize)
	assert.Equal(t, DeckSize, NewCardSet(cards...).Count(), "all cards unique")
	for _, c := range cards {
		assert.True(t, c.Valid())
	}
}

func TestRemainingDeck(t *testing.T) {
	t.Parallel()

	hand := MustParseCards("7s 7h Ac Kd Qs")
	rest, err := RemainingDeck(hand)
	require.NoError(t, err)
	require.Len(t, rest, 47)

	restSet := NewCardSet(rest...)
	for _, c := range hand {
		assert.False(t, restSet.Contains(c))
	}
	assert.Equal(t, DeckSize, (restSet | NewCardSet(hand...)).Count())

	partial, err := RemainingDeck(hand[:2])
	require.NoError(t, err)
	assert.Len(t, partial, 50)

	_, err = RemainingDeck(MustParseCards("7s 7s"))
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = RemainingDeck([]Card{0})
	assert.ErrorIs(t, err, ErrInvalidHand)
}

func TestDeckDeal(t *testing.T) {
	t.Parallel()

	d := NewDeck(rand.New(rand.NewSource(42)))
	assert.Equal(t, DeckSize, d.CardsRemaining())

	seen := CardSet(0)
	for d.CardsRemaining() >= HandSize {
		h, err := d.DealHand()
		require.NoError(t, err)
		for _, c := range h {
			assert.False(t, seen.Contains(c), "card %s dealt twice", c)
			seen.Add(c)
		}
	}
	assert.Equal(t, 2, d.CardsRemaining())

	_, err := d.DealHand()
	assert.Error(t, err)
	assert.Nil(t, d.Deal(3))
}

func TestDeckDeterministicShuffle(t *testing.T) {
	t.Parallel()

	a := NewDeck(rand.New(rand.NewSource(7)))
	b := NewDeck(rand.New(rand.NewSource(7)))
	assert.Equal(t, a.Deal(10), b.Deal(10))

	a.Shuffle()
	assert.Equal(t, DeckSize, a.CardsRemaining())
}
