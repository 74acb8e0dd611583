package poker

import (
	"testing"

	phpoker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		hand     string
		category Category
		kickers  []Rank
	}{
		{"royal flush", "Ts Js Qs Ks As", RoyalFlush, []Rank{Ace, King, Queen, Jack, Ten}},
		{"straight flush", "9h Th Jh Qh Kh", StraightFlush, []Rank{King, Queen, Jack, Ten, Nine}},
		{"steel wheel", "Ad 2d 3d 4d 5d", StraightFlush, []Rank{Five, Four, Three, Two, Ace}},
		{"four of a kind", "8s 8h 8d 8c 2s", FourOfAKind, []Rank{Eight, Eight, Eight, Eight, Two}},
		{"full house", "3s 3h 3d Kc Ks", FullHouse, []Rank{Three, Three, Three, King, King}},
		{"flush", "2h 7h 9h Jh Ah", Flush, []Rank{Ace, Jack, Nine, Seven, Two}},
		{"broadway straight", "Ts Jh Qd Kc As", Straight, []Rank{Ace, King, Queen, Jack, Ten}},
		{"wheel straight", "5s 4h 3d 2c As", Straight, []Rank{Five, Four, Three, Two, Ace}},
		{"three of a kind", "Qs Qh Qd 4c 2s", ThreeOfAKind, []Rank{Queen, Queen, Queen, Four, Two}},
		{"two pair", "7s 7h 5d 5c 2s", TwoPair, []Rank{Seven, Seven, Five, Five, Two}},
		{"jacks", "Js Jh 9d 4c 2s", JacksOrBetter, []Rank{Jack, Jack, Nine, Four, Two}},
		{"aces", "As Ah 9d 4c 2s", JacksOrBetter, []Rank{Ace, Ace, Nine, Four, Two}},
		{"low pair pays nothing", "9s 9h Jd 4c 2s", HighCard, []Rank{Nine, Nine, Jack, Four, Two}},
		{"tens pay nothing", "Ts Th Ad Kc Qs", HighCard, []Rank{Ten, Ten, Ace, King, Queen}},
		{"high card", "As Kh 9d 4c 2s", HighCard, []Rank{Ace, King, Nine, Four, Two}},
		{"wrap-around is not a straight", "Qs Kh Ad 2c 3s", HighCard, []Rank{Ace, King, Queen, Three, Two}},
		{"four flush", "2s 5s 9s Js Ah", HighCard, []Rank{Ace, Jack, Nine, Five, Two}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Classify(MustParseCards(tc.hand))
			require.NoError(t, err)
			assert.Equal(t, tc.category, got.Category)
			assert.Equal(t, tc.kickers, got.Kickers)
			assert.Equal(t, tc.kickers[0], got.Rank)
		})
	}
}

func TestClassifyOrderIndependent(t *testing.T) {
	t.Parallel()

	a, err := Classify(MustParseCards("Ks 7h 7d Kc 2s"))
	require.NoError(t, err)
	b, err := Classify(MustParseCards("2s Kc 7d 7h Ks"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "Two Pair (Kings and Sevens)", a.String())
}

func TestClassifyInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards []Card
	}{
		{"too few cards", MustParseCards("As Ks Qs Js")},
		{"too many cards", MustParseCards("As Ks Qs Js Ts 9s")},
		{"duplicate card", MustParseCards("As As Qs Js Ts")},
		{"invalid card", []Card{NewCard(Ace, Spades), 0, NewCard(Queen, Spades), NewCard(Jack, Spades), NewCard(Ten, Spades)}},
		{"empty", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Classify(tc.cards)
			assert.ErrorIs(t, err, ErrInvalidHand)
		})
	}
}

func TestClassificationString(t *testing.T) {
	t.Parallel()

	full, err := Classify(MustParseCards("3s 3h 3d Kc Ks"))
	require.NoError(t, err)
	assert.Equal(t, "Full House (Threes full of Kings)", full.String())

	quads, err := Classify(MustParseCards("8s 8h 8d 8c 2s"))
	require.NoError(t, err)
	assert.Equal(t, "Four of a Kind (Eights)", quads.String())

	flush, err := Classify(MustParseCards("2h 7h 9h Jh Ah"))
	require.NoError(t, err)
	assert.Equal(t, "Flush", flush.String())
}

// TestCategoryDistribution classifies every five-card hand and checks the
// category counts and that categories agree with an independent evaluator's ordering.
func TestCategoryDistribution(t *testing.T) {
	if testing.Short() {
		t.Skip("enumerates all 2,598,960 hands")
	}
	t.Parallel()

	deck := FullDeck()
	var counts [NumCategories]int
	var lowest, highest [NumCategories]int16
	for i := range lowest {
		lowest[i] = 1<<15 - 1
		highest[i] = -1 << 15
	}

	converted := make(map[Card]phpoker.Card, DeckSize)
	for _, c := range deck {
		converted[c] = toPaulHankin(t, c)
	}

	var five [5]phpoker.Card
	for combo := range Combinations(deck, HandSize) {
		category := CategoryOf(NewCardSet(combo...))
		counts[category]++

		for i, c := range combo {
			five[i] = converted[c]
		}
		score := phpoker.Eval5(&five)
		lowest[category] = min(lowest[category], score)
		highest[category] = max(highest[category], score)
	}

	assert.Equal(t, [NumCategories]int{
		HighCard:      2062860,
		JacksOrBetter: 337920,
		TwoPair:       123552,
		ThreeOfAKind:  54912,
		Straight:      10200,
		Flush:         5108,
		FullHouse:     3744,
		FourOfAKind:   624,
		StraightFlush: 36,
		RoyalFlush:    4,
	}, counts)

	for c := HighCard; c < RoyalFlush; c++ {
		assert.Less(t, highest[c], lowest[c+1], "%s must rank below %s", c, c+1)
	}
}

func toPaulHankin(t *testing.T, c Card) phpoker.Card {
	suits := map[Suit]phpoker.Suit{
		Clubs:    phpoker.Club,
		Diamonds: phpoker.Diamond,
		Hearts:   phpoker.Heart,
		Spades:   phpoker.Spade,
	}
	rank := phpoker.Rank(c.Rank())
	if c.Rank() == Ace {
		rank = phpoker.Rank(1)
	}
	card, err := phpoker.MakeCard(suits[c.Suit()], rank)
	require.NoError(t, err)
	return card
}
