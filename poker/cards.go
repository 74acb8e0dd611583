package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades], deuce first within each suit.
type Card uint64

// CardSet holds any number of cards, one bit per card. Because the encoding
// ignores order it doubles as the canonical key for a set of cards.
type CardSet uint64

// Rank is a card rank from Two (2) to Ace (14).
type Rank uint8

// Suit is one of the four card suits.
type Suit uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	// DeckSize is the number of cards in a standard deck.
	DeckSize = 52
	// HandSize is the number of cards in a draw poker hand.
	HandSize = 5

	rankMask = 0x1FFF
	deckMask = CardSet(1)<<DeckSize - 1
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from rank and suit. It returns 0 (no card) for
// values outside the deck.
func NewCard(rank Rank, suit Suit) Card {
	if rank < Two || rank > Ace || suit > Spades {
		return 0
	}
	return Card(1) << (uint(suit)*13 + uint(rank-Two))
}

// Valid reports whether c is exactly one card of the deck.
func (c Card) Valid() bool {
	return c != 0 && c&(c-1) == 0 && CardSet(c)&^deckMask == 0
}

// index returns the bit position (0-51) of the card.
func (c Card) index() uint {
	return uint(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card.
func (c Card) Rank() Rank {
	return Rank(c.index()%13) + Two
}

// Suit returns the suit of the card.
func (c Card) Suit() Suit {
	return Suit(c.index() / 13)
}

// String returns the two-character representation (e.g. "As", "Td").
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// String returns the rank character used in card notation.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Name returns the plural English name of the rank, e.g. "Jacks".
func (r Rank) Name() string {
	switch r {
	case Ace:
		return "Aces"
	case King:
		return "Kings"
	case Queen:
		return "Queens"
	case Jack:
		return "Jacks"
	case Ten:
		return "Tens"
	case Nine:
		return "Nines"
	case Eight:
		return "Eights"
	case Seven:
		return "Sevens"
	case Six:
		return "Sixes"
	case Five:
		return "Fives"
	case Four:
		return "Fours"
	case Three:
		return "Threes"
	case Two:
		return "Twos"
	default:
		return "Unknown"
	}
}

func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the unicode suit glyph.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// NewCardSet creates a set from the given cards.
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs |= CardSet(c)
	}
	return cs
}

// Add adds a card to the set.
func (cs *CardSet) Add(c Card) {
	*cs |= CardSet(c)
}

// Contains checks if the set holds a specific card.
func (cs CardSet) Contains(c Card) bool {
	return cs&CardSet(c) != 0
}

// Count returns the number of cards in the set.
func (cs CardSet) Count() int {
	return bits.OnesCount64(uint64(cs))
}

// SuitMask returns the ranks present in one suit as a 13-bit mask (bit 0 = deuce).
func (cs CardSet) SuitMask(s Suit) uint16 {
	return uint16(cs>>(uint(s)*13)) & rankMask
}

// RankMask returns the ranks present in any suit.
func (cs CardSet) RankMask() uint16 {
	return cs.SuitMask(Clubs) | cs.SuitMask(Diamonds) | cs.SuitMask(Hearts) | cs.SuitMask(Spades)
}

// Cards returns the cards in the set in deck order.
func (cs CardSet) Cards() []Card {
	cards := make([]Card, 0, cs.Count())
	for rest := uint64(cs); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// ParseCard parses a string like "As", "10h" or "K♠" into a Card.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty card string")
	}

	rankPart, suitPart := s[:1], s[1:]
	if strings.HasPrefix(s, "10") {
		rankPart, suitPart = "T", s[2:]
	}

	rank, err := parseRank(rankPart[0])
	if err != nil {
		return 0, fmt.Errorf("invalid card %q: %w", s, err)
	}
	suit, err := parseSuit(suitPart)
	if err != nil {
		return 0, fmt.Errorf("invalid card %q: %w", s, err)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses a run of card notation such as "AsKsQsJsTs" or
// "7♠ 7♥ A♣ K♦ Q♠". Whitespace and commas between cards are ignored.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	var cards []Card
	for _, field := range fields {
		for len(field) > 0 {
			n := tokenLength(field)
			card, err := ParseCard(field[:n])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			field = field[n:]
		}
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// tokenLength returns the byte length of the first card token in s.
func tokenLength(s string) int {
	n := 1
	if strings.HasPrefix(s, "10") {
		n = 2
	}
	if n >= len(s) {
		return len(s)
	}
	for _, sym := range []string{"♣", "♦", "♥", "♠"} {
		if strings.HasPrefix(s[n:], sym) {
			return n + len(sym)
		}
	}
	return n + 1
}

func parseRank(c byte) (Rank, error) {
	if i := strings.IndexByte(rankChars, upper(c)); i >= 0 {
		return Two + Rank(i), nil
	}
	return 0, fmt.Errorf("unknown rank '%c'", c)
}

func parseSuit(s string) (Suit, error) {
	switch s {
	case "c", "C", "♣":
		return Clubs, nil
	case "d", "D", "♦":
		return Diamonds, nil
	case "h", "H", "♥":
		return Hearts, nil
	case "s", "S", "♠":
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", s)
	}
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
