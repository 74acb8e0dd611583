package solver

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/lox/videopoker/poker"
)

// ErrInvalidHoldPattern reports a hold pattern outside [0, 31].
var ErrInvalidHoldPattern = errors.New("invalid hold pattern")

// HoldPattern is a 5-bit mask; bit i set keeps the card at position i.
type HoldPattern int

const (
	// NumPatterns is the number of distinct hold decisions for a five-card hand.
	NumPatterns = 1 << poker.HandSize

	// DiscardAll draws five new cards.
	DiscardAll HoldPattern = 0
	// KeepAll stands pat.
	KeepAll HoldPattern = NumPatterns - 1
)

// Validate checks the pattern lies in [0, 31].
func (p HoldPattern) Validate() error {
	if p < 0 || p >= NumPatterns {
		return fmt.Errorf("%w: %d", ErrInvalidHoldPattern, int(p))
	}
	return nil
}

// Count returns the number of cards held.
func (p HoldPattern) Count() int {
	return bits.OnesCount8(uint8(p))
}

// Discards returns the number of cards drawn.
func (p HoldPattern) Discards() int {
	return poker.HandSize - p.Count()
}

// Keeps reports whether the card at position i is held.
func (p HoldPattern) Keeps(i int) bool {
	return p&(1<<i) != 0
}

// Split partitions a hand into held and discarded cards, preserving order.
func (p HoldPattern) Split(h poker.Hand) (held, discarded []poker.Card) {
	for i, c := range h {
		if p.Keeps(i) {
			held = append(held, c)
		} else {
			discarded = append(discarded, c)
		}
	}
	return held, discarded
}

// String renders the pattern by position, "H" for hold and "-" for discard,
// e.g. "HH---" keeps the first two cards.
func (p HoldPattern) String() string {
	var b strings.Builder
	for i := range poker.HandSize {
		if p.Keeps(i) {
			b.WriteByte('H')
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// ParseHoldPattern reads a pattern either positionally ("HH--H", with H/X/1
// for hold and -/./0/_ for discard) or as the list of cards to hold, which must
// all be in the hand. An empty string or "none" discards everything.
func ParseHoldPattern(s string, h poker.Hand) (HoldPattern, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none":
		return DiscardAll, nil
	case "all":
		return KeepAll, nil
	}

	if p, ok := parsePositional(s); ok {
		return p, nil
	}

	cards, err := poker.ParseCards(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidHoldPattern, s, err)
	}
	var p HoldPattern
	for _, c := range cards {
		i := position(h, c)
		if i < 0 {
			return 0, fmt.Errorf("%w: %s is not in the hand", ErrInvalidHoldPattern, c)
		}
		if p.Keeps(i) {
			return 0, fmt.Errorf("%w: %s listed twice", ErrInvalidHoldPattern, c)
		}
		p |= 1 << i
	}
	return p, nil
}

func parsePositional(s string) (HoldPattern, bool) {
	if len(s) != poker.HandSize {
		return 0, false
	}
	var p HoldPattern
	for i := range len(s) {
		switch s[i] {
		case 'H', 'h', 'X', 'x', '1':
			p |= 1 << i
		case '-', '.', '0', '_':
		default:
			return 0, false
		}
	}
	return p, true
}

func position(h poker.Hand, c poker.Card) int {
	for i, hc := range h {
		if hc == c {
			return i
		}
	}
	return -1
}

