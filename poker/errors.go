package poker

import "errors"

// ErrInvalidHand reports a hand that is not five distinct cards of the deck.
var ErrInvalidHand = errors.New("invalid hand")
