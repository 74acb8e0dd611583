package server

import (
	"encoding/json"
	"time"

	"github.com/lox/videopoker/poker"
	"github.com/lox/videopoker/solver"
)

// MessageType names the kind of a WebSocket message.
type MessageType string

const (
	// Client → Server
	MessageTypeSolve MessageType = "solve"

	// Server → Client
	MessageTypeResult     MessageType = "result"
	MessageTypeHoldResult MessageType = "hold_result"
	MessageTypeError      MessageType = "error"
)

// Error codes carried by error messages.
const (
	ErrCodeInvalidMessage  = "invalid_message"
	ErrCodeInvalidHand     = "invalid_hand"
	ErrCodeInvalidHold     = "invalid_hold_pattern"
	ErrCodeInvalidPayTable = "invalid_pay_table"
	ErrCodeUnknownPayTable = "unknown_pay_table"
	ErrCodeTimeout         = "timeout"
	ErrCodeInternal        = "internal_error"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the given timestamp
func NewMessage(messageType MessageType, requestID string, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
		RequestID: requestID,
	}, nil
}

// SolveData asks for the ranked decisions of a hand, or for a single
// decision when Hold is set.
type SolveData struct {
	Hand     string `json:"hand"`
	PayTable string `json:"paytable,omitempty"`
	Hold     string `json:"hold,omitempty"`
}

// HoldData describes one hold decision.
type HoldData struct {
	Pattern       string             `json:"pattern"`
	Held          []string           `json:"held"`
	ExpectedValue float64            `json:"ev"`
	Draws         int64              `json:"draws"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// ResultData is the reply to a solve request.
type ResultData struct {
	Hand         string     `json:"hand"`
	PayTable     string     `json:"paytable"`
	Optimal      HoldData   `json:"optimal"`
	Alternatives []HoldData `json:"alternatives"`
	ElapsedMs    float64    `json:"elapsedMs"`
}

// HoldResultData is the reply to a single-decision request.
type HoldResultData struct {
	Hand     string   `json:"hand"`
	PayTable string   `json:"paytable"`
	Result   HoldData `json:"result"`
}

// ErrorData reports a failed request.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newHoldData(r solver.HoldResult) HoldData {
	held := make([]string, len(r.Held))
	for i, c := range r.Held {
		held[i] = c.String()
	}

	probs := make(map[string]float64)
	for _, c := range poker.Categories() {
		if p := r.Probability(c); p > 0 {
			probs[c.Key()] = p
		}
	}

	return HoldData{
		Pattern:       r.Pattern.String(),
		Held:          held,
		ExpectedValue: r.ExpectedValue,
		Draws:         r.Draws,
		Probabilities: probs,
	}
}

func newResultData(play solver.PlayResult) ResultData {
	alts := make([]HoldData, len(play.Alternatives))
	for i, r := range play.Alternatives {
		alts[i] = newHoldData(r)
	}
	return ResultData{
		Hand:         play.Hand.String(),
		PayTable:     play.PayTable,
		Optimal:      newHoldData(play.Optimal),
		Alternatives: alts,
		ElapsedMs:    float64(play.Elapsed.Microseconds()) / 1000,
	}
}
