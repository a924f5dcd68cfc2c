package domain

import (
	"errors"
	"fmt"
)

// Reason is the machine-readable cause attached to a rejected move.
type Reason string

const (
	ReasonNotYourTurn           Reason = "not_your_turn"
	ReasonWrongPhase            Reason = "wrong_phase"
	ReasonCardNotHeld           Reason = "card_not_held"
	ReasonInvalidCombo          Reason = "invalid_combo"
	ReasonMustIncludeOpening    Reason = "must_include_opening_card"
	ReasonCannotBeat            Reason = "cannot_beat_last_play"
	ReasonCannotPassLeading     Reason = "cannot_pass_when_leading"
	ReasonMustPlayHighestSingle Reason = "must_play_highest_single"
)

// RuleError is a synchronous, side-effect-free rejection of a proposed
// move. It is surfaced to the caller and never retried automatically.
type RuleError struct {
	Reason Reason
	Detail string
}

func (e *RuleError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func ruleErr(reason Reason, format string, args ...any) error {
	return &RuleError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// RejectionReason extracts the reason from a rule rejection, or "" when
// err is not one.
func RejectionReason(err error) Reason {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

// InconsistencyError is fatal for the game instance it occurred on: the
// engine halts further mutation rather than guess at a correction, since
// any repair risks awarding or denying cards incorrectly.
type InconsistencyError struct {
	Detail string
}

func (e *InconsistencyError) Error() string {
	return "internal inconsistency: " + e.Detail
}

// ErrGameHalted rejects every move submitted after an inconsistency was
// detected on the game.
var ErrGameHalted = errors.New("game halted after internal inconsistency")
