package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is returned when an action is not in the legal set for
	// the acting seat.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvalidConfiguration is returned when a hand cannot start with the
	// given seats or blinds.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrOutOfTurn is the cause of an IllegalActionError raised by a seat
	// acting when it is not its turn.
	ErrOutOfTurn = errors.New("action out of turn")
	// ErrHandComplete is the cause of an IllegalActionError raised after the
	// hand has finished.
	ErrHandComplete = errors.New("hand already complete")
)

// IllegalActionError describes a rejected action. It matches both
// ErrIllegalAction and its Cause under errors.Is.
type IllegalActionError struct {
	Seat   int
	Action Action
	Amount int
	Reason string
	Cause  error
}

func (e *IllegalActionError) Error() string {
	msg := fmt.Sprintf("illegal action: seat %d cannot %s", e.Seat, e.Action)
	if e.Cause != nil && e.Reason == "" {
		return msg + ": " + e.Cause.Error()
	}
	if e.Action == Bet || e.Action == Raise {
		msg += fmt.Sprintf(" %d", e.Amount)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *IllegalActionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrIllegalAction, e.Cause}
	}
	return []error{ErrIllegalAction}
}

func illegal(seat int, action Action, amount int, format string, args ...any) error {
	return &IllegalActionError{
		Seat:   seat,
		Action: action,
		Amount: amount,
		Reason: fmt.Sprintf(format, args...),
	}
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
