package game

import (
	"errors"
	"fmt"
)

// Reasons a caller-supplied input is rejected. Match with errors.Is.
var (
	ErrWrongPlayer         = errors.New("wrong player")
	ErrCardNotInHand       = errors.New("card not in hand")
	ErrInsufficientDice    = errors.New("insufficient dice")
	ErrInsufficientEnergy  = errors.New("insufficient energy")
	ErrInvalidSwitch       = errors.New("invalid switch")
	ErrNondetShapeMismatch = errors.New("nondeterministic result does not match request")
	ErrWrongPhase          = errors.New("input not valid in this phase")
	ErrCannotCastSkill     = errors.New("cannot cast skill")
	ErrInvalidTarget       = errors.New("invalid target")
	ErrCannotPlayCard      = errors.New("cannot play card")
	ErrGameOver            = errors.New("game is over")
)

// InputError is a failure attributable to the caller of Advance. After an
// InputError the state is not guaranteed valid and must be discarded.
type InputError struct {
	Reason error
	Detail string
}

func (e *InputError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func (e *InputError) Unwrap() error { return e.Reason }

func inputErr(reason error, format string, args ...any) error {
	return &InputError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err was caused by the caller's input.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
