package model

import "errors"

// Input errors: the request itself is malformed for the current position.
var (
	ErrOutOfBounds = errors.New("move out of bounds")
	ErrNoPiece     = errors.New("no piece selected")
	ErrWrongTurn   = errors.New("not your turn")
)

// Rule violations: the request is well formed but chess forbids it.
var (
	ErrIllegalMove        = errors.New("invalid move")
	ErrCastleInCheck      = errors.New("cannot castle while in check")
	ErrCastleThroughCheck = errors.New("cannot castle through check")
	ErrCastleIntoCheck    = errors.New("cannot castle into check")
	ErrSelfCheck          = errors.New("move places king in check")
)

// ErrStaleRevision is returned when a caller acts on a position that has
// changed since it was read.
var ErrStaleRevision = errors.New("game changed since position was read")

func IsInputError(err error) bool {
	return errors.Is(err, ErrOutOfBounds) || errors.Is(err, ErrNoPiece) || errors.Is(err, ErrWrongTurn)
}

func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrIllegalMove) ||
		errors.Is(err, ErrCastleInCheck) ||
		errors.Is(err, ErrCastleThroughCheck) ||
		errors.Is(err, ErrCastleIntoCheck) ||
		errors.Is(err, ErrSelfCheck)
}
