package game

import "errors"

// ErrorCode is the numeric error code reported to callers. The values match
// the codes the contract has always returned.
type ErrorCode uint16

const (
	CodeNotAuthorized          ErrorCode = 100
	CodePlayerNotRegistered    ErrorCode = 102
	CodeTreasureNotFound       ErrorCode = 104
	CodeTreasureAlreadyClaimed ErrorCode = 105
	CodeInvalidLocation        ErrorCode = 106
	CodeCooldownActive         ErrorCode = 108
)

// Error is a rejected game operation. Errors compare equal under errors.Is
// when their codes match.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is a game error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrNotAuthorized       = &Error{Code: CodeNotAuthorized, Message: "not authorized"}
	ErrPlayerNotRegistered = &Error{Code: CodePlayerNotRegistered, Message: "player not registered"}
	// ErrAlreadyRegistered shares code 102 with ErrPlayerNotRegistered.
	ErrAlreadyRegistered      = &Error{Code: CodePlayerNotRegistered, Message: "player already registered"}
	ErrTreasureAlreadyClaimed = &Error{Code: CodeTreasureAlreadyClaimed, Message: "treasure already claimed"}
	ErrInvalidLocation        = &Error{Code: CodeInvalidLocation, Message: "invalid location"}
	ErrCooldownActive         = &Error{Code: CodeCooldownActive, Message: "not enough energy to explore"}

	// ErrTreasureNotFound covers three transfer failures: the treasure does
	// not exist, it has not been claimed, or the sender does not hold it.
	// Callers must not assume which one occurred.
	ErrTreasureNotFound = &Error{Code: CodeTreasureNotFound, Message: "treasure not found"}
)

// CodeOf returns the game error code carried by err, or 0 if err is not a
// game error.
func CodeOf(err error) ErrorCode {
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	return 0
}
