package ledger

// UserError represents a malformed or misdirected transaction. These are not
// game rule rejections and not system failures.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a caller-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}
