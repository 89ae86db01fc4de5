package domain

import "fmt"

// ExitCodeNoTests is returned when discovery produced no targets
const ExitCodeNoTests = -1

// ExitError terminates the run with Code. Only the entry point turns it
// into a process exit.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}
