package game

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies game errors.
type Code string

const (
	CodeInvalidInput            Code = "INVALID_INPUT"
	CodeTargetNotFound          Code = "TARGET_NOT_FOUND"
	CodeAlreadyGuessedCorrectly Code = "ALREADY_GUESSED_CORRECTLY"
	CodeNoAttemptsRemaining     Code = "NO_ATTEMPTS_REMAINING"
	CodeGameNotStarted          Code = "GAME_NOT_STARTED"
	CodeCatalogEmpty            Code = "CATALOG_EMPTY"
	CodeInternal                Code = "INTERNAL"
)

// HTTPStatus maps a code to the status the API answers with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput, CodeGameNotStarted:
		return http.StatusBadRequest
	case CodeTargetNotFound:
		return http.StatusNotFound
	case CodeAlreadyGuessedCorrectly, CodeNoAttemptsRemaining:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Terminal reports whether the code means the day's game is already over.
func (c Code) Terminal() bool {
	return c == CodeAlreadyGuessedCorrectly || c == CodeNoAttemptsRemaining
}

// Error is a game failure with the state the caller needs to explain it.
// TargetName is only set once the day's answer may be revealed.
type Error struct {
	Code              Code
	Message           string
	TargetName        string
	RemainingAttempts int
	GameOver          bool
	Cause             error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidInput            = &Error{Code: CodeInvalidInput}
	ErrTargetNotFound          = &Error{Code: CodeTargetNotFound}
	ErrAlreadyGuessedCorrectly = &Error{Code: CodeAlreadyGuessedCorrectly}
	ErrNoAttemptsRemaining     = &Error{Code: CodeNoAttemptsRemaining}
	ErrGameNotStarted          = &Error{Code: CodeGameNotStarted}
	ErrCatalogEmpty            = &Error{Code: CodeCatalogEmpty}
	ErrInternal                = &Error{Code: CodeInternal}
)

// AsError returns err as a *Error, wrapping anything else as CodeInternal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return internalError(err)
}

func internalError(err error) *Error {
	return &Error{Code: CodeInternal, Message: msgInternal, Cause: err}
}
