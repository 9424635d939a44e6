package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthExpired is matched by any authorization failure from the backend.
	ErrAuthExpired = errors.New("authorization expired")
	// ErrNotFound is matched by any not-found response from the backend.
	ErrNotFound = errors.New("not found")
	// ErrTransport wraps network failures where no response was received.
	ErrTransport = errors.New("transport failure")
	// ErrQuizNotFound is returned when a quiz id is unknown or malformed.
	ErrQuizNotFound = fmt.Errorf("quiz %w", ErrNotFound)
	// ErrQuestionNotFound is returned when a question id is not part of the loaded quiz.
	ErrQuestionNotFound = fmt.Errorf("question %w", ErrNotFound)
	// ErrOptionNotFound is returned when an option id is not part of the question.
	ErrOptionNotFound = fmt.Errorf("option %w", ErrNotFound)
	// ErrNoQuizSelected is returned by question operations without a selected quiz.
	ErrNoQuizSelected = errors.New("no quiz selected")
	// ErrWrongAnswerKind is returned when an answer field does not fit the question type.
	ErrWrongAnswerKind = errors.New("answer kind does not match question type")
	// ErrInvalidState is returned when an operation is not allowed in the current view state.
	ErrInvalidState = errors.New("operation not allowed in current state")
)

// APIError carries a non-2xx backend response.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Detail)
}

// Is maps status codes onto the sentinel taxonomy.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuthExpired:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// ValidationError reports a draft rejected before it was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Message picks the text to show a user for err: the backend's detail, a
// validation message, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return fallback
}
