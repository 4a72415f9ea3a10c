package service

import (
	"errors"

	"github.com/sadriving/sadriving-backend/internal/repository"
)

var (
	ErrUnknownField         = errors.New("unknown registration field")
	ErrUnknownCourse        = errors.New("unknown course")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrFieldTooLong         = errors.New("field value too long")
	ErrSessionNotFound      = repository.ErrFormSessionNotFound
)

// ValidationError is a violated registration rule. Message is shown to the
// user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmissionError wraps a failure of the payment or recording step.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "submit registration: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
