package service

import (
	"errors"
	"log/slog"
)

// ValidationError reports input the service refuses to persist.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a lookup or mutation of an ID with no row behind it.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

var (
	ErrNullAccount    = &ValidationError{Message: "Error processing request. The account entity cannot be null."}
	ErrInvalidAccount = &ValidationError{Message: "Account entity validation error."}
	ErrNullBill       = &ValidationError{Message: "Error processing request. The bill entity cannot be null."}
	ErrMissingAccount = &ValidationError{Message: "Missing account id."}
	ErrInvalidBill    = &ValidationError{Message: "Bill entity validation error."}

	ErrAccountNotFound = &NotFoundError{Message: "Account not found."}
	ErrBillNotFound    = &NotFoundError{Message: "Bill not found."}
	ErrNoResult        = &NotFoundError{Message: "No result."}
)

// isDomainError reports whether err is a rejection rather than a failure.
func isDomainError(err error) bool {
	var (
		validation *ValidationError
		notFound   *NotFoundError
	)
	return errors.As(err, &validation) || errors.As(err, &notFound)
}

// logFailure logs a failed operation at Warn for domain rejections and Error otherwise.
func logFailure(op string, err error, args ...any) {
	args = append(args, "error", err)
	if isDomainError(err) {
		slog.Warn(op+" rejected", args...)
		return
	}
	slog.Error(op+" failed", args...)
}
