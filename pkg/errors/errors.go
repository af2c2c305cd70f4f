package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")
)

// Market-data provider errors

var (
	// ErrTokenNotFound indicates the provider has no pairs for the token
	ErrTokenNotFound = errors.New("token not found on provider")

	// ErrProviderUnavailable indicates the provider request or parse failed
	ErrProviderUnavailable = errors.New("market data provider unavailable")

	// ErrInvalidMarketCap indicates the provider returned a non-positive market cap
	ErrInvalidMarketCap = errors.New("invalid market cap")
)

// Transport errors

var (
	// ErrSendFailed indicates a telegram send was rejected
	ErrSendFailed = errors.New("failed to send message")

	// ErrEditFailed indicates a telegram edit was rejected (message may be deleted)
	ErrEditFailed = errors.New("failed to edit message")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
