// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("admin access required")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnsupportedMethod   = errors.New("unsupported payment method")
	ErrNotFound            = errors.New("not found")
	ErrConnectionFailed    = errors.New("connection failed")
	ErrTimeout             = errors.New("operation timed out")
	ErrConfigInvalid       = errors.New("invalid configuration")
	ErrCacheMiss           = errors.New("no cached snapshot available")
	ErrDatabaseError       = errors.New("database error")
	ErrInputValidation     = errors.New("input validation failed")
)

// APIError represents an error response from the back-office backend.
// The backend reports failures as {"detail": "..."} with an HTTP status.
type APIError struct {
	Status int
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api error [%d]: %s: %v", e.Status, e.Detail, e.Err)
	}
	return fmt.Sprintf("api error [%d]: %s", e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError.
func NewAPIError(status int, detail string, err error) *APIError {
	return &APIError{
		Status: status,
		Detail: detail,
		Err:    err,
	}
}

// ValidationError represents a validation error on an outgoing payload.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// PaymentError represents an error related to deposit/withdrawal operations.
type PaymentError struct {
	PaymentID string
	Method    string
	Action    string
	Reason    string
	Err       error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment error [%s] %s via %s: %s: %v", e.PaymentID, e.Action, e.Method, e.Reason, e.Err)
	}
	return fmt.Sprintf("payment error [%s] %s via %s: %s", e.PaymentID, e.Action, e.Method, e.Reason)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError.
func NewPaymentError(paymentID, method, action, reason string, err error) *PaymentError {
	return &PaymentError{
		PaymentID: paymentID,
		Method:    method,
		Action:    action,
		Reason:    reason,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
