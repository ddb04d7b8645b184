package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Validation errors
	ErrBadRequest = errors.New("bad request")

	// Storage errors
	ErrStorage = errors.New("storage failure")

	// Upstream errors
	ErrUpstreamFailure = errors.New("upstream failure")
)

// Community errors
var (
	ErrCommunityNotFound  = errors.New("community not found")
	ErrCommunityNameTaken = errors.New("community name already taken")
	ErrInvalidLevel       = errors.New("invalid level")
	ErrLeaderNotFound     = errors.New("community has no leader")
)

// Membership errors, checked in this priority order by the join flow
var (
	ErrAlreadyRequested = errors.New("already requested to join")
	ErrAlreadyMember    = errors.New("already a member")
	ErrIsCreator        = errors.New("you are the creator")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Notification errors
var (
	ErrNotifyFailed = errors.New("failed to notify the creator")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewStorageError wraps a graph store failure, keeping the driver message
func NewStorageError(err error) error {
	return &CustomError{
		Err:     ErrStorage,
		Message: err.Error(),
	}
}
