package errors

import (
	"errors"
	"fmt"
)

// Error codes for the progression engine.
const (
	// Domain errors
	ErrCodeMissionNotFound = "MISSION_NOT_FOUND"
	ErrCodeBadgeNotFound   = "BADGE_NOT_FOUND"

	// Store errors
	ErrCodeStoreError   = "STORE_ERROR"
	ErrCodeUpdateFailed = "UPDATE_FAILED"

	// Config errors
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"

	// Scheduler errors
	ErrCodeResetInProgress = "RESET_IN_PROGRESS"
)

// EngineError represents an error in the progression engine.
type EngineError struct {
	Code    string
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(code, message string, err error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Domain-specific error constructors

// ErrMissionNotFound returns an error when a mission is not in the catalog.
func ErrMissionNotFound(missionID string) *EngineError {
	return &EngineError{
		Code:    ErrCodeMissionNotFound,
		Message: fmt.Sprintf("mission not found: %s", missionID),
	}
}

// ErrStoreError wraps store query/write failures.
func ErrStoreError(operation string, err error) *EngineError {
	return &EngineError{
		Code:    ErrCodeStoreError,
		Message: fmt.Sprintf("store error during %s", operation),
		Err:     err,
	}
}

// ErrUpdateFailed signals that an atomic progress update could not be
// applied. The caller logs and does not retry; the next qualifying event
// naturally retries the evaluation.
func ErrUpdateFailed(userID, missionID string, err error) *EngineError {
	return &EngineError{
		Code:    ErrCodeUpdateFailed,
		Message: fmt.Sprintf("progress update failed for user %s mission %s", userID, missionID),
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for an invalid catalog entry.
func ErrConfigInvalid(reason string) *EngineError {
	return &EngineError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
	}
}

// ErrValidationFailed returns a validation error. Propagated to the caller
// since it indicates a programming error upstream.
func ErrValidationFailed(field, reason string) *EngineError {
	return &EngineError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}

// ErrResetInProgress is returned when a destructive reset job is invoked
// while a prior run of the same job is still in flight.
func ErrResetInProgress(job string) *EngineError {
	return &EngineError{
		Code:    ErrCodeResetInProgress,
		Message: fmt.Sprintf("%s reset already running", job),
	}
}

// IsStoreError returns true if err is an EngineError with a store code.
func IsStoreError(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeStoreError || ee.Code == ErrCodeUpdateFailed
	}
	return false
}

// IsValidation returns true if err is a validation EngineError.
func IsValidation(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeValidationFailed
	}
	return false
}

// IsResetInProgress returns true if err is an overlapping-reset EngineError.
func IsResetInProgress(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeResetInProgress
	}
	return false
}

// IsConfigError returns true if err is a configuration EngineError.
func IsConfigError(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeConfigInvalid || ee.Code == ErrCodeConfigNotFound
	}
	return false
}
