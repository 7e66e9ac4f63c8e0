package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidUserID        ErrorCode = "INVALID_USER_ID"
	ErrCodeInvalidMonth         ErrorCode = "INVALID_MONTH"
	ErrCodeProjectNameTooShort  ErrorCode = "PROJECT_NAME_TOO_SHORT"
	ErrCodeUsernameTooShort     ErrorCode = "USERNAME_TOO_SHORT"
	ErrCodePasswordTooShort     ErrorCode = "PASSWORD_TOO_SHORT"
	ErrCodeInvalidEmail         ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidRole          ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidEventType     ErrorCode = "INVALID_EVENT_TYPE"
	ErrCodeInvalidDateRange     ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeProjectNotFound      ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeAssignmentNotFound   ErrorCode = "ASSIGNMENT_NOT_FOUND"
	ErrCodeEventNotFound        ErrorCode = "EVENT_NOT_FOUND"
	ErrCodeEmailTaken           ErrorCode = "EMAIL_TAKEN"
	ErrCodeUsernameTaken        ErrorCode = "USERNAME_TAKEN"
	ErrCodeAssignmentOverlap    ErrorCode = "ASSIGNMENT_OVERLAP"
	ErrCodeEventSameDay         ErrorCode = "EVENT_SAME_DAY"
	ErrCodeEventWeeklyRemoteCap ErrorCode = "EVENT_WEEKLY_REMOTE_CAP"
	ErrCodeEventFinalized       ErrorCode = "EVENT_ALREADY_FINALIZED"
	ErrCodeNotAssignedOnDate    ErrorCode = "NOT_ASSIGNED_ON_DATE"
	ErrCodeNotEventManager      ErrorCode = "NOT_EVENT_MANAGER"
	ErrCodeInsufficientRole     ErrorCode = "INSUFFICIENT_ROLE"
	ErrCodeUnknownRole          ErrorCode = "UNKNOWN_ROLE"
	ErrCodeReferrerNotManager   ErrorCode = "REFERRER_NOT_MANAGER"
	ErrCodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken         ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired         ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	copied := *e
	copied.Cause = cause
	return &copied
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidUserID      = NewValidationError("user id must be a valid uuidv4", ErrCodeInvalidUserID)
	ErrInvalidMonth       = NewValidationError("month must be between 1 and 12", ErrCodeInvalidMonth)
	ErrProjectNameShort   = NewValidationError("project name must contain at least 3 characters", ErrCodeProjectNameTooShort)
	ErrUserNotFound       = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrProjectNotFound    = NewNotFoundError("project not found", ErrCodeProjectNotFound)
	ErrAssignmentNotFound = NewNotFoundError("assignment not found", ErrCodeAssignmentNotFound)
	ErrEventNotFound      = NewNotFoundError("event not found", ErrCodeEventNotFound)
	ErrEmailTaken         = NewConflictError("email address is already in use", ErrCodeEmailTaken)
	ErrUsernameTaken      = NewConflictError("username is already in use", ErrCodeUsernameTaken)

	ErrAssignmentOverlap = NewConflictError("employee is already assigned to a project over the requested period", ErrCodeAssignmentOverlap)

	ErrEventSameDay        = NewValidationError("you already have an event for this day", ErrCodeEventSameDay)
	ErrEventWeeklyCap      = NewValidationError("remote work is limited to two days per week", ErrCodeEventWeeklyRemoteCap)
	ErrEventFinalized      = NewUnauthorizedError("cannot alter the status of an event already accepted or declined", ErrCodeEventFinalized)
	ErrNotAssignedOnDate   = NewUnauthorizedError("you are not attached to a project on the day of the event", ErrCodeNotAssignedOnDate)
	ErrNotEventManager     = NewUnauthorizedError("you are not allowed to act on this event", ErrCodeNotEventManager)
	ErrInsufficientRole    = NewUnauthorizedError("you do not have the rights to perform this action", ErrCodeInsufficientRole)
	ErrUnknownRole         = NewForbiddenError("role is not recognized", ErrCodeUnknownRole)
	ErrReferrerNotManager  = NewUnauthorizedError("referring employee must be an admin or project manager", ErrCodeReferrerNotManager)
	ErrInvalidCredentials  = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken        = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired        = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
