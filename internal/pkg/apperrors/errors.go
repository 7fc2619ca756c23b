package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Upstream collaborator errors
	ErrCaptchaFailed       = errors.New("captcha verification failed")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// Hierarchy errors
var (
	ErrUniversityNotFound = errors.New("university not found")
	ErrFacultyNotFound    = errors.New("faculty not found")
	ErrFieldNotFound      = errors.New("field of study not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrParentNotApproved  = errors.New("parent entity is not approved")
)

// Content errors
var (
	ErrNoteNotFound         = errors.New("note not found")
	ErrNoteContentRequired  = errors.New("note requires content or an image attachment")
	ErrImageRequestNotFound = errors.New("image request not found")
	ErrImageRequestSettled  = errors.New("image request already settled")
)

// Moderation errors
var (
	ErrUnknownModeratedKind = errors.New("unknown moderated entity kind")
)

// CustomError carries an underlying sentinel together with additional context.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails attaches context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
