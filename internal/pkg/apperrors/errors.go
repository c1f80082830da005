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
	ErrInvalidFormat      = errors.New("invalid token format")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Ledger errors
	ErrSequencing = errors.New("receipt sequence is corrupted")
)

// Entity lookups. Each wraps ErrResourceNotFound so callers can match either.
var (
	ErrBatchNotFound      = NewCustomError(ErrResourceNotFound, "batch not found")
	ErrStudentNotFound    = NewCustomError(ErrResourceNotFound, "student not found")
	ErrInstructorNotFound = NewCustomError(ErrResourceNotFound, "instructor not found")
	ErrCourseNotFound     = NewCustomError(ErrResourceNotFound, "course not found")
	ErrExamNotFound       = NewCustomError(ErrResourceNotFound, "exam not found")
	ErrResultNotFound     = NewCustomError(ErrResourceNotFound, "result not found")
	ErrReceiptNotFound    = NewCustomError(ErrResourceNotFound, "receipt not found")
	ErrOperatorNotFound   = NewCustomError(ErrResourceNotFound, "operator not found")
)

// Store constraint violations, re-raised with a domain message.
var (
	ErrBatchNameTaken       = NewCustomError(ErrConflict, "a batch with this name already exists")
	ErrBatchHasStudents     = NewCustomError(ErrConflict, "batch has students assigned and cannot be deleted")
	ErrStudentExists        = NewCustomError(ErrConflict, "a student with this registration number already exists")
	ErrInstructorEmailTaken = NewCustomError(ErrConflict, "an instructor with this email already exists")
	ErrCourseExists         = NewCustomError(ErrConflict, "a course with this ID already exists")
	ErrOperatorExists       = NewCustomError(ErrConflict, "operator already exists")
	ErrInvalidReference     = NewCustomError(ErrConflict, "referenced record does not exist")

	// ErrReceiptConflict signals that the computed receipt id was taken by a
	// concurrent writer. Issuance may be retried.
	ErrReceiptConflict = NewCustomError(ErrConflict, "receipt number already issued")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
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

// NewValidationError reports an invalid or missing field.
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewSequencingError reports an unusable receipt id found in the ledger.
func NewSequencingError(message string) error {
	return &CustomError{
		Err:     ErrSequencing,
		Message: message,
		Code:    "LED_001",
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	Field     string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
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

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
