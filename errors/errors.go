package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type returned by the container.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Configuration reports a wiring defect rather than a runtime failure.
	Configuration bool `json:"configuration"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code, so sentinel
// values can be used with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic configuration detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:          code,
		Message:       message,
		Configuration: IsConfigurationCode(code),
	}
}

// --- Container Error Constructors ---

// NotRegistered creates a new AppError for a type without a registration.
func NotRegistered(typeName string) *AppError {
	return &AppError{
		Code: ErrCodeNotRegistered, Message: fmt.Sprintf("no implementation registered for %s", typeName),
		Configuration: true, Details: map[string]any{"type": typeName},
	}
}

// AlreadyRegistered creates a new AppError for a duplicate registration.
func AlreadyRegistered(typeName string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyRegistered, Message: fmt.Sprintf("%s is already registered", typeName),
		Configuration: true, Details: map[string]any{"type": typeName},
	}
}

// AlreadyResolved creates a new AppError for replacing a singleton that was already realized.
func AlreadyResolved(typeName string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyResolved, Message: fmt.Sprintf("singleton %s is already realized and cannot be replaced", typeName),
		Configuration: true, Details: map[string]any{"type": typeName},
	}
}

// IdentityCollision creates a new AppError for an entry stored under another type's identity.
func IdentityCollision(want, got string) *AppError {
	return &AppError{
		Code: ErrCodeIdentityCollision, Message: fmt.Sprintf("lookup for %s found the entry of %s", want, got),
		Configuration: true, Details: map[string]any{"want": want, "got": got},
	}
}

// TypeMismatch creates a new AppError for a produced value that is not of the requested type.
func TypeMismatch(want, got string) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("produced %s, expected %s", got, want),
		Configuration: true, Details: map[string]any{"want": want, "got": got},
	}
}

// NotAssignable creates a new AppError for a concrete type that does not satisfy its abstract type.
func NotAssignable(concrete, abstract string) *AppError {
	return &AppError{
		Code: ErrCodeNotAssignable, Message: fmt.Sprintf("%s is not assignable to %s", concrete, abstract),
		Configuration: true, Details: map[string]any{"concrete": concrete, "type": abstract},
	}
}

// ConstructionFailed creates a new AppError for a producer that failed.
func ConstructionFailed(typeName string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConstructionFailed, Message: fmt.Sprintf("failed to construct %s", typeName),
		Configuration: false, Details: map[string]any{"type": typeName}, Cause: cause,
	}
}

// InvalidArgument creates a new AppError for an invalid registration argument.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid argument: %s", reason),
		Configuration: true, Details: details,
	}
}

// Validation creates a new AppError for configuration validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: message,
		Configuration: true,
	}
}

// ContainerClosed creates a new AppError for use of a closed container.
func ContainerClosed(name string) *AppError {
	return &AppError{
		Code: ErrCodeContainerClosed, Message: fmt.Sprintf("container %s is closed", name),
		Configuration: false, Details: map[string]any{"container": name},
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
