package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Registration errors
const (
	// ErrCodeAlreadyRegistered indicates a second registration for the same type.
	ErrCodeAlreadyRegistered ErrorCode = "ALREADY_REGISTERED"
	// ErrCodeAlreadyResolved indicates an attempt to replace a realized singleton.
	ErrCodeAlreadyResolved ErrorCode = "ALREADY_RESOLVED"
	// ErrCodeNotAssignable indicates a concrete type that does not satisfy its abstract type.
	ErrCodeNotAssignable ErrorCode = "NOT_ASSIGNABLE"
	// ErrCodeInvalidArgument indicates a nil factory, nil instance or invalid configuration.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Resolution errors
const (
	// ErrCodeNotRegistered indicates the requested type has no registration.
	ErrCodeNotRegistered ErrorCode = "NOT_REGISTERED"
	// ErrCodeIdentityCollision indicates a stored entry whose identity differs from the lookup key.
	ErrCodeIdentityCollision ErrorCode = "IDENTITY_COLLISION"
	// ErrCodeTypeMismatch indicates the produced value could not be narrowed to the requested type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeConstructionFailed indicates a producer returned an error or panicked.
	ErrCodeConstructionFailed ErrorCode = "CONSTRUCTION_FAILED"
)

// Lifecycle errors
const (
	// ErrCodeContainerClosed indicates an operation on a closed container.
	ErrCodeContainerClosed ErrorCode = "CONTAINER_CLOSED"
)

// configurationCodes are the codes caused by wiring mistakes in the composition
// root rather than by a failing producer at runtime.
var configurationCodes = map[ErrorCode]bool{
	ErrCodeAlreadyRegistered: true,
	ErrCodeAlreadyResolved:   true,
	ErrCodeNotAssignable:     true,
	ErrCodeInvalidArgument:   true,
	ErrCodeNotRegistered:     true,
	ErrCodeIdentityCollision: true,
	ErrCodeTypeMismatch:      true,
}

// IsConfigurationCode returns true if the code reports a wiring defect.
func IsConfigurationCode(code ErrorCode) bool {
	return configurationCodes[code]
}
