package di

import (
	"github.com/kbukum/dikit/errors"
)

// Sentinel errors for use with errors.Is. Matching is by error code, so
// detailed errors returned by the container match their sentinel.
var (
	ErrNotRegistered      = errors.New(errors.ErrCodeNotRegistered, "service not registered")
	ErrAlreadyRegistered  = errors.New(errors.ErrCodeAlreadyRegistered, "service already registered")
	ErrAlreadyResolved    = errors.New(errors.ErrCodeAlreadyResolved, "singleton already realized")
	ErrIdentityCollision  = errors.New(errors.ErrCodeIdentityCollision, "identity collision")
	ErrTypeMismatch       = errors.New(errors.ErrCodeTypeMismatch, "type mismatch")
	ErrNotAssignable      = errors.New(errors.ErrCodeNotAssignable, "type not assignable")
	ErrConstructionFailed = errors.New(errors.ErrCodeConstructionFailed, "construction failed")
	ErrInvalidArgument    = errors.New(errors.ErrCodeInvalidArgument, "invalid argument")
	ErrContainerClosed    = errors.New(errors.ErrCodeContainerClosed, "container closed")
)

func invalidArgument(field, reason string) error {
	return errors.InvalidArgument(field, reason)
}

func notAssignable(concrete, abstract string) error {
	return errors.NotAssignable(concrete, abstract)
}
