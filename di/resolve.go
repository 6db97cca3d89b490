package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/dikit/errors"
)

// GetService resolves T. An unregistered T yields (zero, false, nil).
// Construction failures, a closed container or a value that is not a T
// yield a non-nil error.
func GetService[T any](r Resolver) (T, bool, error) {
	var zero T
	id := IdentityOf[T]()
	if r == nil {
		return zero, false, invalidArgument("resolver", "nil resolver resolving "+id.String())
	}

	v, found, err := r.Resolve(id)
	if err != nil || !found {
		return zero, false, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, false, errors.TypeMismatch(id.String(), typeName(reflect.TypeOf(v)))
	}
	return typed, true, nil
}

// GetRequiredService resolves T and fails with NOT_REGISTERED, naming T,
// when nothing is registered for it.
func GetRequiredService[T any](r Resolver) (T, error) {
	v, found, err := GetService[T](r)
	if err != nil {
		return v, err
	}
	if !found {
		return v, errors.NotRegistered(IdentityOf[T]().String())
	}
	return v, nil
}

// MustGetService resolves T or panics. Use it in composition roots and tests.
func MustGetService[T any](r Resolver) T {
	v, err := GetRequiredService[T](r)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return v
}

// Has reports whether T is registered.
func Has[T any](r Resolver) bool {
	return r != nil && r.Contains(IdentityOf[T]())
}
