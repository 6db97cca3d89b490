package di

import (
	"reflect"
)

// Producer is the type-erased creation strategy stored for every
// registration. It receives the owning container as a Resolver.
type Producer func(r Resolver) (any, error)

// Initializer is implemented by concrete types registered with AddTransient
// or AddSingleton that need to pull dependencies or validate state after
// being allocated.
//
//	type SQLStore struct{ log *logger.Logger }
//
//	func (s *SQLStore) Init(r di.Resolver) error {
//	    l, err := di.GetRequiredService[*logger.Logger](r)
//	    s.log = l
//	    return err
//	}
type Initializer interface {
	Init(r Resolver) error
}

// Cloner lets a pre-built transient instance control how it is copied.
type Cloner[T any] interface {
	Clone() T
}

// constructProducer allocates a fresh D per call and narrows it to B.
func constructProducer[B, D any]() (Producer, error) {
	bt, dt := reflect.TypeFor[B](), reflect.TypeFor[D]()
	if dt.Kind() == reflect.Interface {
		return nil, invalidArgument("type", typeName(dt)+" is an interface, a concrete type is required")
	}
	if !dt.AssignableTo(bt) {
		return nil, notAssignable(typeName(dt), typeName(bt))
	}

	return func(r Resolver) (any, error) {
		var d D
		if dt.Kind() == reflect.Pointer {
			d = reflect.New(dt.Elem()).Interface().(D)
		}
		if hook, ok := any(d).(Initializer); ok {
			if err := hook.Init(r); err != nil {
				return nil, err
			}
		}
		var b B
		reflect.ValueOf(&b).Elem().Set(reflect.ValueOf(&d).Elem())
		return b, nil
	}, nil
}

// instanceProducer returns instance itself for singletons and a shallow copy
// of it per call for transients.
func instanceProducer[T any](instance T, lifetime Lifetime) (Producer, error) {
	if isNil(any(instance)) {
		return nil, invalidArgument("instance", "nil instance for "+typeName(reflect.TypeFor[T]()))
	}
	if lifetime == Singleton {
		return func(Resolver) (any, error) { return instance, nil }, nil
	}
	return func(Resolver) (any, error) { return shallowCopy(instance), nil }, nil
}

func funcProducer[T any](fn func() (T, error)) (Producer, error) {
	if fn == nil {
		return nil, invalidArgument("factory", "nil factory for "+typeName(reflect.TypeFor[T]()))
	}
	return func(Resolver) (any, error) { return fn() }, nil
}

func providerProducer[T any](fn func(Resolver) (T, error)) (Producer, error) {
	if fn == nil {
		return nil, invalidArgument("provider", "nil provider for "+typeName(reflect.TypeFor[T]()))
	}
	return func(r Resolver) (any, error) { return fn(r) }, nil
}

// shallowCopy copies v one level deep: a Cloner copies itself, a pointer gets
// a new pointee holding a copy of the old one, anything else is copied by
// value. Slices, maps and nested pointers stay shared.
func shallowCopy[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	rv := reflect.ValueOf(any(v))
	if rv.Kind() != reflect.Pointer {
		return v
	}
	cp := reflect.New(rv.Type().Elem())
	cp.Elem().Set(rv.Elem())

	var out T
	reflect.ValueOf(&out).Elem().Set(cp)
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
