package di

import (
	"reflect"
)

// Identity is the key a registration is stored under. Two identities are
// equal exactly when they were computed from the same Go type.
type Identity struct {
	t reflect.Type
}

// IdentityOf returns the identity of T. Interface types keep their interface
// identity, not the identity of whatever value is later stored under them.
func IdentityOf[T any]() Identity {
	return Identity{t: reflect.TypeFor[T]()}
}

// Type returns the underlying reflect.Type, or nil for the zero identity.
func (id Identity) Type() reflect.Type { return id.t }

// IsZero reports whether id was not computed from a type.
func (id Identity) IsZero() bool { return id.t == nil }

// String returns the fully-qualified type name, e.g.
// "github.com/acme/app/store.Repository" or "*github.com/acme/app/store.SQL".
func (id Identity) String() string { return typeName(id.t) }

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + typeName(t.Elem())
	}
	return t.String()
}

// Lifetime determines how long a resolved instance lives.
type Lifetime int

const (
	Transient Lifetime = iota // A new instance per resolution
	Singleton                 // One instance per container, created on first resolution
)

// String returns the lowercase lifetime name.
func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// ParseLifetime parses "transient" or "singleton".
func ParseLifetime(s string) (Lifetime, error) {
	switch s {
	case "transient":
		return Transient, nil
	case "singleton":
		return Singleton, nil
	default:
		return 0, invalidArgument("lifetime", "unknown lifetime "+s)
	}
}

// Shape records which registration function created an entry.
type Shape int

const (
	ShapeType     Shape = iota // Default-constructed concrete type
	ShapeInstance              // Pre-built instance
	ShapeFunc                  // Zero-argument factory
	ShapeProvider              // Factory receiving the Resolver
)

func (s Shape) String() string {
	switch s {
	case ShapeType:
		return "type"
	case ShapeInstance:
		return "instance"
	case ShapeFunc:
		return "func"
	case ShapeProvider:
		return "provider"
	default:
		return "unknown"
	}
}
