package container

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceNotFound is returned by Get for a name that was never bound.
	ErrServiceNotFound = errors.New("container: service not found")

	// ErrUnresolvableParameter is returned when a constructor parameter has no
	// default, no registry alias and a primitive type.
	ErrUnresolvableParameter = errors.New("container: cannot resolve parameter")

	// ErrNotInstantiable is returned when the target type cannot be constructed
	// (interfaces and primitives without a provided constructor).
	ErrNotInstantiable = errors.New("container: type is not instantiable")

	// ErrUnknownType is returned by Resolve for a type name that was never
	// provided or declared.
	ErrUnknownType = errors.New("container: unknown type")

	// ErrCircularDependency is returned when a type depends on itself.
	ErrCircularDependency = errors.New("container: circular dependency")

	// ErrInvalidConstructor is returned by Provide for values that are not
	// constructor functions.
	ErrInvalidConstructor = errors.New("container: invalid constructor")

	// ErrDeferredNotBound is returned when a deferred provider's Register
	// does not bind a name it lists in Provides.
	ErrDeferredNotBound = errors.New("container: deferred provider did not bind service")
)

// ParameterError names the constructor parameter that could not be resolved.
type ParameterError struct {
	Owner string // type being constructed
	Param string
	Type  string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("container: cannot resolve parameter [%s] of type [%s] for [%s]", e.Param, e.Type, e.Owner)
}

// Is reports ErrUnresolvableParameter so callers can use errors.Is.
func (e *ParameterError) Is(target error) bool {
	return target == ErrUnresolvableParameter
}
