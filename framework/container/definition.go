package container

import (
	"fmt"
	"reflect"
	"strings"
)

// definition is a constructible type known to the container. ctor is the
// zero Value for types declared without a constructor.
type definition struct {
	typ      reflect.Type
	ctor     reflect.Value
	names    []string
	defaults map[string]any
}

// param is one constructor parameter after introspection.
type param struct {
	name       string
	typ        reflect.Type
	def        reflect.Value
	hasDefault bool
}

// plan is the cached introspection result for one constructor.
type plan struct {
	params     []param
	variadic   bool
	returnsErr bool
}

var (
	containerType = reflect.TypeOf((*Container)(nil))
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

// ProvideOption customises how a constructor is registered.
type ProvideOption func(*definition)

// WithParams names the constructor parameters in declaration order. Unnamed
// parameters are reported as arg0, arg1, ...
//
//	c.Provide(services.NewMailer, container.WithParams("transport", "from"))
func WithParams(names ...string) ProvideOption {
	return func(d *definition) { d.names = names }
}

// WithDefault supplies a default value for the named parameter.
func WithDefault(name string, value any) ProvideOption {
	return func(d *definition) {
		if d.defaults == nil {
			d.defaults = make(map[string]any)
		}
		d.defaults[name] = value
	}
}

// Provide registers ctor as the constructor of its first return type. The
// function signature is the dependency list: each parameter is resolved by
// Resolve in declaration order. ctor may return (T) or (T, error).
//
//	c.Provide(func(m *services.Mailer, from string) *services.Notifier { ... },
//	    container.WithParams("mailer", "from"),
//	    container.WithDefault("from", "noreply@example.com"))
func (c *Container) Provide(ctor any, opts ...ProvideOption) error {
	v := reflect.ValueOf(ctor)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("%w: expected a function, got %T", ErrInvalidConstructor, ctor)
	}
	ft := v.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return fmt.Errorf("%w: %s must return (T) or (T, error)", ErrInvalidConstructor, ft)
	}

	d := &definition{typ: ft.Out(0), ctor: v}
	for _, opt := range opts {
		opt(d)
	}
	if len(d.names) > ft.NumIn() {
		return fmt.Errorf("%w: %s has %d parameters, %d names given",
			ErrInvalidConstructor, ft, ft.NumIn(), len(d.names))
	}
	c.define(d)
	return nil
}

// Declare registers types constructed without a constructor (a zero value).
// Pass typed nil pointers or zero values:
//
//	c.Declare((*controllers.HomeController)(nil))
func (c *Container) Declare(samples ...any) {
	for _, s := range samples {
		if s == nil {
			continue
		}
		c.define(&definition{typ: reflect.TypeOf(s)})
	}
}

func (c *Container) define(d *definition) {
	key := typeName(d.typ)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[key] = d
	delete(c.reflections, key)
}

// planFor returns the cached plan for key, introspecting the constructor on
// first use.
func (c *Container) planFor(key string, d *definition) (*plan, error) {
	c.mu.RLock()
	p, ok := c.reflections[key]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := introspect(key, d)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.reflections[key] = p
	c.mu.Unlock()
	return p, nil
}

func introspect(key string, d *definition) (*plan, error) {
	ft := d.ctor.Type()
	p := &plan{
		params:     make([]param, ft.NumIn()),
		variadic:   ft.IsVariadic(),
		returnsErr: ft.NumOut() == 2,
	}
	for i := range ft.NumIn() {
		prm := param{typ: ft.In(i), name: fmt.Sprintf("arg%d", i)}
		if i < len(d.names) && d.names[i] != "" {
			prm.name = d.names[i]
		}
		if raw, ok := d.defaults[prm.name]; ok {
			v, err := assignable(raw, prm.typ)
			if err != nil {
				return nil, fmt.Errorf("%w: default for [%s] of [%s]: %v", ErrInvalidConstructor, prm.name, key, err)
			}
			prm.def, prm.hasDefault = v, true
		}
		// An omitted variadic tail is an empty slice.
		if p.variadic && i == ft.NumIn()-1 && !prm.hasDefault {
			prm.def, prm.hasDefault = reflect.Zero(prm.typ), true
		}
		p.params[i] = prm
	}
	return p, nil
}

// assignable converts v into a Value usable as an argument of type t.
func assignable(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) && rv.Kind() != reflect.Interface && isPrimitive(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", rv.Type(), t)
}

// isPrimitive reports whether t is a builtin-like type the container never
// constructs on its own.
func isPrimitive(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Struct, reflect.Interface:
		return false
	}
	return true
}

// zeroInstance builds an instance of a type that has no constructor.
func zeroInstance(t reflect.Type) (any, bool) {
	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem()).Interface(), true
	case t.Kind() == reflect.Struct:
		return reflect.New(t).Elem().Interface(), true
	}
	return nil, false
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return strings.TrimPrefix(t.String(), "*")
}

// TypeKey returns the type name the container uses for v, e.g.
// "services.Mailer" for a *services.Mailer. Registry entries and route
// actions refer to types by this name.
func TypeKey(v any) string {
	return typeName(reflect.TypeOf(v))
}

// KeyOf is the generic form of TypeKey and also works for interface types.
//
//	container.KeyOf[services.Mailer]()  // "services.Mailer"
func KeyOf[T any]() string {
	return typeName(reflect.TypeFor[T]())
}
