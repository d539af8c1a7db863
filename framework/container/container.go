package container

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Factory builds a service value from the container.
type Factory func(c *Container) (any, error)

// service is one symbolic binding. Exactly one of factory, typ or instance
// is the source of the value.
type service struct {
	factory   Factory
	typ       string
	instance  any
	singleton bool
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container resolves symbolic service names and concrete types to instances.
//
// Names are bound with Set (or Bind / Singleton / Instance) and bulk-loaded
// from the Registry by Register. Types are made known with Provide and
// Declare; Resolve builds them by injecting constructor parameters.
//
// Only names resolved through Get participate in the singleton cache.
// Resolve always constructs a fresh instance of the requested type.
type Container struct {
	mu sync.RWMutex

	registry *Registry

	// name → binding
	services map[string]*service

	// name → resolved singleton instance
	instances map[string]any

	// type name → constructor definition
	types map[string]*definition

	// type name → introspected constructor parameters
	reflections map[string]*plan
}

// New creates a container backed by registry (which may be nil).
func New(registry *Registry) *Container {
	if registry == nil {
		registry = NewRegistry()
	}
	c := &Container{
		registry:    registry,
		services:    make(map[string]*service),
		instances:   make(map[string]any),
		types:       make(map[string]*definition),
		reflections: make(map[string]*plan),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Set binds name to a live instance or to a Factory. A factory bound with
// singleton=true runs once; its result is cached for the container's life.
// Rebinding a name drops any cached instance.
func (c *Container) Set(name string, value any, singleton bool) {
	svc := &service{singleton: singleton}
	switch v := value.(type) {
	case Factory:
		svc.factory = v
	case func(*Container) (any, error):
		svc.factory = v
	default:
		svc.instance = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = svc
	delete(c.instances, name)
}

// Bind registers a transient factory: every Get runs it again.
func (c *Container) Bind(name string, factory Factory) {
	c.Set(name, factory, false)
}

// Singleton registers a factory whose result is cached after the first Get.
func (c *Container) Singleton(name string, factory Factory) {
	c.Set(name, factory, true)
}

// Instance registers a pre-built value.
func (c *Container) Instance(name string, instance any) {
	c.Set(name, instance, true)
}

// Register binds every registry entry to its concrete type. Entries replace
// existing bindings of the same name.
func (c *Container) Register() {
	entries := c.registry.Entries()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		c.services[e.Name] = &service{typ: e.Type, singleton: e.Singleton}
		delete(c.instances, e.Name)
	}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the instance bound to name, building and caching it when the
// binding is a singleton.
func (c *Container) Get(name string) (any, error) {
	return c.get(name, nil)
}

func (c *Container) get(name string, stack []string) (any, error) {
	c.mu.RLock()
	if inst, ok := c.instances[name]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	svc, ok := c.services[name]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w [%s]", ErrServiceNotFound, name)
	}

	var (
		inst any
		err  error
	)
	switch {
	case svc.factory != nil:
		inst, err = svc.factory(c)
	case svc.typ != "":
		inst, err = c.resolveName(svc.typ, stack)
	default:
		inst = svc.instance
	}
	if err != nil {
		return nil, fmt.Errorf("container: service [%s]: %w", name, err)
	}

	if svc.singleton {
		c.mu.Lock()
		if existing, ok := c.instances[name]; ok {
			inst = existing
		} else {
			c.instances[name] = inst
		}
		c.mu.Unlock()
	}
	return inst, nil
}

// Resolve constructs a new instance of the named type, injecting every
// constructor parameter. The result is never cached.
//
// Parameters are resolved in declaration order:
//  1. a non-primitive parameter with a declared default takes the default;
//  2. a *Container parameter receives this container;
//  3. a registry entry whose type produces exactly the parameter's type is
//     resolved through Get;
//  4. otherwise the parameter's type is resolved recursively;
//  5. a primitive parameter uses its default or fails with a *ParameterError.
func (c *Container) Resolve(typ string) (any, error) {
	return c.resolveName(typ, nil)
}

func (c *Container) resolveName(typ string, stack []string) (any, error) {
	c.mu.RLock()
	d, ok := c.types[typ]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w [%s]", ErrUnknownType, typ)
	}
	return c.build(typ, d, stack)
}

func (c *Container) resolveType(t reflect.Type, stack []string) (any, error) {
	key := typeName(t)
	c.mu.RLock()
	d, ok := c.types[key]
	c.mu.RUnlock()
	if ok && d.typ == t {
		return c.build(key, d, stack)
	}
	if inst, ok := zeroInstance(t); ok {
		return inst, nil
	}
	return nil, fmt.Errorf("%w [%s]", ErrNotInstantiable, key)
}

func (c *Container) build(key string, d *definition, stack []string) (any, error) {
	if slices.Contains(stack, key) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrCircularDependency, strings.Join(stack, " -> "), key)
	}
	stack = append(stack[:len(stack):len(stack)], key)

	if !d.ctor.IsValid() {
		if inst, ok := zeroInstance(d.typ); ok {
			return inst, nil
		}
		return nil, fmt.Errorf("%w [%s]", ErrNotInstantiable, key)
	}

	p, err := c.planFor(key, d)
	if err != nil {
		return nil, err
	}

	args := make([]reflect.Value, len(p.params))
	for i, prm := range p.params {
		v, err := c.argument(key, prm, stack)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	var out []reflect.Value
	if p.variadic {
		out = d.ctor.CallSlice(args)
	} else {
		out = d.ctor.Call(args)
	}
	if p.returnsErr && !out[1].IsNil() {
		return nil, fmt.Errorf("container: constructing [%s]: %w", key, out[1].Interface().(error))
	}
	return out[0].Interface(), nil
}

// argument resolves one constructor parameter for owner.
func (c *Container) argument(owner string, prm param, stack []string) (reflect.Value, error) {
	if isPrimitive(prm.typ) {
		if prm.hasDefault {
			return prm.def, nil
		}
		return reflect.Value{}, &ParameterError{Owner: owner, Param: prm.name, Type: prm.typ.String()}
	}

	if prm.hasDefault {
		return prm.def, nil
	}
	if prm.typ == containerType {
		return reflect.ValueOf(c), nil
	}

	var (
		inst any
		err  error
	)
	if name, ok := c.registryName(prm.typ); ok {
		inst, err = c.get(name, stack)
	} else {
		inst, err = c.resolveType(prm.typ, stack)
	}
	if err != nil {
		return reflect.Value{}, fmt.Errorf("container: parameter [%s] of [%s]: %w", prm.name, owner, err)
	}

	v, err := assignable(inst, prm.typ)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w [%s] of [%s]: %v", ErrUnresolvableParameter, prm.name, owner, err)
	}
	return v, nil
}

// registryName returns the registry name whose type produces exactly t. A
// value parameter never aliases an entry built as a pointer, or vice versa.
func (c *Container) registryName(t reflect.Type) (string, bool) {
	key := typeName(t)
	name, ok := c.registry.NameForType(key)
	if !ok {
		return "", false
	}
	c.mu.RLock()
	d, known := c.types[key]
	c.mu.RUnlock()
	if known && d.typ != t {
		return "", false
	}
	return name, true
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether name has a binding.
func (c *Container) Bound(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.services[name]
	return ok
}

// Resolved reports whether a singleton instance is cached for name.
func (c *Container) Resolved(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[name]
	return ok
}

// Provides reports whether typ was registered with Provide or Declare.
func (c *Container) Provides(typ string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.types[typ]
	return ok
}

// Bindings returns the sorted names of all bindings.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.services))
	for k := range c.services {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Registry returns the registry the container was built with.
func (c *Container) Registry() *Registry { return c.registry }

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve gets the service bound to name and asserts its type.
//
//	router, err := container.Resolve[*routing.Router](c, "router")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	inst, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T, not %s", name, inst, KeyOf[T]())
	}
	return typed, nil
}

// Make constructs a fresh T the way Resolve(type) does.
//
//	ctrl, err := container.Make[*controllers.UserController](c)
func Make[T any](c *Container) (T, error) {
	var zero T
	inst, err := c.resolveType(reflect.TypeFor[T](), nil)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("container: %s resolved to %T", KeyOf[T](), inst)
	}
	return typed, nil
}
