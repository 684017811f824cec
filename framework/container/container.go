package container

import (
	"fmt"
	"sync"
)

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// binding holds a registered factory and whether it is a singleton.
type binding struct {
	factory   Factory
	singleton bool
}

// Container is the IoC container — mirrors Laravel's
// Illuminate\Container\Container, reduced to the surface this framework
// actually needs: Bind / Singleton / Instance / Alias and Make / Resolve.
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]*binding

	// abstract → resolved singleton instance
	instances map[string]any

	// alias → abstract (canonical key)
	aliases map[string]string
}

// New creates an empty container, bound to itself under "container".
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory — a new instance per Make.
//
//	c.Bind("validator", func(c *container.Container) any {
//	    return validation.MakeFiles(nil, nil)
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.register(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	c.Singleton("upload.limits", func(c *container.Container) any {
//	    cfg := container.Resolve[*config.Config](c, "config")
//	    return upload.Limits{TmpDir: cfg.Upload.TmpDir, MaxFileBytes: cfg.Upload.MaxBytes}
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.register(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton.
//
//	c.Instance("config", cfg)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

func (c *Container) register(abstract string, factory Factory, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	// Drop any stale singleton so it is rebuilt with the new factory.
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// Alias registers an alternative name for an abstract.
//
//	c.Alias("upload.limits", "limits")
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract. Panics when nothing is registered under it —
// a missing binding is a bootstrap bug, not a runtime condition.
func (c *Container) Make(abstract string) any {
	c.mu.RLock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst
	}
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("container: no binding registered for [%s]", abstract))
	}

	instance := b.factory(c)

	if b.singleton {
		c.mu.Lock()
		c.instances[key] = instance
		c.mu.Unlock()
	}
	return instance
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the abstract has been resolved at least once.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// Forget removes all registrations for an abstract (binding + instance).
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
}

// Flush resets the entire container.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]*binding)
	c.instances = make(map[string]any)
	c.aliases = make(map[string]string)
}

// canonical resolves an alias to its canonical key. Callers hold mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	limits := container.Resolve[upload.Limits](c, "upload.limits")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// MustResolve is like Resolve but returns (T, bool) without panicking.
func MustResolve[T any](c *Container, abstract string) (T, bool) {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	return typed, ok
}
