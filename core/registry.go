package core

import (
	"fmt"

	"github.com/caasmo/webjarcors/resource"
	"github.com/samber/do/v2"
)

// HandlerFactory builds a resource handler, pulling its dependencies from
// the injector.
type HandlerFactory func(i do.Injector) (resource.Handler, error)

// Registry collects handler factories by name and builds them into a
// dispatcher once every dependency is provided.
type Registry struct {
	injector do.Injector
	names    []string
}

func NewRegistry(injector do.Injector) *Registry {
	if injector == nil {
		panic("registry injector cannot be nil")
	}
	return &Registry{injector: injector}
}

func serviceName(handler string) string {
	return "resource.handler:" + handler
}

// Register declares a handler factory. Factories run on Build, in
// registration order.
func (r *Registry) Register(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("registry: handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("registry: nil factory for handler %q", name)
	}
	for _, n := range r.names {
		if n == name {
			return fmt.Errorf("%w: %q", resource.ErrDuplicateHandler, name)
		}
	}
	do.ProvideNamed(r.injector, serviceName(name), func(i do.Injector) (resource.Handler, error) {
		return factory(i)
	})
	r.names = append(r.names, name)
	return nil
}

// Names returns the declared handler names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Build instantiates every declared handler, runs its Initialize hook and
// registers it with d. The first failure stops the build.
func (r *Registry) Build(d *resource.Dispatcher) error {
	for _, name := range r.names {
		h, err := do.InvokeNamed[resource.Handler](r.injector, serviceName(name))
		if err != nil {
			return fmt.Errorf("registry: building handler %q: %w", name, err)
		}
		if h.Name() != name {
			return fmt.Errorf("registry: factory for %q built handler %q", name, h.Name())
		}
		if err := resource.Initialize(h); err != nil {
			return err
		}
		if err := d.Register(h); err != nil {
			return fmt.Errorf("registry: %w", err)
		}
	}
	return nil
}
