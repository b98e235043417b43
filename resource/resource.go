package resource

import (
	"context"
)

// DefaultPriority is the priority of a handler that never calls SetPriority.
// Lower values run earlier in a chain.
const DefaultPriority = 1000

// Type tags a resolved reference. Handlers declare the types they serve and
// the dispatcher only chains handlers that declared the reference's type.
type Type string

// Reference is a resolved, typed identifier for the target of a request.
// References are read only once resolved.
type Reference interface {
	Type() Type
}

// Handler is one link of a resource chain.
//
// Handle is called concurrently for in-flight requests and must not keep
// per-request state on the receiver. A handler that wants lower-priority
// handlers to run calls chain.Next before returning.
type Handler interface {
	Name() string
	SupportedTypes() []Type
	Priority() int
	Handle(ctx context.Context, ref Reference, chain Chain) error
}

// Initializable is implemented by handlers that need a startup hook. The
// registry calls Initialize once, before the handler is reachable from any
// chain.
type Initializable interface {
	Initialize() error
}

// Prioritized is embedded by handlers to satisfy the Priority part of Handler.
// The zero value reports DefaultPriority.
type Prioritized struct {
	value int
	set   bool
}

// Priority returns the configured priority or DefaultPriority.
func (p *Prioritized) Priority() int {
	if !p.set {
		return DefaultPriority
	}
	return p.value
}

// SetPriority sets the ordering value. It must only be called during
// initialization.
func (p *Prioritized) SetPriority(v int) {
	p.value = v
	p.set = true
}
