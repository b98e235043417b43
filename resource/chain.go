package resource

import (
	"context"
)

// Chain is the continuation handed to a Handler. It is a value: calling Next
// runs the handler at the current position with a chain positioned one
// further, so nothing is shared between concurrent requests and a handler
// cannot advance the cursor of its caller.
type Chain struct {
	handlers []Handler
	pos      int
}

// NewChain returns a chain positioned on the first handler. Handlers run in
// the given order.
func NewChain(handlers ...Handler) Chain {
	for _, h := range handlers {
		if h == nil {
			panic("chain handler cannot be nil")
		}
	}
	return Chain{handlers: handlers}
}

// Next invokes the next handler, if any, and returns its error unchanged.
// An exhausted chain returns nil. A cancelled context stops the chain before
// the next handler runs.
func (c Chain) Next(ctx context.Context, ref Reference) error {
	if c.pos >= len(c.handlers) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	h := c.handlers[c.pos]
	return h.Handle(ctx, ref, Chain{handlers: c.handlers, pos: c.pos + 1})
}

// Len returns the total number of handlers in the chain.
func (c Chain) Len() int {
	return len(c.handlers)
}

// Remaining returns how many handlers Next can still reach.
func (c Chain) Remaining() int {
	return len(c.handlers) - c.pos
}

// Names lists the handler names from the current position on.
func (c Chain) Names() []string {
	names := make([]string, 0, c.Remaining())
	for _, h := range c.handlers[c.pos:] {
		names = append(names, h.Name())
	}
	return names
}
