package resource

import (
	"errors"
	"fmt"
)

var (
	ErrNoHandler        = errors.New("no handler for resource type")
	ErrDuplicateHandler = errors.New("handler already registered")
	ErrNoSupportedTypes = errors.New("handler supports no resource type")
)

// InitError reports a failed Initialize hook. It is the only error kind the
// registry adds on top of what a handler returns.
type InitError struct {
	Handler string
	Err     error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("resource: initializing handler %q: %v", e.Handler, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Initialize runs h's Initialize hook if it has one. Errors come back as
// *InitError.
func Initialize(h Handler) error {
	in, ok := h.(Initializable)
	if !ok {
		return nil
	}
	if err := in.Initialize(); err != nil {
		return &InitError{Handler: h.Name(), Err: err}
	}
	return nil
}
