package handler

import (
	"fmt"

	"github.com/arthur-debert/dispatchr/pkg/errors"
)

// Func handles an action for a store instance.
type Func func(instance any, payload any, action string) error

// Kind tells which variant a Handler holds.
type Kind int

const (
	// KindInvalid is the zero Handler.
	KindInvalid Kind = iota
	// KindDirect wraps a Func.
	KindDirect
	// KindByName names a method resolved on the store instance at dispatch time.
	KindByName
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindByName:
		return "method"
	default:
		return "invalid"
	}
}

// Handler is either a direct function or a method name.
type Handler struct {
	kind   Kind
	fn     Func
	method string
}

// Direct returns a handler that calls fn.
func Direct(fn Func) Handler {
	return Handler{kind: KindDirect, fn: fn}
}

// ByName returns a handler that calls the named method on the store instance.
func ByName(method string) Handler {
	return Handler{kind: KindByName, method: method}
}

// Kind returns the handler variant.
func (h Handler) Kind() Kind {
	return h.kind
}

// Func returns the direct function, if h is a direct handler.
func (h Handler) Func() (Func, bool) {
	return h.fn, h.kind == KindDirect
}

// Method returns the method name, if h is a by-name handler.
func (h Handler) Method() (string, bool) {
	return h.method, h.kind == KindByName
}

// Validate checks that h can be invoked.
func (h Handler) Validate() error {
	switch h.kind {
	case KindDirect:
		if h.fn == nil {
			return errors.New(errors.ErrInvalidInput, "direct handler has a nil function")
		}
	case KindByName:
		if h.method == "" {
			return errors.New(errors.ErrInvalidInput, "method handler has an empty method name")
		}
	default:
		return errors.New(errors.ErrInvalidInput, "handler is neither a function nor a method name")
	}
	return nil
}

// String describes the handler. Direct handlers are identified by function address.
func (h Handler) String() string {
	switch h.kind {
	case KindDirect:
		return fmt.Sprintf("func(%p)", h.fn)
	case KindByName:
		return h.method
	default:
		return "<invalid>"
	}
}

// Decl declares that a store handles Action with Handler.
type Decl struct {
	Action  string
	Handler Handler
}

// On is shorthand for a method declaration.
func On(action, method string) Decl {
	return Decl{Action: action, Handler: ByName(method)}
}

// OnFunc is shorthand for a direct function declaration.
func OnFunc(action string, fn Func) Decl {
	return Decl{Action: action, Handler: Direct(fn)}
}

// ValidateDecls checks every declaration and rejects an action declared twice.
func ValidateDecls(decls []Decl) error {
	seen := make(map[string]struct{}, len(decls))
	for i, d := range decls {
		if d.Action == "" {
			return errors.Newf(errors.ErrInvalidInput, "handler declaration %d has no action", i).
				WithDetail("index", i)
		}
		if err := d.Handler.Validate(); err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "handler for action '%s' is invalid", d.Action).
				WithDetail("action", d.Action)
		}
		if _, dup := seen[d.Action]; dup {
			return errors.Newf(errors.ErrInvalidInput, "action '%s' is declared more than once", d.Action).
				WithDetail("action", d.Action)
		}
		seen[d.Action] = struct{}{}
	}
	return nil
}

// Binding pairs the owning store's canonical name with its handler for one action.
type Binding struct {
	Name    string
	Handler Handler
}

// String implements fmt.Stringer.
func (b Binding) String() string {
	return b.Name + ":" + b.Handler.String()
}
