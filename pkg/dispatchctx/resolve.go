package dispatchctx

import (
	"reflect"

	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/handler"
	"github.com/arthur-debert/dispatchr/pkg/store"
)

// resolveFunc turns a binding into a callable for inst. Method handlers are
// looked up through store.MethodResolver first, then by exported method name.
func resolveFunc(inst any, b handler.Binding) (handler.Func, error) {
	if fn, ok := b.Handler.Func(); ok {
		return fn, nil
	}

	method, ok := b.Handler.Method()
	if !ok {
		return nil, errors.Newf(errors.ErrHandlerNotFound, "store '%s' has an invalid handler", b.Name).
			WithDetail("store", b.Name)
	}

	if r, ok := inst.(store.MethodResolver); ok {
		if fn, ok := r.ResolveMethod(method); ok && fn != nil {
			return fn, nil
		}
	}

	m := reflect.ValueOf(inst).MethodByName(method)
	if !m.IsValid() {
		return nil, errors.Newf(errors.ErrHandlerNotFound, "store '%s' has no method '%s'", b.Name, method).
			WithDetail("store", b.Name).
			WithDetail("method", method)
	}

	switch f := m.Interface().(type) {
	case func(any, string) error:
		return func(_ any, payload any, action string) error { return f(payload, action) }, nil
	case func(any) error:
		return func(_ any, payload any, _ string) error { return f(payload) }, nil
	case func(any, string):
		return func(_ any, payload any, action string) error { f(payload, action); return nil }, nil
	case func(any):
		return func(_ any, payload any, _ string) error { f(payload); return nil }, nil
	default:
		return nil, errors.Newf(errors.ErrHandlerNotFound,
			"method '%s' on store '%s' has unsupported signature %s", method, b.Name, m.Type()).
			WithDetail("store", b.Name).
			WithDetail("method", method)
	}
}
