package dispatchctx

import (
	"time"

	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/handler"
	"github.com/arthur-debert/dispatchr/pkg/store"
	"github.com/rs/zerolog"
)

// Source is the read-only view of the dispatcher tables a context needs.
type Source interface {
	GetStore(name string) (*store.Class, error)
	Handlers(action string) ([]handler.Binding, bool)
}

type callState int

const (
	statePending callState = iota
	stateRunning
	stateDone
)

// run is the bookkeeping for an in-flight dispatch
type run struct {
	action   string
	payload  any
	bindings map[string]handler.Binding
	order    []string
	status   map[string]callState
	result   *Result
}

// Context executes dispatches against one set of store instances.
type Context struct {
	source       Source
	external     any
	logger       zerolog.Logger
	instances    map[string]any
	constructing map[string]bool
	current      *run
}

// New creates a context reading tables from source. external is passed
// through untouched to store constructors and handlers.
func New(source Source, external any, logger zerolog.Logger) *Context {
	return &Context{
		source:       source,
		external:     external,
		logger:       logger,
		instances:    make(map[string]any),
		constructing: make(map[string]bool),
	}
}

// External returns the opaque value the context was created with.
func (c *Context) External() any {
	return c.external
}

// Dispatching returns the action currently being dispatched, if any.
func (c *Context) Dispatching() (string, bool) {
	if c.current == nil {
		return "", false
	}
	return c.current.action, true
}

// Store returns the instance of the named store, constructing it on first use.
func (c *Context) Store(name string) (any, error) {
	if inst, ok := c.instances[name]; ok {
		return inst, nil
	}

	class, err := c.source.GetStore(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreNotFound, "store '%s' is not registered", name).
			WithDetail("store", name)
	}

	if c.constructing[name] {
		return nil, errors.Newf(errors.ErrCircularWait, "store '%s' was requested while being constructed", name).
			WithDetail("store", name)
	}
	inst := c.construct(name, class)

	if inst == nil {
		return nil, errors.Newf(errors.ErrInvalidStore, "constructor for store '%s' returned nil", name).
			WithDetail("store", name)
	}

	c.instances[name] = inst
	c.logger.Trace().Str("store", name).Msg("Store instantiated")
	return inst, nil
}

// construct runs the class constructor with name marked as in construction.
// The mark is cleared even if the constructor panics.
func (c *Context) construct(name string, class *store.Class) any {
	c.constructing[name] = true
	defer delete(c.constructing, name)
	return class.New(view{c})
}

// Resolve returns the bindings a dispatch of action would run: the action's
// own bindings in table order, followed by the default binding of every
// store that has no binding for the action.
func (c *Context) Resolve(action string) []handler.Binding {
	specific, _ := c.source.Handlers(action)
	if action == handler.DefaultAction {
		return specific
	}

	defaults, _ := c.source.Handlers(handler.DefaultAction)
	if len(defaults) == 0 {
		return specific
	}

	seen := make(map[string]struct{}, len(specific))
	for _, b := range specific {
		seen[b.Name] = struct{}{}
	}

	out := specific
	for _, b := range defaults {
		if _, ok := seen[b.Name]; ok {
			continue
		}
		seen[b.Name] = struct{}{}
		out = append(out, b)
	}
	return out
}

// Dispatch runs every binding resolved for action with payload. Each store's
// handler runs at most once. The first handler error stops the dispatch; the
// returned Result lists the calls made up to that point.
func (c *Context) Dispatch(action string, payload any) (*Result, error) {
	if action == "" {
		return nil, errors.New(errors.ErrInvalidAction, "action name cannot be empty")
	}
	if c.current != nil {
		return nil, errors.Newf(errors.ErrDispatchInProgress,
			"cannot dispatch '%s' while '%s' is being dispatched", action, c.current.action).
			WithDetail("action", action).
			WithDetail("current", c.current.action)
	}

	bindings := c.Resolve(action)
	r := &run{
		action:   action,
		payload:  payload,
		bindings: make(map[string]handler.Binding, len(bindings)),
		order:    make([]string, 0, len(bindings)),
		status:   make(map[string]callState, len(bindings)),
		result:   &Result{Action: action, StartTime: time.Now()},
	}
	for _, b := range bindings {
		r.bindings[b.Name] = b
		r.order = append(r.order, b.Name)
	}

	c.logger.Debug().
		Str("action", action).
		Int("handlers", len(bindings)).
		Msg("Dispatching action")

	if len(bindings) == 0 {
		c.logger.Debug().Str("action", action).Msg("No handlers registered for action")
	}

	c.current = r
	defer func() {
		c.current = nil
		r.result.EndTime = time.Now()
	}()

	for _, name := range r.order {
		if err := c.call(r, name); err != nil {
			return r.result, err
		}
	}
	return r.result, nil
}

// WaitFor runs the pending handlers of the named stores for the current
// action, then fn. It may only be called from within a handler.
func (c *Context) WaitFor(names []string, fn func() error) error {
	r := c.current
	if r == nil {
		return errors.New(errors.ErrDispatchNotRunning, "WaitFor called outside of a dispatch")
	}

	for _, name := range names {
		if _, ok := r.bindings[name]; !ok {
			return errors.Newf(errors.ErrStoreNotFound,
				"cannot wait for store '%s': it has no handler for action '%s'", name, r.action).
				WithDetail("store", name).
				WithDetail("action", r.action)
		}
		if err := c.call(r, name); err != nil {
			return err
		}
	}

	if fn == nil {
		return nil
	}
	return fn()
}

func (c *Context) call(r *run, name string) error {
	switch r.status[name] {
	case stateDone:
		return nil
	case stateRunning:
		return errors.Newf(errors.ErrCircularWait,
			"store '%s' is already handling action '%s'", name, r.action).
			WithDetail("store", name).
			WithDetail("action", r.action)
	}
	r.status[name] = stateRunning

	binding := r.bindings[name]
	err := c.invoke(r, binding)
	r.status[name] = stateDone
	r.result.Calls = append(r.result.Calls, Call{Store: name, Handler: binding.Handler.String(), Err: err})

	if err != nil {
		c.logger.Warn().Err(err).Str("store", name).Str("action", r.action).Msg("Handler failed")
		return errors.Wrapf(err, errors.ErrHandlerFailed, "store '%s' failed to handle '%s'", name, r.action).
			WithDetail("store", name).
			WithDetail("action", r.action)
	}

	c.logger.Trace().Str("store", name).Str("action", r.action).Str("handler", binding.Handler.String()).Msg("Handler completed")
	return nil
}

func (c *Context) invoke(r *run, b handler.Binding) error {
	inst, err := c.Store(b.Name)
	if err != nil {
		return err
	}

	fn, err := resolveFunc(inst, b)
	if err != nil {
		return err
	}
	return fn(inst, r.payload, r.action)
}

// view is the restricted interface handed to store constructors.
type view struct {
	c *Context
}

func (v view) Context() any { return v.c.external }

func (v view) Store(name string) (any, error) { return v.c.Store(name) }

func (v view) WaitFor(names []string, fn func() error) error { return v.c.WaitFor(names, fn) }

var _ store.Dispatcher = view{}
