package dispatcher

import (
	"reflect"
	"sync"

	"github.com/arthur-debert/dispatchr/pkg/dispatchctx"
	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/handler"
	"github.com/arthur-debert/dispatchr/pkg/identity"
	"github.com/arthur-debert/dispatchr/pkg/logging"
	"github.com/arthur-debert/dispatchr/pkg/registry"
	"github.com/arthur-debert/dispatchr/pkg/store"
	"github.com/rs/zerolog"
)

// Options configures a new Dispatcher
type Options struct {
	// Stores are registered first, in order
	Stores []*store.Class

	// Domains are registered after all stores, in order
	Domains []store.Domain

	// Logger overrides the component logger
	Logger *zerolog.Logger
}

// Dispatcher owns the store namespace, the domain namespace and the
// handler table built from store registrations.
type Dispatcher struct {
	mu       sync.RWMutex
	stores   registry.Registry[*store.Class]
	domains  registry.Registry[store.Domain]
	handlers *handler.Table
	logger   zerolog.Logger
}

// New creates a Dispatcher and registers opts.Stores then opts.Domains.
// The first registration error is returned.
func New(opts Options) (*Dispatcher, error) {
	logger := logging.GetLogger("dispatcher")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	d := &Dispatcher{
		stores:   registry.New[*store.Class](),
		domains:  registry.New[store.Domain](),
		handlers: handler.NewTable(),
		logger:   logger,
	}

	for _, s := range opts.Stores {
		if err := d.RegisterStore(s); err != nil {
			return nil, err
		}
	}
	for _, dom := range opts.Domains {
		if err := d.RegisterDomain(dom); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// MustNew is like New but panics on error.
// Registration errors are configuration errors in bootstrap code.
func MustNew(opts Options) *Dispatcher {
	d, err := New(opts)
	if err != nil {
		panic("failed to create dispatcher: " + err.Error())
	}
	return d
}

// RegisterStore registers a store class and appends its handler
// declarations to the handler table. Registering the same *Class again is a
// no-op; a different class under a taken name is rejected. A failed
// registration changes nothing.
func (d *Dispatcher) RegisterStore(c *store.Class) error {
	if c == nil || c.New == nil {
		return errors.New(errors.ErrInvalidStore, "store must be a class with a constructor")
	}

	name := identity.Resolve(c)
	if name == "" {
		return errors.New(errors.ErrMissingName, "store has neither a store name nor a type name")
	}

	if err := handler.ValidateDecls(c.Handlers); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidStore, "store '%s' has invalid handlers", name).
			WithDetail("name", name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.stores.Lookup(name); ok {
		if existing == c {
			d.logger.Trace().Str("store", name).Msg("Store already registered")
			return nil
		}
		d.logger.Warn().Str("store", name).Msg("Rejected duplicate store registration")
		return errors.Newf(errors.ErrDuplicateRegistration, "store '%s' is already registered", name).
			WithDetail("name", name).
			WithDetail("namespace", "stores")
	}

	if err := d.stores.Register(name, c); err != nil {
		return err
	}

	for _, decl := range c.Handlers {
		d.handlers.Append(decl.Action, handler.Binding{Name: name, Handler: decl.Handler})
	}

	d.logger.Debug().
		Str("store", name).
		Int("handlers", len(c.Handlers)).
		Msg("Store registered")
	return nil
}

// RegisterDomain registers a domain under its canonical name. Domains live
// in their own namespace and do not touch the handler table.
func (d *Dispatcher) RegisterDomain(dom store.Domain) error {
	if isNil(dom) {
		return errors.New(errors.ErrInvalidDomain, "domain cannot be nil")
	}
	// the dynamic value, so interface fields holding slices or maps are caught
	if !reflect.ValueOf(dom).Comparable() {
		return errors.Newf(errors.ErrInvalidDomain, "domain of type %T is not comparable", dom)
	}

	name := identity.Resolve(dom)
	if name == "" {
		return errors.New(errors.ErrMissingName, "domain has no name")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.domains.Lookup(name); ok {
		if existing == dom {
			d.logger.Trace().Str("domain", name).Msg("Domain already registered")
			return nil
		}
		d.logger.Warn().Str("domain", name).Msg("Rejected duplicate domain registration")
		return errors.Newf(errors.ErrDuplicateRegistration, "domain '%s' is already registered", name).
			WithDetail("name", name).
			WithDetail("namespace", "domains")
	}

	if err := d.domains.Register(name, dom); err != nil {
		return err
	}

	d.logger.Debug().Str("domain", name).Msg("Domain registered")
	return nil
}

// IsRegistered reports whether ref names a registered store. A value
// reference must also be the exact class registered under that name.
func (d *Dispatcher) IsRegistered(ref identity.Ref) bool {
	name := ref.Resolve()
	if name == "" {
		return false
	}

	c, ok := d.stores.Lookup(name)
	if !ok {
		return false
	}
	if ref.IsName() {
		return true
	}

	other, ok := ref.Value().(*store.Class)
	return ok && other == c
}

// IsRegisteredDomain is IsRegistered for the domain namespace.
func (d *Dispatcher) IsRegisteredDomain(ref identity.Ref) bool {
	name := ref.Resolve()
	if name == "" {
		return false
	}

	dom, ok := d.domains.Lookup(name)
	if !ok {
		return false
	}
	if ref.IsName() {
		return true
	}

	// dom passed the check in RegisterDomain; other may not have
	other := ref.Value()
	if !reflect.ValueOf(other).Comparable() {
		return false
	}
	return other == identity.Identifiable(dom)
}

// CreateContext returns a new dispatch context sharing this dispatcher's
// tables. external is passed through untouched.
func (d *Dispatcher) CreateContext(external any) *dispatchctx.Context {
	return dispatchctx.New(d, external, d.logger)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
