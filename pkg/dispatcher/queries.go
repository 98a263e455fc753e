package dispatcher

import (
	"github.com/arthur-debert/dispatchr/pkg/dispatchctx"
	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/handler"
	"github.com/arthur-debert/dispatchr/pkg/store"
)

// Snapshot is a point-in-time copy of the dispatcher tables.
type Snapshot struct {
	Stores   []string
	Domains  []string
	Handlers map[string][]handler.Binding
}

// GetStore returns the class registered under name.
func (d *Dispatcher) GetStore(name string) (*store.Class, error) {
	c, ok := d.stores.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "store '%s' not found", name).
			WithDetail("name", name)
	}
	return c, nil
}

// HasStore reports whether a store is registered under name.
func (d *Dispatcher) HasStore(name string) bool {
	return d.stores.Has(name)
}

// Stores returns store names in registration order.
func (d *Dispatcher) Stores() []string {
	return d.stores.Names()
}

// GetDomain returns the domain registered under name.
func (d *Dispatcher) GetDomain(name string) (store.Domain, error) {
	dom, ok := d.domains.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "domain '%s' not found", name).
			WithDetail("name", name)
	}
	return dom, nil
}

// HasDomain reports whether a domain is registered under name.
func (d *Dispatcher) HasDomain(name string) bool {
	return d.domains.Has(name)
}

// Domains returns domain names in registration order.
func (d *Dispatcher) Domains() []string {
	return d.domains.Names()
}

// Handlers returns a copy of the bindings registered for action and whether
// the action has an entry. Callers fall back to the default bucket when it
// does not.
func (d *Dispatcher) Handlers(action string) ([]handler.Binding, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.handlers.Bindings(action)
}

// DefaultHandlers returns the bindings of the default bucket.
func (d *Dispatcher) DefaultHandlers() []handler.Binding {
	list, _ := d.Handlers(handler.DefaultAction)
	return list
}

// Actions returns every action with an entry, default first, then in the
// order actions were first registered.
func (d *Dispatcher) Actions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.handlers.Actions()
}

// Snapshot copies all three tables under one lock.
func (d *Dispatcher) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{
		Stores:   d.stores.Names(),
		Domains:  d.domains.Names(),
		Handlers: d.handlers.Snapshot(),
	}
}

var _ dispatchctx.Source = (*Dispatcher)(nil)
