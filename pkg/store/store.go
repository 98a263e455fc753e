package store

import (
	"github.com/arthur-debert/dispatchr/pkg/handler"
	"github.com/arthur-debert/dispatchr/pkg/identity"
)

// Dispatcher is the restricted view of a dispatch context handed to store
// constructors.
type Dispatcher interface {
	// Context returns the opaque value the context was created with.
	Context() any
	// Store returns the live instance of another store, creating it if needed.
	Store(name string) (any, error)
	// WaitFor runs the pending handlers of the named stores, then fn.
	WaitFor(names []string, fn func() error) error
}

// Constructor builds a store instance bound to a dispatch context.
type Constructor func(d Dispatcher) any

// Class describes a store. Classes are registered by pointer: the same
// *Class may be registered any number of times, a different *Class with the
// same name may not.
type Class struct {
	// StoreName is the preferred registration name.
	StoreName string
	// Name is the intrinsic type name, used when StoreName is empty.
	Name string
	// New builds instances. A Class without one is not a store.
	New Constructor
	// Handlers is kept in declaration order.
	Handlers []handler.Decl
}

// Identity implements identity.Identifiable.
func (c *Class) Identity() identity.Names {
	if c == nil {
		return identity.Names{}
	}
	return identity.Names{StoreName: c.StoreName, Name: c.Name}
}

// Domain is a named grouping unit. Implementations must be comparable;
// pointers are the usual choice.
type Domain interface {
	identity.Identifiable
}

// NamedDomain is the plain Domain implementation.
type NamedDomain struct {
	DomainName string
	Name       string
}

// NewDomain returns a domain registered under name.
func NewDomain(name string) *NamedDomain {
	return &NamedDomain{DomainName: name}
}

// Identity implements identity.Identifiable.
func (d *NamedDomain) Identity() identity.Names {
	if d == nil {
		return identity.Names{}
	}
	return identity.Names{StoreName: d.DomainName, Name: d.Name}
}

// MethodResolver lets an instance resolve method handlers without reflection.
type MethodResolver interface {
	ResolveMethod(name string) (handler.Func, bool)
}

// Dehydrator is implemented by instances whose state can be exported.
type Dehydrator interface {
	Dehydrate() any
}

// Rehydrator is implemented by instances whose state can be restored.
type Rehydrator interface {
	Rehydrate(state any) error
}
