// pkg/dispatcher/dispatcher_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test store/domain registration policy and handler table assembly

package dispatcher_test

import (
	"testing"

	"github.com/arthur-debert/dispatchr/pkg/dispatcher"
	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/handler"
	"github.com/arthur-debert/dispatchr/pkg/identity"
	"github.com/arthur-debert/dispatchr/pkg/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainStore struct{}

func newPlain(store.Dispatcher) any { return &plainStore{} }

func class(name string, decls ...handler.Decl) *store.Class {
	return &store.Class{StoreName: name, New: newPlain, Handlers: decls}
}

func newDispatcher(t *testing.T, opts dispatcher.Options) *dispatcher.Dispatcher {
	t.Helper()
	nop := zerolog.Nop()
	opts.Logger = &nop
	d, err := dispatcher.New(opts)
	require.NoError(t, err)
	return d
}

func TestNew(t *testing.T) {
	t.Run("default bucket exists and is empty", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{
			Stores: []*store.Class{class("A", handler.On("foo", "OnFoo"))},
		})

		list, ok := d.Handlers(handler.DefaultAction)
		require.True(t, ok)
		assert.Empty(t, list)
		assert.Empty(t, d.DefaultHandlers())
	})

	t.Run("stores are registered before domains, in order", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{
			Stores:  []*store.Class{class("B"), class("A")},
			Domains: []store.Domain{store.NewDomain("z"), store.NewDomain("y")},
		})

		assert.Equal(t, []string{"B", "A"}, d.Stores())
		assert.Equal(t, []string{"z", "y"}, d.Domains())
	})

	t.Run("first registration error is returned", func(t *testing.T) {
		nop := zerolog.Nop()
		_, err := dispatcher.New(dispatcher.Options{
			Stores: []*store.Class{class("A"), class("A")},
			Logger: &nop,
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateRegistration), "got %v", err)
	})

	t.Run("MustNew panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			dispatcher.MustNew(dispatcher.Options{Stores: []*store.Class{nil}})
		})
	})
}

func TestRegisterStore(t *testing.T) {
	t.Run("invalid store", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})

		tests := []struct {
			name string
			c    *store.Class
		}{
			{"nil class", nil},
			{"no constructor", &store.Class{StoreName: "A"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := d.RegisterStore(tt.c)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidStore), "got %v", err)
			})
		}
		assert.Empty(t, d.Stores())
	})

	t.Run("missing name", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		err := d.RegisterStore(&store.Class{New: newPlain})
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingName), "got %v", err)
	})

	t.Run("invalid handler declarations leave tables unchanged", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		c := class("A", handler.On("foo", "OnFoo"), handler.On("foo", "OnFooAgain"))

		err := d.RegisterStore(c)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidStore), "got %v", err)
		assert.False(t, d.HasStore("A"))
		_, ok := d.Handlers("foo")
		assert.False(t, ok)
	})

	t.Run("identity fallback to intrinsic name", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		require.NoError(t, d.RegisterStore(&store.Class{Name: "Widget", New: newPlain}))
		assert.True(t, d.HasStore("Widget"))
	})

	t.Run("idempotent re-registration", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		c := class("A", handler.On("foo", "OnFoo"), handler.On("bar", "OnBar"))

		require.NoError(t, d.RegisterStore(c))
		require.NoError(t, d.RegisterStore(c))

		foo, _ := d.Handlers("foo")
		bar, _ := d.Handlers("bar")
		assert.Len(t, foo, 1)
		assert.Len(t, bar, 1)
		assert.Equal(t, []string{"A"}, d.Stores())
	})

	t.Run("collision rejection keeps the first class", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		first := class("A", handler.On("foo", "First"))
		second := class("A", handler.On("foo", "Second"))

		require.NoError(t, d.RegisterStore(first))
		err := d.RegisterStore(second)

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateRegistration))
		assert.Equal(t, "A", errors.GetErrorDetails(err)["name"])

		got, err := d.GetStore("A")
		require.NoError(t, err)
		assert.Same(t, first, got)

		foo, _ := d.Handlers("foo")
		assert.Equal(t, []handler.Binding{{Name: "A", Handler: handler.ByName("First")}}, foo)
	})

	t.Run("handler order follows registration order", func(t *testing.T) {
		h1 := handler.ByName("h1")
		h2 := handler.ByName("h2")
		d := newDispatcher(t, dispatcher.Options{
			Stores: []*store.Class{
				{StoreName: "S1", New: newPlain, Handlers: []handler.Decl{{Action: "foo", Handler: h1}}},
				{StoreName: "S2", New: newPlain, Handlers: []handler.Decl{{Action: "foo", Handler: h2}}},
			},
		})

		foo, ok := d.Handlers("foo")
		require.True(t, ok)
		assert.Equal(t, []handler.Binding{
			{Name: "S1", Handler: h1},
			{Name: "S2", Handler: h2},
		}, foo)
	})

	t.Run("direct handlers keep their function", func(t *testing.T) {
		called := false
		fn := func(any, any, string) error { called = true; return nil }
		d := newDispatcher(t, dispatcher.Options{
			Stores: []*store.Class{class("A", handler.OnFunc("foo", fn))},
		})

		foo, _ := d.Handlers("foo")
		require.Len(t, foo, 1)
		got, ok := foo[0].Handler.Func()
		require.True(t, ok)
		require.NoError(t, got(nil, nil, "foo"))
		assert.True(t, called)
	})

	t.Run("only explicit declarations populate the default bucket", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{
			Stores: []*store.Class{
				class("A", handler.On("foo", "OnFoo")),
				class("Logger", handler.On(handler.DefaultAction, "OnAny")),
			},
		})

		assert.Equal(t, []handler.Binding{{Name: "Logger", Handler: handler.ByName("OnAny")}}, d.DefaultHandlers())
		assert.Equal(t, []string{handler.DefaultAction, "foo"}, d.Actions())
	})
}

func TestIsRegistered(t *testing.T) {
	a := class("A")
	b := class("A")
	d := newDispatcher(t, dispatcher.Options{Stores: []*store.Class{a}})

	tests := []struct {
		name string
		ref  identity.Ref
		want bool
	}{
		{"by name", identity.ByName("A"), true},
		{"by registered class", identity.Of(a), true},
		{"by other class with same name", identity.Of(b), false},
		{"unknown name", identity.ByName("B"), false},
		{"empty name", identity.ByName(""), false},
		{"domain value", identity.Of(store.NewDomain("A")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsRegistered(tt.ref))
		})
	}
}

func TestRegisterDomain(t *testing.T) {
	t.Run("invalid domains", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		var nilDomain *store.NamedDomain

		assert.True(t, errors.IsErrorCode(d.RegisterDomain(nil), errors.ErrInvalidDomain))
		assert.True(t, errors.IsErrorCode(d.RegisterDomain(nilDomain), errors.ErrInvalidDomain))
		assert.True(t, errors.IsErrorCode(d.RegisterDomain(sliceDomain{}), errors.ErrInvalidDomain))
		assert.True(t, errors.IsErrorCode(d.RegisterDomain(&store.NamedDomain{}), errors.ErrMissingName))
	})

	t.Run("idempotent and collision checked", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		dom := store.NewDomain("checkout")

		require.NoError(t, d.RegisterDomain(dom))
		require.NoError(t, d.RegisterDomain(dom))

		err := d.RegisterDomain(store.NewDomain("checkout"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateRegistration))
		assert.Equal(t, "domains", errors.GetErrorDetails(err)["namespace"])

		got, err := d.GetDomain("checkout")
		require.NoError(t, err)
		assert.Same(t, dom, got)
		assert.Equal(t, []string{"checkout"}, d.Domains())
	})

	t.Run("comparable value domains", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		require.NoError(t, d.RegisterDomain(valueDomain{name: "v"}))
		require.NoError(t, d.RegisterDomain(valueDomain{name: "v"}))
		assert.True(t, d.IsRegisteredDomain(identity.Of(valueDomain{name: "v"})))
	})

	t.Run("interface fields holding slices are not comparable", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		dom := metaDomain{name: "meta", meta: []string{"a"}}

		err := d.RegisterDomain(dom)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDomain))
		assert.False(t, d.HasDomain("meta"))
		assert.NotPanics(t, func() {
			assert.True(t, errors.IsErrorCode(d.RegisterDomain(dom), errors.ErrInvalidDomain))
		})

		// the same type holding a comparable value registers fine
		require.NoError(t, d.RegisterDomain(metaDomain{name: "meta", meta: "plain"}))
		require.NoError(t, d.RegisterDomain(metaDomain{name: "meta", meta: "plain"}))
		assert.True(t, d.IsRegisteredDomain(identity.Of(metaDomain{name: "meta", meta: "plain"})))
		assert.NotPanics(t, func() {
			assert.False(t, d.IsRegisteredDomain(identity.Of(dom)))
		})
	})

	t.Run("domains do not touch the handler table", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		require.NoError(t, d.RegisterDomain(store.NewDomain("foo")))
		assert.Equal(t, []string{handler.DefaultAction}, d.Actions())
	})

	t.Run("namespace independence", func(t *testing.T) {
		d := newDispatcher(t, dispatcher.Options{})
		require.NoError(t, d.RegisterStore(class("A")))
		require.NoError(t, d.RegisterDomain(store.NewDomain("A")))

		assert.True(t, d.HasStore("A"))
		assert.True(t, d.HasDomain("A"))
	})
}

func TestIsRegisteredDomain(t *testing.T) {
	dom := store.NewDomain("checkout")
	other := store.NewDomain("checkout")
	d := newDispatcher(t, dispatcher.Options{
		Stores:  []*store.Class{class("cart")},
		Domains: []store.Domain{dom},
	})

	assert.True(t, d.IsRegisteredDomain(identity.ByName("checkout")))
	assert.True(t, d.IsRegisteredDomain(identity.Of(dom)))
	assert.False(t, d.IsRegisteredDomain(identity.Of(other)))
	assert.False(t, d.IsRegisteredDomain(identity.ByName("cart")))
	assert.False(t, d.IsRegisteredDomain(identity.ByName("")))
}

func TestQueries(t *testing.T) {
	d := newDispatcher(t, dispatcher.Options{
		Stores: []*store.Class{class("A")},
	})

	_, err := d.GetStore("missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = d.GetDomain("missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, ok := d.Handlers("unregistered")
	assert.False(t, ok)
}

func TestCreateContext(t *testing.T) {
	d := newDispatcher(t, dispatcher.Options{
		Stores: []*store.Class{
			class("A", handler.On("foo", "OnFoo")),
			class("B", handler.On(handler.DefaultAction, "OnAny")),
		},
		Domains: []store.Domain{store.NewDomain("A")},
	})

	before := d.Snapshot()
	first := d.CreateContext("payload-1")
	second := d.CreateContext(map[string]int{"payload": 2})
	after := d.Snapshot()

	assert.NotSame(t, first, second)
	assert.Equal(t, "payload-1", first.External())
	assert.Equal(t, map[string]int{"payload": 2}, second.External())
	assert.Equal(t, before, after)
}

type sliceDomain struct {
	tags []string
}

func (sliceDomain) Identity() identity.Names { return identity.Names{Name: "slice"} }

type metaDomain struct {
	name string
	meta any
}

func (m metaDomain) Identity() identity.Names { return identity.Names{StoreName: m.name} }

type valueDomain struct {
	name string
}

func (v valueDomain) Identity() identity.Names { return identity.Names{StoreName: v.name} }
