package store_test

import (
	"testing"

	"github.com/arthur-debert/dispatchr/pkg/identity"
	"github.com/arthur-debert/dispatchr/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestClassIdentity(t *testing.T) {
	t.Run("store name preferred", func(t *testing.T) {
		c := &store.Class{StoreName: "CartStore", Name: "Cart"}
		assert.Equal(t, "CartStore", identity.Resolve(c))
	})

	t.Run("intrinsic name fallback", func(t *testing.T) {
		c := &store.Class{Name: "Widget"}
		assert.Equal(t, "Widget", identity.Resolve(c))
	})

	t.Run("nil class has no identity", func(t *testing.T) {
		var c *store.Class
		assert.Equal(t, identity.Names{}, c.Identity())
		assert.Equal(t, "", identity.Of(c).Resolve())
	})
}

func TestDomainIdentity(t *testing.T) {
	d := store.NewDomain("checkout")
	assert.Equal(t, "checkout", identity.Resolve(d))

	fallback := &store.NamedDomain{Name: "Billing"}
	assert.Equal(t, "Billing", identity.Resolve(fallback))

	var nilDomain *store.NamedDomain
	assert.Equal(t, identity.Names{}, nilDomain.Identity())
}
