package identity_test

import (
	"testing"

	"github.com/arthur-debert/dispatchr/pkg/identity"
	"github.com/stretchr/testify/assert"
)

type widget struct {
	names identity.Names
}

func (w *widget) Identity() identity.Names { return w.names }

func TestNamesResolve(t *testing.T) {
	tests := []struct {
		name  string
		names identity.Names
		want  string
	}{
		{"store name preferred", identity.Names{StoreName: "CartStore", Name: "Cart"}, "CartStore"},
		{"falls back to intrinsic name", identity.Names{Name: "Widget"}, "Widget"},
		{"empty when nothing set", identity.Names{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.names.Resolve())
		})
	}
}

func TestRef(t *testing.T) {
	t.Run("name reference is returned unchanged", func(t *testing.T) {
		ref := identity.ByName("  Spaced  ")
		assert.Equal(t, "  Spaced  ", ref.Resolve())
		assert.True(t, ref.IsName())
		assert.Nil(t, ref.Value())
	})

	t.Run("value reference resolves through Identity", func(t *testing.T) {
		w := &widget{names: identity.Names{Name: "Widget"}}
		ref := identity.Of(w)
		assert.Equal(t, "Widget", ref.Resolve())
		assert.Equal(t, "Widget", ref.String())
		assert.False(t, ref.IsName())
		assert.Same(t, w, ref.Value())
	})

	t.Run("zero ref resolves to empty", func(t *testing.T) {
		var ref identity.Ref
		assert.Equal(t, "", ref.Resolve())
	})
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "", identity.Resolve(nil))
	assert.Equal(t, "S", identity.Resolve(&widget{names: identity.Names{StoreName: "S", Name: "W"}}))
}
