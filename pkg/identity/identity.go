package identity

// Names holds the two names a store or domain may expose.
// StoreName is preferred; Name is the intrinsic fallback.
type Names struct {
	StoreName string
	Name      string
}

// Resolve returns the canonical name, or "" when neither name is set.
func (n Names) Resolve() string {
	if n.StoreName != "" {
		return n.StoreName
	}
	return n.Name
}

// Identifiable is implemented by anything that can be registered by identity.
type Identifiable interface {
	Identity() Names
}

// Ref refers to a registered value either by name or by the value itself.
// The zero Ref resolves to "".
type Ref struct {
	name  string
	value Identifiable
}

// ByName returns a reference to whatever is registered under name.
func ByName(name string) Ref {
	return Ref{name: name}
}

// Of returns a reference to v. Lookups through it also check that v itself,
// and not just something with the same name, is registered.
func Of(v Identifiable) Ref {
	return Ref{value: v}
}

// Resolve returns the canonical name of the reference.
func (r Ref) Resolve() string {
	if r.value == nil {
		return r.name
	}
	return r.value.Identity().Resolve()
}

// Value returns the referenced value, or nil for a name reference.
func (r Ref) Value() Identifiable {
	return r.value
}

// IsName reports whether r was built with ByName.
func (r Ref) IsName() bool {
	return r.value == nil
}

// String implements fmt.Stringer.
func (r Ref) String() string {
	return r.Resolve()
}

// Resolve returns the canonical name of v, or "" for a nil value.
func Resolve(v Identifiable) string {
	if v == nil {
		return ""
	}
	return v.Identity().Resolve()
}
