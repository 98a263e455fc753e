package handler

// DefaultAction is the reserved bucket for stores that handle every action
// they have no specific binding for.
const DefaultAction = "default"

// Table maps action names to ordered bindings.
// Table is not safe for concurrent mutation; the owner serialises writes.
type Table struct {
	order []string
	lists map[string][]Binding
}

// NewTable returns a table holding only the empty default bucket.
func NewTable() *Table {
	return &Table{
		order: []string{DefaultAction},
		lists: map[string][]Binding{DefaultAction: {}},
	}
}

// Append adds b at the end of the action's list, creating the list if needed.
func (t *Table) Append(action string, b Binding) {
	if _, ok := t.lists[action]; !ok {
		t.order = append(t.order, action)
	}
	t.lists[action] = append(t.lists[action], b)
}

// Bindings returns a copy of the action's list and whether the action has an entry.
func (t *Table) Bindings(action string) ([]Binding, bool) {
	list, ok := t.lists[action]
	if !ok {
		return nil, false
	}
	out := make([]Binding, len(list))
	copy(out, list)
	return out, true
}

// Has reports whether the action has an entry. The default bucket always does.
func (t *Table) Has(action string) bool {
	_, ok := t.lists[action]
	return ok
}

// Actions returns action names in first-seen order, default first.
func (t *Table) Actions() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of actions, the default bucket included.
func (t *Table) Len() int {
	return len(t.order)
}

// Snapshot returns a deep copy of the table contents.
func (t *Table) Snapshot() map[string][]Binding {
	out := make(map[string][]Binding, len(t.lists))
	for action, list := range t.lists {
		cp := make([]Binding, len(list))
		copy(cp, list)
		out[action] = cp
	}
	return out
}
