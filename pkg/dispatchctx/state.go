package dispatchctx

import (
	"sort"

	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/store"
)

// State is the exported state of a context's store instances.
type State struct {
	Stores map[string]any `json:"stores" yaml:"stores" toml:"stores"`
}

// Dehydrate collects the state of every instantiated store that implements
// store.Dehydrator.
func (c *Context) Dehydrate() State {
	state := State{Stores: make(map[string]any)}
	for name, inst := range c.instances {
		if d, ok := inst.(store.Dehydrator); ok {
			state.Stores[name] = d.Dehydrate()
		}
	}
	return state
}

// Rehydrate instantiates the stores named in state and restores them.
// Stores are processed in name order; instances that do not implement
// store.Rehydrator are created but left untouched.
func (c *Context) Rehydrate(state State) error {
	names := make([]string, 0, len(state.Stores))
	for name := range state.Stores {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		inst, err := c.Store(name)
		if err != nil {
			return err
		}

		r, ok := inst.(store.Rehydrator)
		if !ok {
			c.logger.Debug().Str("store", name).Msg("Store does not support rehydration, skipping")
			continue
		}
		if err := r.Rehydrate(state.Stores[name]); err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to rehydrate store '%s'", name).
				WithDetail("store", name)
		}
	}
	return nil
}
