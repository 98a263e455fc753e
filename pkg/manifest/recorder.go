package manifest

import (
	"sync"

	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/handler"
	"github.com/arthur-debert/dispatchr/pkg/store"
)

// Event is one action received by a Recorder
type Event struct {
	Action  string `json:"action" yaml:"action" toml:"action"`
	Method  string `json:"method" yaml:"method" toml:"method"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty" toml:"payload,omitempty"`
}

// Recorder is the store instance behind manifest-declared stores. Every
// method name resolves to a handler that appends an Event.
type Recorder struct {
	mu     sync.Mutex
	name   string
	d      store.Dispatcher
	waits  map[string][]string
	events []Event
}

// NewRecorder creates a recorder for store name. waits maps a method name to
// the stores its handler waits for before recording.
func NewRecorder(name string, d store.Dispatcher, waits map[string][]string) *Recorder {
	return &Recorder{name: name, d: d, waits: waits}
}

// Name returns the store name the recorder was created for
func (r *Recorder) Name() string {
	return r.name
}

// ResolveMethod implements store.MethodResolver
func (r *Recorder) ResolveMethod(method string) (handler.Func, bool) {
	return func(_ any, payload any, action string) error {
		record := func() error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, Event{Action: action, Method: method, Payload: payload})
			return nil
		}

		deps := r.waits[method]
		if len(deps) == 0 || r.d == nil {
			return record()
		}
		return r.d.WaitFor(deps, record)
	}, true
}

// Events returns a copy of the recorded events, oldest first
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Dehydrate implements store.Dehydrator
func (r *Recorder) Dehydrate() any {
	return r.Events()
}

// Rehydrate implements store.Rehydrator. It accepts the value returned by
// Dehydrate.
func (r *Recorder) Rehydrate(state any) error {
	events, ok := state.([]Event)
	if !ok {
		return errors.Newf(errors.ErrInvalidInput, "recorder %s cannot rehydrate from %T", r.name, state).
			WithDetail("store", r.name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events[:0:0], events...)
	return nil
}

var (
	_ store.MethodResolver = (*Recorder)(nil)
	_ store.Dehydrator     = (*Recorder)(nil)
	_ store.Rehydrator     = (*Recorder)(nil)
)
