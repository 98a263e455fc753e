package dispatchctx

import "time"

// Call records one handler invocation.
type Call struct {
	// Store is the canonical store name
	Store string
	// Handler describes the binding that ran
	Handler string
	// Err is the handler error, if any
	Err error
}

// Result tracks the handlers run for one dispatch
type Result struct {
	// Action is the dispatched action name
	Action string

	// Calls lists invocations in the order they completed
	Calls []Call

	// StartTime is when the dispatch began
	StartTime time.Time

	// EndTime is when the dispatch finished
	EndTime time.Time
}

// Stores returns the store names in invocation order.
func (r *Result) Stores() []string {
	names := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		names = append(names, c.Store)
	}
	return names
}

// Duration returns how long the dispatch took.
func (r *Result) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}
