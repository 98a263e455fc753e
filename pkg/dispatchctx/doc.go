// Package dispatchctx executes handler bindings for a single dispatch
// context.
//
// A Context is created by the dispatcher for each unit of work (a request,
// a test, a CLI invocation). It lazily builds one instance per store, runs
// the bindings for an action in table order with the default bucket as a
// per-store fallback, calls each store's handler at most once per action,
// and lets handlers wait for other stores with WaitFor.
//
// A Context is meant to be used from one goroutine at a time.
package dispatchctx
