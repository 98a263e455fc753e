// Package handler defines how a store reacts to an action and the table
// that routes action names to ordered handler bindings.
//
// A Handler is either a direct function or the name of a method that the
// dispatch context resolves against a live store instance. The table keeps
// bindings in registration order and always carries a "default" bucket.
package handler
