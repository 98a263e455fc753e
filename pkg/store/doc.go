// Package store defines the contract between the dispatcher and the
// stores and domains registered with it.
//
// A store is described by a Class: its identity, a constructor that builds
// a live instance for each dispatch context, and an ordered list of handler
// declarations. A domain only carries an identity.
package store
