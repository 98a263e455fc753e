// Package registry provides a generic, type-safe name to item registry.
// The dispatcher keeps one for stores and one for domains so that the two
// namespaces never collide.
package registry
