// Package identity resolves the canonical name under which stores and
// domains are registered. A reference is either a bare name or a value
// carrying its own names (an explicit store name and an intrinsic
// type name used as fallback).
package identity
