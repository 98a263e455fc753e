// Package manifest loads a declarative routing manifest (TOML or YAML)
// and turns it into store classes and domains for the dispatcher.
//
// Stores declared in a manifest are backed by a Recorder, which records
// every action it handles. This makes manifests useful for inspecting and
// rehearsing routing without the application's real stores.
//
//	[[stores]]
//	name = "CartStore"
//	type = "Cart"
//	handlers = [
//	  { action = "ADD_ITEM", method = "OnAddItem" },
//	  { action = "CHECKOUT", method = "OnCheckout", wait_for = ["PriceStore"] },
//	]
//
//	[[domains]]
//	name = "checkout"
package manifest
