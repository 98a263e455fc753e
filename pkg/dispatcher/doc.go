// Package dispatcher is the action dispatch registry.
//
// Stores register interest in named actions through their handler
// declarations; domains register as plain named grouping units in a
// separate namespace. For any action the dispatcher answers which stores
// must react and with which handler, in registration order, with a
// reserved "default" bucket for stores that react to everything else.
//
// Actual execution is delegated to a dispatch context created with
// CreateContext.
//
//	d, err := dispatcher.New(dispatcher.Options{
//		Stores: []*store.Class{cartStore, auditStore},
//	})
//	ctx := d.CreateContext(requestInfo)
//	_, err = ctx.Dispatch("ADD_ITEM", item)
package dispatcher
