// Package state implements the persisted observable store.
//
// A State holds one JSON-serializable value under a string key of a
// storage.Backend. Every Set is a full snapshot replace: the value is
// written durably and then handed to each subscribed listener, in
// subscription order, on the calling goroutine.
//
//	todos := state.New(backend, "todos", []model.Todo{})
//	sub := todos.Subscribe(func(v []model.Todo) { render(v) })
//	defer todos.Unsubscribe(sub)
//
//	next := append(todos.Get(), model.Todo{Text: "milk"})
//	if err := todos.Set(next); err != nil {
//		// the write was not persisted and no listener ran
//	}
package state
