package ops

import (
	"github.com/jacksmith/tn/internal/model"
)

// Keys of the persisted collections.
const (
	TodosKey = "todos"
	NotesKey = "notes"
)

// Store is the read/replace contract the repository operations need.
// The concrete implementation is state.State; any value whose Get returns
// an independent copy works.
type Store[T any] interface {
	Get() T
	Set(v T) error
}

// TodoStore holds the todo collection.
type TodoStore = Store[[]model.Todo]

// NoteStore holds the notes collection together with the drawing history.
type NoteStore = Store[model.NotesState]
