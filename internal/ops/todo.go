package ops

import (
	"strings"

	"github.com/jacksmith/tn/internal/model"
)

// AddTodo appends an open todo. Blank text is ignored and reported as false.
func AddTodo(s TodoStore, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if model.IsBlank(text) {
		return false, nil
	}
	todos := append(s.Get(), model.Todo{Text: text})
	if err := s.Set(todos); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleTodo flips the completed flag of the todo at index i. Every other
// element is written back unchanged.
func ToggleTodo(s TodoStore, i int) (bool, error) {
	todos := s.Get()
	if i < 0 || i >= len(todos) {
		return false, nil
	}
	next := make([]model.Todo, len(todos))
	for j, t := range todos {
		if j == i {
			t.Completed = !t.Completed
		}
		next[j] = t
	}
	if err := s.Set(next); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveTodo deletes the todo at index i. Duplicates elsewhere are kept.
func RemoveTodo(s TodoStore, i int) (bool, error) {
	todos := s.Get()
	if i < 0 || i >= len(todos) {
		return false, nil
	}
	next := make([]model.Todo, 0, len(todos)-1)
	next = append(next, todos[:i]...)
	next = append(next, todos[i+1:]...)
	if err := s.Set(next); err != nil {
		return false, err
	}
	return true, nil
}

// PageTodos returns the window of at most size todos starting at start.
func PageTodos(todos []model.Todo, start, size int) []model.Todo {
	if start < 0 || start >= len(todos) || size <= 0 {
		return nil
	}
	end := min(start+size, len(todos))
	return todos[start:end]
}

// NextPageStart advances a page window, wrapping to the first page once
// the end of the list is passed.
func NextPageStart(total, start, size int) int {
	next := start + size
	if size <= 0 || next >= total {
		return 0
	}
	return next
}
