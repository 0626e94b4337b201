package state

import "github.com/aretw0/introspection"

// Snapshot exposes a State's internals for observability.
type Snapshot struct {
	Key       string `json:"key"`
	Listeners int    `json:"listeners"`
	Bytes     int    `json:"bytes"`
}

// State implements introspection.Introspectable.
func (s *State[T]) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Key:       s.key,
		Listeners: len(s.listeners),
		Bytes:     len(s.snapshot),
	}
}

// ComponentType implements introspection.Component.
func (s *State[T]) ComponentType() string {
	return "state"
}

var _ introspection.Introspectable = (*State[int])(nil)
var _ introspection.Component = (*State[int])(nil)
