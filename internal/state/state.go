package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jacksmith/tn/internal/storage"
)

// Listener receives the new value after every successful write.
type Listener[T any] func(T)

// Subscription identifies a registered listener.
type Subscription uint64

type subscriber[T any] struct {
	id Subscription
	fn Listener[T]
}

// State is a persisted, observable value stored under a single key.
type State[T any] struct {
	key     string
	backend storage.Backend
	logger  *slog.Logger

	mu        sync.Mutex
	snapshot  []byte
	listeners []subscriber[T]
	nextID    Subscription
}

// New creates a State for key, seeded from the backend or from initial when
// nothing usable is stored. Storage faults never fail construction; they are
// logged and the default is used.
func New[T any](backend storage.Backend, key string, initial T, opts ...Option) *State[T] {
	o := &options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(o)
	}

	s := &State[T]{
		key:     key,
		backend: backend,
		logger:  o.logger.With("key", key),
	}

	if data, ok := s.load(); ok {
		s.snapshot = data
		return s
	}

	data, err := json.Marshal(initial)
	if err != nil {
		// The zero value of T is always used for an unmarshalable default.
		s.logger.Error("default value is not serializable", "error", err)
		data = []byte("null")
	}
	s.snapshot = data
	return s
}

// Read returns the value stored for key, or def when the key is missing,
// unreadable, or does not parse.
func Read[T any](backend storage.Backend, key string, def T) T {
	return New(backend, key, def).Get()
}

// load fetches and validates the stored bytes. ok is false when the caller
// should fall back to a default.
func (s *State[T]) load() ([]byte, bool) {
	data, err := s.backend.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("storage unavailable, using default", "error", err)
		}
		return nil, false
	}
	var probe T
	if err := json.Unmarshal(data, &probe); err != nil {
		s.logger.Warn("stored value does not parse, using default", "error", err)
		return nil, false
	}
	return data, true
}

// Key returns the storage key.
func (s *State[T]) Key() string {
	return s.key
}

// Get returns a copy of the current value. Mutating it does not affect the
// store; call Set with the modified copy instead.
func (s *State[T]) Get() T {
	s.mu.Lock()
	data := s.snapshot
	s.mu.Unlock()

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Error("cached snapshot does not decode", "error", err)
	}
	return v
}

// Set replaces the stored value, persists it, and notifies listeners.
// On failure the previous value is kept, no listener runs, and a
// *WriteError is returned.
func (s *State[T]) Set(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to serialize state", "error", err)
		return &WriteError{Key: s.key, Err: err}
	}

	s.mu.Lock()
	if err := s.backend.Set(s.key, data); err != nil {
		s.mu.Unlock()
		s.logger.Error("failed to persist state", "error", err)
		return &WriteError{Key: s.key, Err: err}
	}
	s.snapshot = data
	s.mu.Unlock()

	s.notify(data)
	return nil
}

// Subscribe registers fn to be called after every subsequent write. fn is
// not called immediately.
func (s *State[T]) Subscribe(fn Listener[T]) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.listeners = append(s.listeners, subscriber[T]{id: s.nextID, fn: fn})
	return s.nextID
}

// Unsubscribe removes a listener. Unknown subscriptions are ignored.
func (s *State[T]) Unsubscribe(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == sub {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Reload re-reads the backend and notifies listeners if the stored value
// differs from the cached one. It reports whether a change was observed.
func (s *State[T]) Reload() (bool, error) {
	data, err := s.backend.Get(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to reload state %q: %w", s.key, err)
	}
	var probe T
	if err := json.Unmarshal(data, &probe); err != nil {
		s.logger.Warn("ignoring unparsable external write", "error", err)
		return false, nil
	}

	s.mu.Lock()
	if bytes.Equal(data, s.snapshot) {
		s.mu.Unlock()
		return false, nil
	}
	s.snapshot = data
	s.mu.Unlock()

	s.logger.Debug("external change reloaded")
	s.notify(data)
	return true, nil
}

// Watch reloads the state whenever another writer changes the key, until
// ctx is done. It returns an error if the backend cannot watch.
func (s *State[T]) Watch(ctx context.Context, opts ...WatchOption) error {
	w, ok := s.backend.(storage.Watcher)
	if !ok {
		return errors.New("backend does not support watching")
	}
	var o watchOptions
	for _, opt := range opts {
		opt(&o)
	}
	return w.Watch(ctx, s.key, func() {
		if o.lock != nil {
			o.lock.Lock()
			defer o.lock.Unlock()
		}
		if _, err := s.Reload(); err != nil {
			s.logger.Error("reload failed", "error", err)
		}
	})
}

// notify calls every listener with its own decoded copy of data. The
// listener list is snapshotted first so listeners may unsubscribe.
func (s *State[T]) notify(data []byte) {
	s.mu.Lock()
	listeners := make([]subscriber[T], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			s.logger.Error("failed to decode state for listener", "error", err)
			return
		}
		l.fn(v)
	}
}
