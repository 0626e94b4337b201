package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Backend.Get when no value is stored for a key.
var ErrNotFound = errors.New("key not found")

// Backend is a durable key-value store holding one encoded snapshot per key.
type Backend interface {
	// Get returns the stored bytes for key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set replaces the stored bytes for key. The write is durable when Set returns.
	Set(key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys lists every stored key in lexical order.
	Keys() ([]string, error)
	// Close releases any resources held by the backend.
	Close() error
}

// Watcher is implemented by backends that can report writes made by other
// processes. fn is called after every observed change to key until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, key string, fn func()) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateKey checks that a key is usable as a file name and table key.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q: must be non-empty and contain only letters, digits, '.', '_' or '-'", key)
	}
	return nil
}
