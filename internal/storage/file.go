package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

const (
	// stateExt is the file extension for stored snapshots.
	stateExt = ".json"
	// tempFilePrefix marks in-flight atomic writes so watchers and Keys skip them.
	tempFilePrefix = "tn-tmp-"
	// watchDebounce coalesces the burst of events produced by one atomic write.
	watchDebounce = 50 * time.Millisecond
)

// FileBackend stores each key as a JSON file inside a directory.
type FileBackend struct {
	dir    string
	logger *slog.Logger
}

// NewFileBackend returns a FileBackend rooted at dir, creating it if needed.
func NewFileBackend(dir string, opts ...Option) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	o := applyOptions(opts)
	return &FileBackend{dir: dir, logger: o.logger}, nil
}

// Dir returns the directory holding the state files.
func (f *FileBackend) Dir() string {
	return f.dir
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+stateExt)
}

func (f *FileBackend) Get(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read state file for %q: %w", key, err)
	}
	return data, nil
}

func (f *FileBackend) Set(key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return writeFileAtomic(f.path(key), data, 0644)
}

func (f *FileBackend) Delete(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file for %q: %w", key, err)
	}
	return nil
}

func (f *FileBackend) Keys() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, tempFilePrefix) || !strings.HasSuffix(name, stateExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, stateExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *FileBackend) Close() error { return nil }

// Watch reports changes to key's file. The directory is watched rather than
// the file because atomic writes replace the file's inode.
func (f *FileBackend) Watch(ctx context.Context, key string, fn func()) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(f.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", f.dir, err)
	}

	target := key + stateExt
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer watcher.Close()
		return f.watchLoop(ctx, watcher, target, fn)
	}, lifecycle.WithErrorHandler(func(err error) {
		f.logger.Error("state watcher stopped", "key", key, "error", err)
	}))
	return nil
}

func (f *FileBackend) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, fn func()) error {
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			f.logger.Debug("state file changed", "name", event.Name, "op", event.Op.String())
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			fn()

		case err, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			f.logger.Error("fsnotify error", "error", err)
		}
	}
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

var (
	_ Backend = (*FileBackend)(nil)
	_ Watcher = (*FileBackend)(nil)
)
