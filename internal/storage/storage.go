// Package storage provides the durable key-value backends and the .tn/
// workspace that holds them.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// tnDir is the name of the tn directory.
	tnDir = ".tn"
	// stateDir is the subdirectory for file backend snapshots.
	stateDir = "state"
	// dbFile is the SQLite database used by the sqlite backend.
	dbFile = "state.db"
	// configFile is the name of the config file within .tn/.
	configFile = "config.yaml"
)

// Backend kinds accepted in .tn/config.yaml.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// StorageConfig contains settings stored in .tn/config.yaml.
type StorageConfig struct {
	Version int    `yaml:"version"`
	Backend string `yaml:"backend"`
}

// Storage provides access to a .tn/ directory.
type Storage struct {
	root string // path to directory containing .tn/
	cfg  StorageConfig
}

// Open returns a Storage for the given directory.
// Returns error if .tn/ does not exist.
func Open(dir string) (*Storage, error) {
	tnPath := filepath.Join(dir, tnDir)
	info, err := os.Stat(tnPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".tn/ directory not found in %s (run `tn init`)", dir)
		}
		return nil, fmt.Errorf("failed to access .tn/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".tn is not a directory")
	}

	data, err := os.ReadFile(filepath.Join(tnPath, configFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}
	var cfg StorageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if err := validateBackend(cfg.Backend); err != nil {
		return nil, err
	}

	return &Storage{root: dir, cfg: cfg}, nil
}

// Init creates the .tn/ directory using the given backend kind.
// Returns error if .tn/ already exists.
func Init(dir string, backend string) (*Storage, error) {
	tnPath := filepath.Join(dir, tnDir)

	if _, err := os.Stat(tnPath); err == nil {
		return nil, fmt.Errorf(".tn/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .tn/: %w", err)
	}

	if backend == "" {
		backend = BackendFile
	}
	backend = strings.ToLower(backend)
	if err := validateBackend(backend); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(tnPath, stateDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create .tn/state/: %w", err)
	}

	cfg := StorageConfig{Version: 1, Backend: backend}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tnPath, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(tnPath)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir, cfg: cfg}, nil
}

func validateBackend(kind string) error {
	switch kind {
	case BackendFile, BackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown backend %q (expected %s or %s)", kind, BackendFile, BackendSQLite)
}

// Root returns the root directory containing .tn/.
func (s *Storage) Root() string {
	return s.root
}

// TnPath returns the path to the .tn/ directory.
func (s *Storage) TnPath() string {
	return filepath.Join(s.root, tnDir)
}

// BackendKind returns the configured backend kind.
func (s *Storage) BackendKind() string {
	return s.cfg.Backend
}

// Backend opens the configured key-value backend. The caller must Close it.
func (s *Storage) Backend(opts ...Option) (Backend, error) {
	switch s.cfg.Backend {
	case BackendSQLite:
		return NewSQLiteBackend(filepath.Join(s.TnPath(), dbFile), opts...)
	default:
		return NewFileBackend(filepath.Join(s.TnPath(), stateDir), opts...)
	}
}
