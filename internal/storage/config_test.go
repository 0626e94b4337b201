package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("no .tnconfig.yaml returns defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir, "")
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, DefaultCanvasWidth, cfg.CanvasWidth)
		assert.Equal(t, DefaultCanvasHeight, cfg.CanvasHeight)
		assert.Equal(t, DefaultPageSize, cfg.PageSize)
		assert.Equal(t, DefaultListen, cfg.Listen)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	})

	t.Run("full .tnconfig.yaml loads all values", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir, "")
		require.NoError(t, err)

		configContent := `canvas_width: 400
canvas_height: 200
page_size: 5
listen: "127.0.0.1:9000"
log_level: debug
`
		err = os.WriteFile(filepath.Join(dir, ".tnconfig.yaml"), []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 400, cfg.CanvasWidth)
		assert.Equal(t, 200, cfg.CanvasHeight)
		assert.Equal(t, 5, cfg.PageSize)
		assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("partial .tnconfig.yaml merges with defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir, "")
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, ".tnconfig.yaml"), []byte("page_size: 3\n"), 0644)
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.PageSize)
		assert.Equal(t, DefaultCanvasWidth, cfg.CanvasWidth)
		assert.Equal(t, DefaultListen, cfg.Listen)
	})

	t.Run("invalid canvas size is rejected", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir, "")
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, ".tnconfig.yaml"), []byte("canvas_width: 0\n"), 0644)
		require.NoError(t, err)

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid canvas size")
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir, "")
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, ".tnconfig.yaml"), []byte("page_size: [\n"), 0644)
		require.NoError(t, err)

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	s, err := Init(dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".tnconfig.yaml"), s.ConfigPath())
}
