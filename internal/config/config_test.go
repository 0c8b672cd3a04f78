package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG and the working directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmpDir))

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		t.Setenv("SENSEI_"+key, "")
		_ = os.Unsetenv("SENSEI_" + key)
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, "/custom/config/sensei/sensei.yml", GlobalPath())
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got := GlobalPath()
		assert.True(t, filepath.IsAbs(got), "GlobalPath() should be absolute, got %v", got)
		assert.Equal(t, "sensei.yml", filepath.Base(got))
	})
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, "sensei.yml", ProjectPath())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, Exists())
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := Default()
	global.Store = StoreNATS
	global.LogLevel = "warn"
	global.UploadIncrement = 25
	require.NoError(t, WriteGlobal(global))

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("log_level: debug\n"), 0644))
	t.Setenv("SENSEI_UPLOAD_INTERVAL", "50ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, Exists())
	assert.Equal(t, StoreNATS, cfg.Store, "global value kept")
	assert.Equal(t, 25, cfg.UploadIncrement, "global value kept")
	assert.Equal(t, "debug", cfg.LogLevel, "project overrides global")
	assert.Equal(t, 50*time.Millisecond, cfg.UploadInterval, "env overrides files")
	assert.Equal(t, 3*time.Second, cfg.UploadDuration, "default kept")
}

func TestLoad_InvalidStore(t *testing.T) {
	isolate(t)
	t.Setenv("SENSEI_STORE", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.UploadInterval = 0 }},
		{"increment too large", func(c *Config) { c.UploadIncrement = 101 }},
		{"negative duration", func(c *Config) { c.UploadDuration = -time.Second }},
		{"no upload limit", func(c *Config) { c.MaxUploadMB = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(100*1024*1024), cfg.MaxUploadBytes())
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.DataDir = ".custom"
	require.NoError(t, WriteProject(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ".custom", loaded.DataDir)
	assert.Equal(t, cfg.UploadInterval, loaded.UploadInterval)
}
