package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.MaxFolders)
	assert.Equal(t, 2, cfg.WorkerProcesses)
	assert.Equal(t, "Books", cfg.SheetsWorksheet)
	assert.NotEmpty(t, cfg.Hostname)
}

func TestNew_WithEnvVar(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")
	t.Setenv("STORYLOFT_DATABASE_FILE_PATH", "/tmp/test.db")
	t.Setenv("STORYLOFT_MAX_FOLDERS", "25")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DatabaseFilePath)
	assert.Equal(t, 25, cfg.MaxFolders)
}

func TestNew_WithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database_file_path: /data/storyloft.db
library_root: /media/library
server_port: 4100
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CONFIG_FILE", configPath)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/data/storyloft.db", cfg.DatabaseFilePath)
	assert.Equal(t, "/media/library", cfg.LibraryRoot)
	assert.Equal(t, 4100, cfg.ServerPort)
}

func TestNew_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server_port: 4100\n"), 0644))

	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CONFIG_FILE", configPath)
	t.Setenv("STORYLOFT_SERVER_PORT", "4200")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 4200, cfg.ServerPort)
}
