package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "witgo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, "access_token: file-token\nbase_url: http://localhost:8080\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.AccessToken)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Empty(t, cfg.APIVersion)
}

func TestLoadConfig_EnvFallback(t *testing.T) {
	t.Setenv("WIT_ACCESS_TOKEN", "env-token")
	t.Setenv("WIT_API_VERSION", "20240101")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.AccessToken)
	assert.Equal(t, "20240101", cfg.APIVersion)
}

func TestLoadConfig_FileWinsOverEnv(t *testing.T) {
	t.Setenv("WIT_ACCESS_TOKEN", "env-token")
	path := writeConfig(t, "access_token: file-token\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.AccessToken)
}

func TestLoadConfig_MissingFileIsFine(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.AccessToken)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "access_token: [broken\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.NoError(t, Config{AccessToken: "tok"}.Validate())
}
