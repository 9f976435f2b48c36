package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("BANKCAP_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("BANKCAP_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BANKCAP_TEST_UNSET_VALUE", "fallback"))
}

func TestLoadEnvFrom(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BANKCAP_DOTENV_VALUE=loaded\n"), 0600))
	t.Setenv("BANKCAP_DOTENV_VALUE", "")
	require.NoError(t, os.Unsetenv("BANKCAP_DOTENV_VALUE"))

	assert.Equal(t, envFile, loadEnvFrom(dir))
	assert.Equal(t, "loaded", os.Getenv("BANKCAP_DOTENV_VALUE"))
}

func TestLoadEnvFrom_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BANKCAP_DOTENV_KEEP=file\n"), 0600))
	t.Setenv("BANKCAP_DOTENV_KEEP", "process")

	loadEnvFrom(dir)
	assert.Equal(t, "process", os.Getenv("BANKCAP_DOTENV_KEEP"))
}

func TestLoadEnvFrom_NoFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, os.MkdirAll(dir, 0750))
	assert.Equal(t, "", loadEnvFrom(dir))
}
