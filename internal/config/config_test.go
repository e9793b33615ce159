package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origPath := os.Getenv("SAVE_PATH")
	defer os.Setenv("SAVE_PATH", origPath)

	os.Setenv("SAVE_PATH", "/var/notes")
	os.Setenv("FILE_LIMIT", "42")
	os.Setenv("SINGLE_FILE_SIZE_LIMIT", "2048")
	defer os.Unsetenv("FILE_LIMIT")
	defer os.Unsetenv("SINGLE_FILE_SIZE_LIMIT")

	cfg := Load()

	assert.Equal(t, "/var/notes", cfg.Storage.SavePath)
	assert.Equal(t, 42, cfg.Storage.FileLimit)
	assert.Equal(t, 2048, cfg.Storage.SingleFileSizeLimit)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SAVE_PATH", "FILE_LIMIT", "SINGLE_FILE_SIZE_LIMIT", "STATIC_ROOT"} {
		orig := os.Getenv(key)
		os.Unsetenv(key)
		defer os.Setenv(key, orig)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "_tmp", cfg.Storage.SavePath)
	assert.Equal(t, 100000, cfg.Storage.FileLimit)
	assert.Equal(t, 10240, cfg.Storage.SingleFileSizeLimit)
	assert.Equal(t, ".", cfg.StaticRoot)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
