package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("FPRINT_INDEX_PATH")
	os.Unsetenv("FPRINT_WORKERS")

	cfg := Load()
	assert.Equal(t, "index.pkl", cfg.IndexPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	os.Setenv("FPRINT_INDEX_PATH", "custom.idx")
	defer os.Unsetenv("FPRINT_INDEX_PATH")

	cfg := Load()
	assert.Equal(t, "custom.idx", cfg.IndexPath)
}
