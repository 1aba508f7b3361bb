package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("QKART_ENDPOINT", "")
	t.Setenv("QKART_TOKEN", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Endpoint)
	assert.Equal(t, 500*time.Millisecond, cfg.SearchDelay)
	assert.Empty(t, cfg.Token)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qkart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: http://shop.internal:9000
request_timeout: 3s
search_delay: 250ms
log_level: debug
`), 0o600))

	t.Setenv("QKART_ENDPOINT", "")
	t.Setenv("QKART_SEARCH_DELAY", "750ms")
	t.Setenv("QKART_TOKEN", " abc ")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://shop.internal:9000", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.SearchDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "abc", cfg.Token)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("QKART_REQUEST_TIMEOUT", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "QKART_REQUEST_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Endpoint = " "
	cfg.SearchDelay = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "endpoint is required")
	assert.ErrorContains(t, err, "search_delay must be positive")
}
