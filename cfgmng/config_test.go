package cfgmng

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
environment:
  hostname: reqres.in
  port: 8443
log:
  level: debug
  format: json
auth:
  token: QpwL5tke4Pnpja7X4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "restcall.yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad_File(t *testing.T) {
	dir := writeConfig(t, sampleConfig)

	cfg, err := Load(dir, "restcall")

	require.NoError(t, err)
	assert.Equal(t, "reqres.in", cfg.Environment.Hostname())
	port, ok := cfg.Environment.PortNumber()
	assert.True(t, ok)
	assert.Equal(t, 8443, port)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", cfg.Auth.Token)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "restcall")

	require.NoError(t, err)
	assert.Empty(t, cfg.Environment.Host)
	_, ok := cfg.Environment.PortNumber()
	assert.False(t, ok)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("RESTCALL_ENVIRONMENT_HOSTNAME", "staging.reqres.in")
	t.Setenv("RESTCALL_AUTH_TOKEN", "from-env")

	cfg, err := Load(dir, "restcall")

	require.NoError(t, err)
	assert.Equal(t, "staging.reqres.in", cfg.Environment.Host)
	assert.Equal(t, 8443, cfg.Environment.Port)
	assert.Equal(t, "from-env", cfg.Auth.Token)
}

func TestLoad_EnvironmentWithoutFile(t *testing.T) {
	t.Setenv("RESTCALL_ENVIRONMENT_HOSTNAME", "api.example.com")

	cfg, err := Load("", "restcall")

	require.NoError(t, err)
	assert.Equal(t, "api.example.com", cfg.Environment.Host)
}

func TestLoad_InvalidPort(t *testing.T) {
	dir := writeConfig(t, "environment:\n  hostname: reqres.in\n  port: 70000\n")

	_, err := Load(dir, "restcall")

	assert.ErrorContains(t, err, "environment.port out of range")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "environment: [unterminated\n")

	_, err := Load(dir, "restcall")

	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)

		logger.Info().Msg("hidden")
		logger.Warn().Str("host", "reqres.in").Msg("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"message":"shown"`)
		assert.Contains(t, out, `"host":"reqres.in"`)
		assert.Contains(t, out, `"time":`)
	})

	t.Run("console with unknown level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: "chatty"}, &buf)

		logger.Debug().Msg("hidden")
		logger.Info().Msg("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.NotContains(t, out, `"message"`)
	})
}
