package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/md2docx/internal/config"
)

// clearEnv unsets every variable md2docx reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range envVarNames {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg := &config.Config{
		OutputDir: "/tmp/converted",
		Engine:    config.EngineCommonMark,
		Workers:   4,
	}
	require.NoError(t, cfg.Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runShow(&out, configPath, true))

	output := out.String()
	assert.Contains(t, output, "/tmp/converted  (source: config)")
	assert.Contains(t, output, "commonmark  (source: config)")
	assert.Contains(t, output, "4  (source: config)")
	assert.Contains(t, output, "Config file: "+configPath)
	assert.NotContains(t, output, "(file not found)")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{Engine: config.EngineNative}).Save(configPath))
	t.Setenv("MD2DOCX_ENGINE", config.EngineCommonMark)
	t.Setenv("LOG_LEVEL", "debug")

	var out bytes.Buffer
	require.NoError(t, runShow(&out, configPath, true))

	output := out.String()
	assert.Contains(t, output, "commonmark  (source: MD2DOCX_ENGINE)")
	assert.Contains(t, output, "debug  (source: LOG_LEVEL)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	var out bytes.Buffer
	require.NoError(t, runShow(&out, configPath, true))
	assert.Contains(t, out.String(), "(file not found)")
}
