package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/md2docx/internal/config"
)

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{Engine: config.EngineNative}).Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runClear(&out, configPath, true))
	assert.Contains(t, out.String(), "Configuration cleared from "+configPath)

	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunClear_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var out bytes.Buffer
	require.NoError(t, runClear(&out, filepath.Join(t.TempDir(), "config.yml"), true))
	assert.Contains(t, out.String(), "No config file to remove")
}

func TestRunClear_Idempotent(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, runClear(&bytes.Buffer{}, configPath, true))
	require.NoError(t, runClear(&bytes.Buffer{}, configPath, true))
}

func TestRunClear_ReportsEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("MD2DOCX_ENGINE", "native")
	t.Setenv("MD2DOCX_WORKERS", "2")

	var out bytes.Buffer
	require.NoError(t, runClear(&out, filepath.Join(t.TempDir(), "config.yml"), true))
	assert.Contains(t, out.String(), "Environment variables will still be used: MD2DOCX_ENGINE, MD2DOCX_WORKERS")
}
