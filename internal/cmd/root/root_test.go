package root

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"convert", "check", "init", "config", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "output", "no-color", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRoot_Version(t *testing.T) {
	cmd := NewCmdRoot()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "md2docx version")
}

func TestRoot_ConvertAndCheck(t *testing.T) {
	t.Setenv("MD2DOCX_OUTPUT_FORMAT", "")
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(filepath.Join(src, "doc.md"), []byte("# Doc\n- a\n- b\n"), 0644))
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cmd := NewCmdRoot()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"convert", src, "-d", out, "-c", configPath, "--no-color"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "doc.docx")

	cmd = NewCmdRoot()
	buf.Reset()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"check", filepath.Join(out, "doc.docx"), "-c", configPath, "-o", "plain"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "valid")
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	cmd := NewCmdRoot()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"check", t.TempDir(), "--log-level", "loud", "-c", filepath.Join(t.TempDir(), "c.yml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging flags")
}

func TestSetupLogging_DefaultsToWarn(t *testing.T) {
	t.Setenv("MD2DOCX_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cmd := NewCmdRoot()
	require.NoError(t, cmd.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "c.yml")))
	require.NoError(t, setupLogging(cmd, nil))

	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
}
