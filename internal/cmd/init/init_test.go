package init

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/md2docx/internal/config"
)

func TestAnswersApply(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(a *answers)
		wantErr string
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.EngineNative, cfg.Engine)
				assert.Equal(t, 0, cfg.Workers)
				assert.Equal(t, "warn", cfg.LogLevel)
				assert.Equal(t, "table", cfg.OutputFormat)
				assert.Empty(t, cfg.OutputDir)
			},
		},
		{
			name: "all fields set",
			modify: func(a *answers) {
				a.outputDir = "  /tmp/out  "
				a.engine = config.EngineCommonMark
				a.workers = " 8 "
				a.title = true
				a.outputFormat = "json"
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "/tmp/out", cfg.OutputDir)
				assert.Equal(t, config.EngineCommonMark, cfg.Engine)
				assert.Equal(t, 8, cfg.Workers)
				assert.True(t, cfg.TitleFromFrontMatter)
				assert.Equal(t, "json", cfg.OutputFormat)
			},
		},
		{
			name:    "workers not a number",
			modify:  func(a *answers) { a.workers = "many" },
			wantErr: "workers must be a number",
		},
		{
			name:    "too many workers",
			modify:  func(a *answers) { a.workers = "65" },
			wantErr: "workers must be between 0 and 64",
		},
		{
			name:    "unknown engine",
			modify:  func(a *answers) { a.engine = "pandoc" },
			wantErr: "engine must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := defaultAnswers()
			if tt.modify != nil {
				tt.modify(&a)
			}
			cfg, err := a.apply()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestRunInit_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "md2docx", "config.yml")

	var out bytes.Buffer
	err := runInit(&initOptions{configPath: path, defaults: true, out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Configuration saved to "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.EngineNative, cfg.Engine)
	assert.Equal(t, "table", cfg.OutputFormat)
}

func TestRunInit_DefaultsRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("engine: commonmark\n"), 0644))

	err := runInit(&initOptions{configPath: path, defaults: true, out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.EngineCommonMark, cfg.Engine)
}

func TestRunInit_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("engine: commonmark\n"), 0644))

	err := runInit(&initOptions{configPath: path, defaults: true, force: true, out: &bytes.Buffer{}})
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.EngineNative, cfg.Engine)
}

func TestValidateWorkers(t *testing.T) {
	assert.NoError(t, validateWorkers("0"))
	assert.NoError(t, validateWorkers("64"))
	assert.Error(t, validateWorkers("-1"))
	assert.Error(t, validateWorkers(""))
}

func TestNewCmdInit(t *testing.T) {
	cmd := NewCmdInit()
	assert.Equal(t, "init", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("defaults"))
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}
