package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "keyprep/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keyprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stimuli", cfg.Stimuli.Root)
	assert.Equal(t, []string{"exp1", "exp2"}, cfg.Stimuli.Experiments)
	assert.Equal(t, []string{".wav"}, cfg.Stimuli.Extensions)
	assert.Equal(t, 2, cfg.Responses.DropRows)
	assert.Equal(t, "kk_correlations.xlsx", cfg.Export.CorrelationFile)
	assert.False(t, cfg.Tracing.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    map[string]string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "file overrides defaults",
			file: `
stimuli:
  root: /data/stimuli
  experiments: [exp1]
responses:
  drop_rows: 3
`,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/stimuli", cfg.Stimuli.Root)
				assert.Equal(t, []string{"exp1"}, cfg.Stimuli.Experiments)
				assert.Equal(t, 3, cfg.Responses.DropRows)
				// untouched keys keep defaults
				assert.Equal(t, "*.csv", cfg.Responses.Pattern)
				assert.Equal(t, []string{".wav"}, cfg.Stimuli.Extensions)
			},
		},
		{
			name: "env overrides file",
			file: `
logging:
  level: debug
stimuli:
  experiments: [exp1]
`,
			env: map[string]string{
				"KEYPREP_LOGGING_LEVEL":       "WARN",
				"KEYPREP_STIMULI_EXPERIMENTS": "exp2, exp3",
				"KEYPREP_TRACING_ENABLED":     "true",
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, []string{"exp2", "exp3"}, cfg.Stimuli.Experiments)
				assert.True(t, cfg.Tracing.Enabled)
			},
		},
		{
			name: "extensions gain a leading dot",
			file: `
stimuli:
  extensions: [wav, ".aiff"]
`,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{".wav", ".aiff"}, cfg.Stimuli.Extensions)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(writeConfigFile(t, tt.file))
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantCtx string
	}{
		{
			name:    "unknown key is rejected",
			file:    "stimulus:\n  root: x\n",
			wantCtx: "path",
		},
		{
			name:    "negative drop rows",
			file:    "responses:\n  drop_rows: -1\n",
			wantCtx: "fields",
		},
		{
			name:    "no experiments",
			file:    "stimuli:\n  experiments: []\n",
			wantCtx: "fields",
		},
		{
			name:    "bad log level from env",
			file:    "",
			env:     map[string]string{"KEYPREP_LOGGING_LEVEL": "verbose"},
			wantCtx: "fields",
		},
		{
			name: "non-numeric env value",
			file: "",
			env:  map[string]string{"KEYPREP_RESPONSES_DROP_ROWS": "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfigFile(t, tt.file))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrConfig)
			if tt.wantCtx != "" {
				_, ok := apperrors.ContextValue(err, tt.wantCtx)
				assert.True(t, ok, "expected context key %q in %v", tt.wantCtx, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestValidate_LogFileRequiredUnlessConsole(t *testing.T) {
	cfg := Default()
	cfg.Logging.FilePath = ""
	assert.Error(t, cfg.Validate())

	cfg.Logging.Output = "console"
	assert.NoError(t, cfg.Validate())
}
